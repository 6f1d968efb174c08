package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"batchbuddy/internal/core/domain/reminder"
)

type Config struct {
	Port          int
	PostgresqlURL string
	// StoreURL is optional: when set, the checker reads reminders from the
	// remote HTTP store instead of the local database.
	StoreURL string
	// RedisURL is optional: without Redis the delivery guard degrades to
	// allow-always.
	RedisURL string
	// RabbitmqURL is optional: without a broker due occurrences are
	// delivered inline.
	RabbitmqURL          string
	RabbitmqDueQueue     string
	AllowedOrigins       []string
	PollInterval         time.Duration
	DuePolicy            reminder.DuePolicy
	DueWindow            time.Duration
	NotifyLeadTime       bool
	AutoActionTimeout    time.Duration
	SnoozeDefaultMinutes int

	AwsRegion           string
	AwsAccessKey        string
	AwsSecretKey        string
	AwsEmailSender      string
	AwsEmailRecipient   string
	AwsEmailDueTemplate string
}

func (c *Config) EmailEnabled() bool {
	return c.AwsAccessKey != "" && c.AwsEmailSender != "" && c.AwsEmailRecipient != ""
}

func Load() (*Config, error) {
	port, err := intFromEnv("PORT", 9090)
	if err != nil {
		return nil, err
	}

	postgresqlURL := os.Getenv("POSTGRESQL_URL")
	storeURL := os.Getenv("STORE_URL")
	if postgresqlURL == "" && storeURL == "" {
		return nil, fmt.Errorf("POSTGRESQL_URL or STORE_URL must be set")
	}

	pollInterval, err := durationFromEnv("POLL_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	dueWindow, err := durationFromEnv("DUE_WINDOW", reminder.DefaultDueWindow)
	if err != nil {
		return nil, err
	}
	duePolicy := reminder.PolicyAtLeastOnce
	if rawPolicy := os.Getenv("DUE_POLICY"); rawPolicy != "" {
		duePolicy, err = reminder.ParseDuePolicy(rawPolicy)
		if err != nil {
			return nil, fmt.Errorf("invalid DUE_POLICY value: %w", err)
		}
	}
	autoActionTimeout, err := durationFromEnv("AUTO_ACTION_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	snoozeDefaultMinutes, err := intFromEnv("SNOOZE_DEFAULT_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	allowedOrigins := []string{"*"}
	if rawOrigins := os.Getenv("ALLOWED_ORIGINS"); rawOrigins != "" {
		allowedOrigins = strings.Split(rawOrigins, ",")
	}

	dueQueue := os.Getenv("RABBITMQ_DUE_QUEUE")
	if dueQueue == "" {
		dueQueue = "due-reminders"
	}

	return &Config{
		Port:                 port,
		PostgresqlURL:        postgresqlURL,
		StoreURL:             storeURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		RabbitmqURL:          os.Getenv("RABBITMQ_URL"),
		RabbitmqDueQueue:     dueQueue,
		AllowedOrigins:       allowedOrigins,
		PollInterval:         pollInterval,
		DuePolicy:            duePolicy,
		DueWindow:            dueWindow,
		NotifyLeadTime:       os.Getenv("NOTIFY_LEAD_TIME_ENABLED") == "true",
		AutoActionTimeout:    autoActionTimeout,
		SnoozeDefaultMinutes: snoozeDefaultMinutes,
		AwsRegion:            os.Getenv("AWS_REGION"),
		AwsAccessKey:         os.Getenv("AWS_ACCESS_KEY"),
		AwsSecretKey:         os.Getenv("AWS_SECRET_KEY"),
		AwsEmailSender:       os.Getenv("AWS_EMAIL_SENDER"),
		AwsEmailRecipient:    os.Getenv("AWS_EMAIL_RECIPIENT"),
		AwsEmailDueTemplate:  os.Getenv("AWS_EMAIL_DUE_TEMPLATE"),
	}, nil
}

func intFromEnv(name string, defaultValue int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", name, err)
	}
	return value, nil
}

func durationFromEnv(name string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", name, err)
	}
	return value, nil
}
