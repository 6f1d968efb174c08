package deliveryguard

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v9"
)

const keyTimeToLive = 10 * time.Minute

// Redis acquires a short-lived per-occurrence key so the poll tick and the
// push event do not both deliver the same occurrence. Redis outages must not
// silence reminders, so client errors fall back to allowing delivery.
type Redis struct {
	redisClient *redis.Client
	log         logging.Logger
}

func NewRedis(redisClient *redis.Client, log logging.Logger) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Redis{redisClient: redisClient, log: log}
}

func (g *Redis) AcquireDelivery(ctx context.Context, occurrence reminder.Occurrence) bool {
	acquired, err := g.redisClient.SetNX(ctx, OccurrenceKey(occurrence), 1, keyTimeToLive).Result()
	if errors.Is(err, context.Canceled) {
		return false
	}
	if err != nil {
		g.log.Error(
			ctx,
			"Could not acquire delivery due to Redis client error.",
			logging.Entry("occurrence", occurrence),
			logging.Entry("err", err),
		)
		return true
	}
	return acquired
}

func OccurrenceKey(occurrence reminder.Occurrence) string {
	return fmt.Sprintf("delivery::%d::%d", occurrence.ID, occurrence.At.Unix())
}

// AllowAlways is used when no Redis URL is configured. Duplicate suppression
// then relies on the notified flag alone.
type AllowAlways struct{}

func NewAllowAlways() *AllowAlways {
	return &AllowAlways{}
}

func (g *AllowAlways) AcquireDelivery(ctx context.Context, occurrence reminder.Occurrence) bool {
	return true
}
