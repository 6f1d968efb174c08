package main

import (
	"batchbuddy/internal/app/consumers"
	"batchbuddy/internal/app/deps"
	"batchbuddy/internal/app/services"
	"batchbuddy/internal/core/domain/logging"
	checkduereminders "batchbuddy/internal/core/services/check_due_reminders"
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Standalone polling checker. Runs the same check loop as the main server,
// typically against a remote reminder store (STORE_URL), without the HTTP
// surface.
func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	ticker := time.NewTicker(deps.Config.PollInterval)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic due reminders checker.",
		logging.Entry("pollIntervalSeconds", deps.Config.PollInterval.Seconds()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic due reminders checker.")
			break loop
		case <-ticker.C:
			_, err := services.CheckDueReminders.Run(context.Background(), checkduereminders.Input{})
			if err != nil {
				log.Error(context.Background(), "Due reminders check returned an error.", logging.Entry("err", err))
			}
		}
	}
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
