package main

import (
	"batchbuddy/internal/app"
	"batchbuddy/internal/app/consumers"
	"batchbuddy/internal/app/deps"
	"batchbuddy/internal/app/services"
	dl "batchbuddy/internal/core/domain/logging"
	checkduereminders "batchbuddy/internal/core/services/check_due_reminders"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	shutdownConsumers := consumers.InitConsumers(deps, services)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	ticker := time.NewTicker(deps.Config.PollInterval)
	defer ticker.Stop()

	deps.Logger.Info(
		context.Background(),
		"Starting due reminders check loop.",
		dl.Entry("pollIntervalSeconds", deps.Config.PollInterval.Seconds()),
	)

loop:
	for {
		select {
		case <-stopCh:
			break loop
		case <-ticker.C:
			_, err := services.CheckDueReminders.Run(context.Background(), checkduereminders.Input{})
			if err != nil {
				deps.Logger.Error(
					context.Background(),
					"Due reminders check returned an error.",
					dl.Entry("err", err),
				)
			}
		}
	}

	shutdownConsumers()
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	shutDownDeps()
	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
}
