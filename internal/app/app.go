package app

import (
	"batchbuddy/internal/app/deps"
	"batchbuddy/internal/app/services"
	"batchbuddy/internal/http/handlers/events"
	createreminder "batchbuddy/internal/http/handlers/reminders/create_reminder"
	deletereminder "batchbuddy/internal/http/handlers/reminders/delete_reminder"
	listreminders "batchbuddy/internal/http/handlers/reminders/list_reminders"
	setreminderstatus "batchbuddy/internal/http/handlers/reminders/set_reminder_status"
	snoozereminder "batchbuddy/internal/http/handlers/reminders/snooze_reminder"
	togglereminder "batchbuddy/internal/http/handlers/reminders/toggle_reminder"
	updatereminder "batchbuddy/internal/http/handlers/reminders/update_reminder"
	"batchbuddy/internal/http/handlers/ws"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// InitHttpServer builds the CRUD surface, which needs the local database.
// STORE_URL-only setups run cmd/checker instead.
func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	if deps.ReminderRepository == nil {
		panic("the HTTP server requires POSTGRESQL_URL, run cmd/checker for a STORE_URL-only setup")
	}

	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders))
	reminderRouter.Method(http.MethodPut, "/{reminderID:[0-9]+}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))
	reminderRouter.Method(
		http.MethodPatch,
		"/{reminderID:[0-9]+}/toggle",
		togglereminder.New(deps.ReminderRepository, s.CompleteReminder, s.SetReminderStatus),
	)
	reminderRouter.Method(
		http.MethodPatch,
		"/{reminderID:[0-9]+}/snooze",
		snoozereminder.New(s.SnoozeReminder),
	)
	reminderRouter.Method(
		http.MethodPatch,
		"/{reminderID:[0-9]+}/status",
		setreminderstatus.New(s.SetReminderStatus, s.CompleteReminder),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/reminders", reminderRouter)
	router.Method(http.MethodGet, "/events", events.New(deps.Logger, deps.SseServer))
	router.Method(http.MethodGet, "/ws", ws.New(deps.Logger, deps.Hub, originChecker(deps.Config.AllowedOrigins)))

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			return func(r *http.Request) bool { return true }
		}
		allowed[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		_, ok := allowed[r.Header.Get("Origin")]
		return ok
	}
}
