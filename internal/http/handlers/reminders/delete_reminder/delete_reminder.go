package deletereminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	service "batchbuddy/internal/core/services/delete_reminder"
	"batchbuddy/internal/http/handlers/response"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "reminderID")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.RenderNotFound(rw)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{ReminderID: reminder.ID(id)})
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}
