package togglereminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	completeservice "batchbuddy/internal/core/services/complete_reminder"
	setstatusservice "batchbuddy/internal/core/services/set_reminder_status"
	"batchbuddy/internal/http/handlers/response"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler flips a reminder between completed and pending. Completing goes
// through the completing service so the repeat successor is created; reopening
// clears the completion bookkeeping.
type Handler struct {
	store     reminder.Repository
	complete  services.Service[completeservice.Input, completeservice.Result]
	setStatus services.Service[setstatusservice.Input, setstatusservice.Result]
}

func New(
	store reminder.Repository,
	complete services.Service[completeservice.Input, completeservice.Result],
	setStatus services.Service[setstatusservice.Input, setstatusservice.Result],
) *Handler {
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if complete == nil {
		panic(e.NewNilArgumentError("complete"))
	}
	if setStatus == nil {
		panic(e.NewNilArgumentError("setStatus"))
	}
	return &Handler{store: store, complete: complete, setStatus: setStatus}
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "reminderID")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.RenderNotFound(rw)
		return
	}

	rem, err := h.store.GetByID(r.Context(), reminder.ID(id))
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			response.RenderNotFound(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	var toggled reminder.Reminder
	if rem.Status == reminder.StatusCompleted {
		result, err := h.setStatus.Run(
			r.Context(),
			setstatusservice.Input{ReminderID: rem.ID, Status: reminder.StatusPending},
		)
		if err != nil {
			response.RenderInternalError(rw)
			return
		}
		toggled = result.Reminder
	} else {
		result, err := h.complete.Run(r.Context(), completeservice.Input{ReminderID: rem.ID})
		if err != nil {
			response.RenderInternalError(rw)
			return
		}
		toggled = result.Reminder
	}

	res := response.Reminder{}
	res.FromDomainType(toggled)
	response.Render(rw, Result{Reminder: res}, http.StatusOK)
}
