package setreminderstatus

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	completeservice "batchbuddy/internal/core/services/complete_reminder"
	service "batchbuddy/internal/core/services/set_reminder_status"
	"batchbuddy/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Handler sets a reminder status explicitly. Completion goes through the
// completing service so repeating reminders get their successor; other
// statuses are set directly.
type Handler struct {
	setStatus services.Service[service.Input, service.Result]
	complete  services.Service[completeservice.Input, completeservice.Result]
}

func New(
	setStatus services.Service[service.Input, service.Result],
	complete services.Service[completeservice.Input, completeservice.Result],
) *Handler {
	if setStatus == nil {
		panic(e.NewNilArgumentError("setStatus"))
	}
	if complete == nil {
		panic(e.NewNilArgumentError("complete"))
	}
	return &Handler{setStatus: setStatus, complete: complete}
}

type Input struct {
	Status string `json:"status"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Status, validation.Required),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "reminderID")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		response.RenderNotFound(rw)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	status, err := reminder.ParseStatus(input.Status)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	var rem reminder.Reminder
	if status == reminder.StatusCompleted {
		result, err := h.complete.Run(r.Context(), completeservice.Input{ReminderID: reminder.ID(id)})
		if err != nil {
			renderServiceError(rw, err)
			return
		}
		rem = result.Reminder
	} else {
		result, err := h.setStatus.Run(
			r.Context(),
			service.Input{ReminderID: reminder.ID(id), Status: status},
		)
		if err != nil {
			renderServiceError(rw, err)
			return
		}
		rem = result.Reminder
	}

	res := response.Reminder{}
	res.FromDomainType(rem)
	response.Render(rw, Result{Reminder: res}, http.StatusOK)
}

func renderServiceError(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reminder.ErrReminderDoesNotExist):
		response.RenderNotFound(rw)
	case errors.Is(err, reminder.ErrSnoozeRequiresMinutes):
		response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
	default:
		response.RenderInternalError(rw)
	}
}
