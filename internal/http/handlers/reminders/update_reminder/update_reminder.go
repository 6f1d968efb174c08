package updatereminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	service "batchbuddy/internal/core/services/update_reminder"
	"batchbuddy/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
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

// Pointer fields distinguish "not sent" from "set to zero value".
type Input struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	At                *time.Time `json:"at"`
	Priority          *string    `json:"priority"`
	NotifyBefore      *int       `json:"notify_before_minutes"`
	Repeat            *string    `json:"repeat"`
	NotificationTypes []string   `json:"notification_types"`
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
		validation.Field(&i.Title, validation.Length(1, 256)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.NotifyBefore, validation.Min(0)),
		validation.Field(&i.NotificationTypes, validation.Length(0, 3)),
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

	serviceInput := service.Input{ReminderID: reminder.ID(id)}
	if input.Title != nil {
		serviceInput.DoTitleUpdate = true
		serviceInput.Title = *input.Title
	}
	if input.Description != nil {
		serviceInput.DoDescription = true
		serviceInput.Description = *input.Description
	}
	if input.At != nil {
		serviceInput.DoAtUpdate = true
		serviceInput.At = input.At.UTC()
	}
	if input.Priority != nil {
		priority, err := reminder.ParsePriority(*input.Priority)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		serviceInput.DoPriority = true
		serviceInput.Priority = priority
	}
	if input.NotifyBefore != nil {
		serviceInput.DoNotifyBefore = true
		serviceInput.NotifyBefore = time.Duration(*input.NotifyBefore) * time.Minute
	}
	if input.Repeat != nil {
		repeat, err := reminder.ParseRepeat(*input.Repeat)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		serviceInput.DoRepeat = true
		serviceInput.Repeat = repeat
	}
	if input.NotificationTypes != nil {
		channels, err := reminder.ParseChannels(input.NotificationTypes)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		serviceInput.DoChannels = true
		serviceInput.Channels = channels
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusOK)
}
