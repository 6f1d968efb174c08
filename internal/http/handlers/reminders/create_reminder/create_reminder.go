package createreminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	service "batchbuddy/internal/core/services/create_reminder"
	"batchbuddy/internal/http/handlers/response"
	"encoding/json"
	"io"
	"net/http"
	"time"

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

type Input struct {
	UserID            int64     `json:"user_id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	At                time.Time `json:"at"`
	Priority          string    `json:"priority"`
	NotifyBefore      int       `json:"notify_before_minutes"`
	Repeat            string    `json:"repeat"`
	NotificationTypes []string  `json:"notification_types"`
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
		validation.Field(&i.UserID, validation.Required),
		validation.Field(&i.Title, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Description, validation.Length(0, 4096)),
		validation.Field(&i.At, validation.Required),
		validation.Field(&i.NotifyBefore, validation.Min(0)),
		validation.Field(&i.NotificationTypes, validation.Length(0, 3)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	var priority reminder.Priority
	if input.Priority != "" {
		var err error
		priority, err = reminder.ParsePriority(input.Priority)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
	}
	var repeat reminder.Repeat
	if input.Repeat != "" {
		var err error
		repeat, err = reminder.ParseRepeat(input.Repeat)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
	}
	channels, err := reminder.ParseChannels(input.NotificationTypes)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			UserID:       reminder.UserID(input.UserID),
			Title:        input.Title,
			Description:  input.Description,
			At:           input.At.UTC(),
			Priority:     priority,
			NotifyBefore: time.Duration(input.NotifyBefore) * time.Minute,
			Repeat:       repeat,
			Channels:     channels,
		},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}
