package listreminders

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	service "batchbuddy/internal/core/services/list_reminders"
	"batchbuddy/internal/http/handlers/response"
	"net/http"
	"strconv"
)

const maxLimit = 500

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

type Result struct {
	Reminders  []response.Reminder `json:"data"`
	TotalCount uint                `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := service.Input{Limit: c.NewOptional(uint(maxLimit), true)}

	query := r.URL.Query()
	if rawUserID := query.Get("user_id"); rawUserID != "" {
		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil {
			response.RenderError(rw, "invalid user_id", http.StatusBadRequest)
			return
		}
		input.UserIDEquals = c.NewOptional(reminder.UserID(userID), true)
	}
	if rawStatus := query.Get("status"); rawStatus != "" {
		status, err := reminder.ParseStatus(rawStatus)
		if err != nil {
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
			return
		}
		input.StatusIn = c.NewOptional([]reminder.Status{status}, true)
	}
	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.ParseUint(rawLimit, 10, 32)
		if err != nil || limit > maxLimit {
			response.RenderError(rw, "invalid limit", http.StatusBadRequest)
			return
		}
		input.Limit = c.NewOptional(uint(limit), true)
	}
	if rawOffset := query.Get("offset"); rawOffset != "" {
		offset, err := strconv.ParseUint(rawOffset, 10, 32)
		if err != nil {
			response.RenderError(rw, "invalid offset", http.StatusBadRequest)
			return
		}
		input.Offset = uint(offset)
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(
		rw,
		Result{Reminders: response.Reminders(result.Reminders), TotalCount: result.TotalCount},
		http.StatusOK,
	)
}
