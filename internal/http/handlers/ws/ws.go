package ws

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/http/handlers/response"
	"batchbuddy/internal/hub"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
)

// Handler upgrades the connection and attaches it to the user's room. The
// client identifies itself with the userId query param and may switch rooms
// later with a join-user-room message.
type Handler struct {
	log      logging.Logger
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func New(log logging.Logger, h *hub.Hub, checkOrigin func(r *http.Request) bool) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if h == nil {
		panic(e.NewNilArgumentError("hub"))
	}
	return &Handler{
		log: log,
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawUserID := r.URL.Query().Get("userId")
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		h.log.Warning(r.Context(), "Could not upgrade connection.", logging.Entry("err", err))
		return
	}

	h.log.Info(r.Context(), "Push session opened.", logging.Entry("userID", userID))
	go hub.NewClient(h.hub, conn, reminder.UserID(userID)).Serve()
}
