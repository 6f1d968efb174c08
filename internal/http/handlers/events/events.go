package events

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/http/handlers/response"
	"net/http"
	"strconv"

	"github.com/r3labs/sse/v2"
)

// Handler serves the fallback push channel: server-sent events on per-user
// streams. The stream query param is the user ID; user identity itself is
// handled by the outer application, so the value is only checked for shape.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(log logging.Logger, sseServer *sse.Server) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream")
	if _, err := strconv.ParseInt(streamID, 10, 64); err != nil {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}

	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from user events.",
			logging.Entry("streamID", streamID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to user events.",
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
