package remindersender

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"encoding/json"
	"fmt"

	"github.com/r3labs/sse/v2"
)

// SseSender is the fallback push transport: server-sent events on per-user
// streams. It carries the same payload as the websocket channel, minus the
// bidirectional actions.
type SseSender struct {
	sseServer *sse.Server
}

func NewSse(sseServer *sse.Server) *SseSender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SseSender{sseServer: sseServer}
}

func (s *SseSender) SendDueReminder(ctx context.Context, rem reminder.Reminder, speech string) error {
	data, err := json.Marshal(reminder.NewDueEvent(rem, speech))
	if err != nil {
		return err
	}
	s.sseServer.Publish(
		StreamID(rem.UserID),
		&sse.Event{Event: []byte(reminder.EventDue), Data: data},
	)
	return nil
}

func StreamID(userID reminder.UserID) string {
	return fmt.Sprintf("%d", userID)
}
