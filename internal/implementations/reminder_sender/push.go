package remindersender

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"errors"
)

var ErrNoActiveSessions = errors.New("user has no active push sessions")

// PushBroker is the websocket hub surface the push sender needs.
type PushBroker interface {
	reminder.EventPublisher
	SessionCount(userID reminder.UserID) int
}

// PushSender delivers the due event to the user's live websocket sessions.
// The browser side turns the payload into an alert, sound and speech. When the
// user has no open session the sender fails fast so the multiplexer can use
// the fallback channel.
type PushSender struct {
	broker PushBroker
}

func NewPush(broker PushBroker) *PushSender {
	if broker == nil {
		panic(e.NewNilArgumentError("broker"))
	}
	return &PushSender{broker: broker}
}

func (s *PushSender) SendDueReminder(ctx context.Context, rem reminder.Reminder, speech string) error {
	if s.broker.SessionCount(rem.UserID) == 0 {
		return ErrNoActiveSessions
	}
	return s.broker.PublishEvent(ctx, rem.UserID, reminder.EventDue, reminder.NewDueEvent(rem, speech))
}
