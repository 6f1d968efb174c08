package remindersender

import (
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	*reminder.TestEventPublisher
	sessions int
}

func (b *fakeBroker) SessionCount(userID reminder.UserID) int {
	return b.sessions
}

func TestPushSenderPublishesDueEvent(t *testing.T) {
	// Setup ---
	broker := &fakeBroker{TestEventPublisher: reminder.NewTestEventPublisher(), sessions: 1}
	sender := NewPush(broker)
	rem := reminder.Reminder{
		ID:       1,
		UserID:   7,
		Title:    "Submit lab report",
		At:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Priority: reminder.PriorityHigh,
		Channels: reminder.NewChannels(reminder.ChannelPush, reminder.ChannelSound),
	}

	// Exercise ---
	err := sender.SendDueReminder(context.Background(), rem, "Reminder: Submit lab report.")

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Len(broker.Published, 1)
	assert.Equal(reminder.UserID(7), broker.Published[0].UserID)
	assert.Equal(reminder.EventDue, broker.Published[0].Name)
	event, ok := broker.Published[0].Payload.(reminder.DueEvent)
	assert.True(ok)
	assert.Equal("Submit lab report", event.Title)
	assert.Equal("2024-03-01", event.Date)
	assert.Equal("10:30", event.Time)
	assert.True(event.Sound)
}

func TestPushSenderFailsWhenNoSessions(t *testing.T) {
	broker := &fakeBroker{TestEventPublisher: reminder.NewTestEventPublisher(), sessions: 0}
	sender := NewPush(broker)

	err := sender.SendDueReminder(context.Background(), reminder.Reminder{ID: 1, UserID: 7}, "")

	assert := require.New(t)
	assert.ErrorIs(err, ErrNoActiveSessions)
	assert.Len(broker.Published, 0)
}
