package completereminder

import (
	c "batchbuddy/internal/core/domain/common"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *reminder.TestRepository
	publisher *reminder.TestEventPublisher
	actions   *reminder.TestDefaultActioner
	service   *service
}

func newFixture(reminders ...reminder.Reminder) *fixture {
	f := &fixture{
		repo:      reminder.NewTestRepository(reminders...),
		publisher: reminder.NewTestEventPublisher(),
		actions:   reminder.NewTestDefaultActioner(),
	}
	f.service = New(
		logging.NewFakeLogger(),
		f.repo,
		f.publisher,
		f.actions,
		func() time.Time { return now },
	).(*service)
	return f
}

func pendingReminder(repeat reminder.Repeat) reminder.Reminder {
	return reminder.Reminder{
		ID:       1,
		UserID:   7,
		Title:    "Lecture",
		At:       time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Priority: reminder.PriorityMedium,
		Repeat:   repeat,
		Status:   reminder.StatusPending,
		Channels: reminder.NewChannels(reminder.ChannelPush),
	}
}

func TestCompleteNonRepeatingCreatesNoSuccessor(t *testing.T) {
	// Setup ---
	f := newFixture(pendingReminder(reminder.RepeatNever))

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(reminder.StatusCompleted, result.Reminder.Status)
	assert.Equal(c.NewOptional(now, true), result.Reminder.CompletedAt)
	assert.False(result.Successor.IsPresent)
	assert.Len(f.repo.Created, 0)
}

func TestCompleteDailyCreatesSuccessorNextDay(t *testing.T) {
	// Setup ---
	f := newFixture(pendingReminder(reminder.RepeatDaily))

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.Successor.IsPresent)
	assert.Len(f.repo.Created, 1)

	successor := result.Successor.Value
	assert.Equal(reminder.StatusPending, successor.Status)
	assert.False(successor.Notified)
	assert.True(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC).Equal(successor.At))
	assert.Equal(reminder.RepeatDaily, successor.Repeat)
}

func TestCompleteWeeklySuccessorDate(t *testing.T) {
	// Setup ---
	f := newFixture(pendingReminder(reminder.RepeatWeekly))

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.True(result.Successor.IsPresent)
	assert.True(time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC).Equal(result.Successor.Value.At))
	assert.False(result.Successor.Value.CompletedAt.IsPresent)
}

func TestCompleteTwiceCreatesExactlyOneSuccessor(t *testing.T) {
	// Setup ---
	f := newFixture(pendingReminder(reminder.RepeatDaily))

	// Exercise ---
	_, errFirst := f.service.Run(context.Background(), Input{ReminderID: 1})
	second, errSecond := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(errFirst)
	assert.Nil(errSecond)
	assert.False(second.Successor.IsPresent)
	assert.Len(f.repo.Created, 1)
}

func TestCompleteCancelsDefaultActionAndPublishesEvent(t *testing.T) {
	// Setup ---
	f := newFixture(pendingReminder(reminder.RepeatNever))

	// Exercise ---
	_, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal([]reminder.ID{1}, f.actions.Canceled)
	assert.Len(f.publisher.Published, 1)
	assert.Equal(reminder.EventCompleted, f.publisher.Published[0].Name)
	assert.Equal(reminder.UserID(7), f.publisher.Published[0].UserID)
}

func TestCompleteUnknownReminderReturnsError(t *testing.T) {
	// Setup ---
	f := newFixture()

	// Exercise ---
	_, err := f.service.Run(context.Background(), Input{ReminderID: 42})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)
	assert.Len(f.publisher.Published, 0)
}
