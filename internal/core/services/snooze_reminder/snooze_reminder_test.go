package snoozereminder

import (
	c "batchbuddy/internal/core/domain/common"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *reminder.TestRepository
	publisher *reminder.TestEventPublisher
	actions   *reminder.TestDefaultActioner
	service   *service
}

func newFixture(reminders ...reminder.Reminder) *fixture {
	return newFixtureWithDefault(DefaultMinutes, reminders...)
}

func newFixtureWithDefault(defaultMinutes int, reminders ...reminder.Reminder) *fixture {
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
		defaultMinutes,
		func() time.Time { return now },
	).(*service)
	return f
}

func dueReminder() reminder.Reminder {
	return reminder.Reminder{
		ID:       1,
		UserID:   7,
		Title:    "Lecture",
		At:       now.Add(-time.Minute),
		Priority: reminder.PriorityMedium,
		Repeat:   reminder.RepeatNever,
		Status:   reminder.StatusPending,
		Channels: reminder.NewChannels(reminder.ChannelPush),
		Notified: true,
	}
}

func TestSnoozePushesInstantIntoFuture(t *testing.T) {
	// Setup ---
	f := newFixture(dueReminder())

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1, Minutes: 15})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(reminder.StatusSnoozed, result.Reminder.Status)
	assert.Equal(c.NewOptional(now.Add(15*time.Minute), true), result.Reminder.SnoozedUntil)
	assert.False(result.Reminder.Notified)
	assert.False(result.Reminder.CompletedAt.IsPresent)
}

func TestSnoozedReminderNotDueUntilNewInstant(t *testing.T) {
	// Setup ---
	f := newFixture(dueReminder())
	check := reminder.NewDueCheck(reminder.PolicyAtLeastOnce, time.Minute, false)

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1, Minutes: 15})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.False(check.IsDue(result.Reminder, now))
	assert.True(check.IsDue(result.Reminder, now.Add(15*time.Minute)))
}

func TestSnoozeDefaultsToFifteenMinutes(t *testing.T) {
	// Setup ---
	f := newFixture(dueReminder())

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(c.NewOptional(now.Add(15*time.Minute), true), result.Reminder.SnoozedUntil)
}

func TestSnoozeUsesConfiguredDefaultMinutes(t *testing.T) {
	// Setup ---
	f := newFixtureWithDefault(30, dueReminder())

	// Exercise ---
	result, err := f.service.Run(context.Background(), Input{ReminderID: 1})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(c.NewOptional(now.Add(30*time.Minute), true), result.Reminder.SnoozedUntil)
}

func TestSnoozeNegativeMinutesRejected(t *testing.T) {
	// Setup ---
	f := newFixture(dueReminder())

	// Exercise ---
	_, err := f.service.Run(context.Background(), Input{ReminderID: 1, Minutes: -5})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, reminder.ErrSnoozeNotInFuture)
	assert.Len(f.repo.Updated, 0)
}

func TestSnoozeCompletedReminderRejected(t *testing.T) {
	// Setup ---
	rem := dueReminder()
	rem.Status = reminder.StatusCompleted
	rem.CompletedAt = c.NewOptional(now.Add(-time.Hour), true)
	f := newFixture(rem)

	// Exercise ---
	_, err := f.service.Run(context.Background(), Input{ReminderID: 1, Minutes: 15})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, reminder.ErrReminderNotActive)
	assert.Len(f.publisher.Published, 0)
}

func TestSnoozeCancelsDefaultActionAndPublishesEvent(t *testing.T) {
	// Setup ---
	f := newFixture(dueReminder())

	// Exercise ---
	_, err := f.service.Run(context.Background(), Input{ReminderID: 1, Minutes: 10})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal([]reminder.ID{1}, f.actions.Canceled)
	assert.Len(f.publisher.Published, 1)
	assert.Equal(reminder.EventSnoozed, f.publisher.Published[0].Name)

	payload, ok := f.publisher.Published[0].Payload.(reminder.SnoozedEvent)
	assert.True(ok)
	assert.Equal(10, payload.Minutes)
	assert.Equal("Lecture", payload.Title)
}
