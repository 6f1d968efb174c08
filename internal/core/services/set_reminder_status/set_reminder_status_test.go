package setreminderstatus

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

func TestReopenClearsCompletionState(t *testing.T) {
	// Setup ---
	repo := reminder.NewTestRepository(reminder.Reminder{
		ID:          1,
		Title:       "Lecture",
		At:          now.Add(-time.Hour),
		Status:      reminder.StatusCompleted,
		CompletedAt: c.NewOptional(now.Add(-time.Minute), true),
		Notified:    true,
	})
	service := New(logging.NewFakeLogger(), repo, func() time.Time { return now })

	// Exercise ---
	result, err := service.Run(context.Background(), Input{ReminderID: 1, Status: reminder.StatusPending})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(reminder.StatusPending, result.Reminder.Status)
	assert.False(result.Reminder.CompletedAt.IsPresent)
	assert.False(result.Reminder.SnoozedUntil.IsPresent)
	assert.False(result.Reminder.Notified)
}

func TestSnoozedStatusRejectedWithoutDuration(t *testing.T) {
	// Setup ---
	repo := reminder.NewTestRepository(reminder.Reminder{
		ID:     1,
		Title:  "Lecture",
		At:     now.Add(-time.Hour),
		Status: reminder.StatusPending,
	})
	service := New(logging.NewFakeLogger(), repo, func() time.Time { return now })

	// Exercise ---
	_, err := service.Run(context.Background(), Input{ReminderID: 1, Status: reminder.StatusSnoozed})

	// Verify ---
	assert := require.New(t)
	assert.ErrorIs(err, reminder.ErrSnoozeRequiresMinutes)
	assert.Len(repo.Updated, 0)
}

func TestDismissIsTerminal(t *testing.T) {
	// Setup ---
	repo := reminder.NewTestRepository(reminder.Reminder{
		ID:     1,
		Title:  "Lecture",
		At:     now.Add(-time.Hour),
		Status: reminder.StatusPending,
	})
	service := New(logging.NewFakeLogger(), repo, func() time.Time { return now })

	// Exercise ---
	result, err := service.Run(context.Background(), Input{ReminderID: 1, Status: reminder.StatusDismissed})

	// Verify ---
	assert := require.New(t)
	assert.Nil(err)
	assert.Equal(reminder.StatusDismissed, result.Reminder.Status)
	assert.True(result.Reminder.Notified)
	assert.True(result.Reminder.CompletedAt.IsPresent)
}
