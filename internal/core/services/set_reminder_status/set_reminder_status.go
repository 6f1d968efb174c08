package setreminderstatus

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
	"time"
)

type Input struct {
	ReminderID reminder.ID
	Status     reminder.Status
}

type Result struct {
	Reminder reminder.Reminder
}

// service sets a reminder status directly. Reopening (back to pending) clears
// the completion and snooze bookkeeping so the occurrence is evaluated fresh;
// dismissing is terminal without a successor.
type service struct {
	log   logging.Logger
	store reminder.Repository
	now   func() time.Time
}

func New(
	log logging.Logger,
	store reminder.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, store: store, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	// A snoozed reminder must carry a snoozed-until instant, which only the
	// snooze operation provides.
	if input.Status == reminder.StatusSnoozed {
		return result, reminder.ErrSnoozeRequiresMinutes
	}

	update := reminder.UpdateInput{
		ID:             input.ReminderID,
		DoStatusUpdate: true,
		Status:         input.Status,
	}
	switch input.Status {
	case reminder.StatusPending:
		update.DoCompletedAtUpdate = true
		update.CompletedAt = c.NewOptional(time.Time{}, false)
		update.DoSnoozedUntilUpdate = true
		update.SnoozedUntil = c.NewOptional(time.Time{}, false)
		update.DoNotifiedUpdate = true
		update.Notified = false
	case reminder.StatusCompleted, reminder.StatusDismissed:
		update.DoCompletedAtUpdate = true
		update.CompletedAt = c.NewOptional(s.now(), true)
		update.DoNotifiedUpdate = true
		update.Notified = true
	}

	updated, err := s.store.Update(ctx, update)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminder = updated
	s.log.Info(
		ctx,
		"Reminder status set.",
		logging.Entry("reminderID", updated.ID),
		logging.Entry("status", updated.Status),
	)
	return result, nil
}
