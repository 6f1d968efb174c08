package snoozereminder

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
	"time"
)

const DefaultMinutes = 15

type Input struct {
	ReminderID reminder.ID
	Minutes    int
}

type Result struct {
	Reminder reminder.Reminder
}

// service pushes the due instant of an active reminder into the future. The
// reminder returns to due-check evaluation with the new instant and a reset
// notified flag; it is never marked completed.
type service struct {
	log            logging.Logger
	store          reminder.Repository
	publisher      reminder.EventPublisher
	actions        reminder.DefaultActioner
	defaultMinutes int
	now            func() time.Time
}

func New(
	log logging.Logger,
	store reminder.Repository,
	publisher reminder.EventPublisher,
	actions reminder.DefaultActioner,
	defaultMinutes int,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if actions == nil {
		panic(e.NewNilArgumentError("actions"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if defaultMinutes <= 0 {
		defaultMinutes = DefaultMinutes
	}
	return &service{
		log:            log,
		store:          store,
		publisher:      publisher,
		actions:        actions,
		defaultMinutes: defaultMinutes,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	minutes := input.Minutes
	if minutes == 0 {
		minutes = s.defaultMinutes
	}
	if minutes < 0 {
		return result, reminder.ErrSnoozeNotInFuture
	}

	rem, err := s.store.GetByID(ctx, input.ReminderID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !rem.IsActive() {
		s.log.Info(
			ctx,
			"Reminder is not active, snooze rejected.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("status", rem.Status),
		)
		return result, reminder.ErrReminderNotActive
	}

	s.actions.Cancel(rem.ID)

	snoozedUntil := s.now().Add(time.Duration(minutes) * time.Minute)
	updated, err := s.store.Update(ctx, reminder.UpdateInput{
		ID:                   rem.ID,
		DoStatusUpdate:       true,
		Status:               reminder.StatusSnoozed,
		DoSnoozedUntilUpdate: true,
		SnoozedUntil:         c.NewOptional(snoozedUntil, true),
		DoNotifiedUpdate:     true,
		Notified:             false,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminder = updated

	if err := s.publisher.PublishEvent(
		ctx,
		rem.UserID,
		reminder.EventSnoozed,
		reminder.SnoozedEvent{ID: int64(rem.ID), Title: rem.Title, Minutes: minutes},
	); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
	}

	s.log.Info(
		ctx,
		"Reminder snoozed.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("until", snoozedUntil),
	)
	return result, nil
}
