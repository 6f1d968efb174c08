package completereminder

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
}

type Result struct {
	Reminder  reminder.Reminder
	Successor c.Optional[reminder.Reminder]
}

// service completes the current occurrence. Completion is terminal for the
// occurrence; a repeating reminder gets exactly one successor with the due
// instant advanced by the repeat unit. Completing an already completed
// reminder is a no-op, which keeps the default action and an explicit user
// click from racing into two successors.
type service struct {
	log       logging.Logger
	store     reminder.Repository
	publisher reminder.EventPublisher
	actions   reminder.DefaultActioner
	now       func() time.Time
}

func New(
	log logging.Logger,
	store reminder.Repository,
	publisher reminder.EventPublisher,
	actions reminder.DefaultActioner,
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
	return &service{
		log:       log,
		store:     store,
		publisher: publisher,
		actions:   actions,
		now:       now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.store.GetByID(ctx, input.ReminderID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.actions.Cancel(rem.ID)

	if rem.Status == reminder.StatusCompleted {
		s.log.Info(
			ctx,
			"Reminder is already completed, skip.",
			logging.Entry("reminderID", rem.ID),
		)
		result.Reminder = rem
		return result, nil
	}

	updated, err := s.store.Update(ctx, reminder.UpdateInput{
		ID:                  rem.ID,
		DoStatusUpdate:      true,
		Status:              reminder.StatusCompleted,
		DoCompletedAtUpdate: true,
		CompletedAt:         c.NewOptional(s.now(), true),
		DoNotifiedUpdate:    true,
		Notified:            true,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminder = updated

	if rem.Repeat.IsRepeating() {
		successor, err := s.store.Create(ctx, reminder.CreateInput{
			UserID:       rem.UserID,
			Title:        rem.Title,
			Description:  rem.Description,
			At:           rem.Repeat.NextFrom(rem.At),
			Priority:     rem.Priority,
			NotifyBefore: rem.NotifyBefore,
			Repeat:       rem.Repeat,
			Status:       reminder.StatusPending,
			Channels:     rem.Channels,
			Notified:     false,
			CreatedAt:    s.now(),
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			return result, err
		}
		result.Successor = c.NewOptional(successor, true)
		s.log.Info(
			ctx,
			"Successor created for repeating reminder.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("successorID", successor.ID),
			logging.Entry("successorAt", successor.At),
		)
	}

	if err := s.publisher.PublishEvent(
		ctx,
		rem.UserID,
		reminder.EventCompleted,
		reminder.CompletedEvent{ID: int64(rem.ID)},
	); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
	}

	s.log.Info(ctx, "Reminder completed.", logging.Entry("reminderID", rem.ID))
	return result, nil
}
