package updatereminder

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
	ReminderID     reminder.ID
	DoTitleUpdate  bool
	Title          string
	DoDescription  bool
	Description    string
	DoAtUpdate     bool
	At             time.Time
	DoPriority     bool
	Priority       reminder.Priority
	DoNotifyBefore bool
	NotifyBefore   time.Duration
	DoRepeat       bool
	Repeat         reminder.Repeat
	DoChannels     bool
	Channels       reminder.Channels
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log   logging.Logger
	store reminder.Repository
}

func New(log logging.Logger, store reminder.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	return &service{log: log, store: store}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.store.GetByID(ctx, input.ReminderID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	update := reminder.UpdateInput{
		ID:                   rem.ID,
		DoTitleUpdate:        input.DoTitleUpdate,
		Title:                input.Title,
		DoDescriptionUpdate:  input.DoDescription,
		Description:          input.Description,
		DoAtUpdate:           input.DoAtUpdate,
		At:                   input.At.UTC(),
		DoPriorityUpdate:     input.DoPriority,
		Priority:             input.Priority,
		DoNotifyBeforeUpdate: input.DoNotifyBefore,
		NotifyBefore:         input.NotifyBefore,
		DoRepeatUpdate:       input.DoRepeat,
		Repeat:               input.Repeat,
		DoChannelsUpdate:     input.DoChannels,
		Channels:             input.Channels,
	}
	// Moving the due instant makes a fresh occurrence: it must be evaluated
	// again even if the old one already fired.
	if input.DoAtUpdate {
		update.DoNotifiedUpdate = true
		update.Notified = false
		update.DoSnoozedUntilUpdate = true
		update.SnoozedUntil = c.NewOptional(time.Time{}, false)
	}

	updated, err := s.store.Update(ctx, update)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminder = updated
	s.log.Info(ctx, "Reminder updated.", logging.Entry("reminderID", updated.ID))
	return result, nil
}
