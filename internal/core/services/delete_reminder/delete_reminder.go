package deletereminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
)

type Input struct {
	ReminderID reminder.ID
}

type Result struct{}

type service struct {
	log     logging.Logger
	store   reminder.Repository
	actions reminder.DefaultActioner
}

func New(
	log logging.Logger,
	store reminder.Repository,
	actions reminder.DefaultActioner,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if actions == nil {
		panic(e.NewNilArgumentError("actions"))
	}
	return &service{log: log, store: store, actions: actions}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	s.actions.Cancel(input.ReminderID)
	if err := s.store.Delete(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Info(ctx, "Reminder deleted.", logging.Entry("reminderID", input.ReminderID))
	return result, nil
}
