package listreminders

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
)

type Input struct {
	UserIDEquals c.Optional[reminder.UserID]
	StatusIn     c.Optional[[]reminder.Status]
	Limit        c.Optional[uint]
	Offset       uint
}

type Result struct {
	Reminders  []reminder.Reminder
	TotalCount uint
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
	options := reminder.ReadOptions{
		UserIDEquals: input.UserIDEquals,
		StatusIn:     input.StatusIn,
		OrderBy:      reminder.OrderByAtAsc,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}

	reminders, err := s.store.Read(ctx, options)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	count, err := s.store.Count(ctx, options)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminders = reminders
	result.TotalCount = count
	return result, nil
}
