package createreminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
	"time"
)

type Input struct {
	UserID       reminder.UserID
	Title        string
	Description  string
	At           time.Time
	Priority     reminder.Priority
	NotifyBefore time.Duration
	Repeat       reminder.Repeat
	Channels     reminder.Channels
}

type Result struct {
	Reminder reminder.Reminder
}

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
	priority := input.Priority
	if priority == reminder.PriorityUnknown {
		priority = reminder.PriorityMedium
	}
	repeat := input.Repeat
	if repeat.IsZero() {
		repeat = reminder.RepeatNever
	}
	channels := input.Channels
	if len(channels) == 0 {
		channels = reminder.NewChannels(reminder.ChannelPush)
	}

	rem, err := s.store.Create(ctx, reminder.CreateInput{
		UserID:       input.UserID,
		Title:        input.Title,
		Description:  input.Description,
		At:           input.At.UTC(),
		Priority:     priority,
		NotifyBefore: input.NotifyBefore,
		Repeat:       repeat,
		Status:       reminder.StatusPending,
		Channels:     channels,
		Notified:     false,
		CreatedAt:    s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminder = rem
	s.log.Info(
		ctx,
		"Reminder created.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("at", rem.At),
	)
	return result, nil
}
