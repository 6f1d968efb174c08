package deliverreminder

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
)

type Input struct {
	Occurrence reminder.Occurrence
}

type Result struct {
	Reminder  reminder.Reminder
	Delivered bool
}

// service is the delivery multiplexer: given one due occurrence it acquires
// the per-occurrence guard, fans the reminder out to every authorized channel
// and arms the default action. One channel failing never blocks the others;
// delivery is best-effort per channel, at-least-once overall.
type service struct {
	log      logging.Logger
	store    reminder.ByIDReader
	guard    reminder.DeliveryGuard
	push     reminder.DueSender
	fallback reminder.DueSender
	email    reminder.DueSender
	actions  reminder.DefaultActioner
}

func New(
	log logging.Logger,
	store reminder.ByIDReader,
	guard reminder.DeliveryGuard,
	push reminder.DueSender,
	fallback reminder.DueSender,
	email reminder.DueSender,
	actions reminder.DefaultActioner,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if guard == nil {
		panic(e.NewNilArgumentError("guard"))
	}
	if push == nil {
		panic(e.NewNilArgumentError("push"))
	}
	if fallback == nil {
		panic(e.NewNilArgumentError("fallback"))
	}
	if email == nil {
		panic(e.NewNilArgumentError("email"))
	}
	if actions == nil {
		panic(e.NewNilArgumentError("actions"))
	}
	return &service{
		log:      log,
		store:    store,
		guard:    guard,
		push:     push,
		fallback: fallback,
		email:    email,
		actions:  actions,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem, err := s.store.GetByID(ctx, input.Occurrence.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("occurrence", input.Occurrence))
		return result, err
	}
	result.Reminder = rem

	if !rem.IsActive() {
		s.log.Info(
			ctx,
			"Reminder is no longer active, skip delivery.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("status", rem.Status),
		)
		return result, nil
	}
	if !rem.Occurrence().At.Equal(input.Occurrence.At) {
		s.log.Info(
			ctx,
			"Reminder due instant changed since enqueueing, skip delivery.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("enqueuedAt", input.Occurrence.At),
			logging.Entry("currentAt", rem.Occurrence().At),
		)
		return result, nil
	}
	if !s.guard.AcquireDelivery(ctx, input.Occurrence) {
		s.log.Info(
			ctx,
			"Occurrence already delivered by another trigger, skip.",
			logging.Entry("occurrence", input.Occurrence),
		)
		return result, nil
	}

	speech := Summary(rem)

	if rem.Channels.Has(reminder.ChannelPush) {
		if err := s.push.SendDueReminder(ctx, rem, speech); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID), logging.Entry("channel", "push"))
			if err := s.fallback.SendDueReminder(ctx, rem, speech); err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID), logging.Entry("channel", "fallback"))
			}
		}
	}
	if rem.Channels.Has(reminder.ChannelEmail) {
		if err := s.email.SendDueReminder(ctx, rem, speech); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID), logging.Entry("channel", "email"))
		}
	}

	s.actions.Arm(rem.ID)

	result.Delivered = true
	s.log.Info(
		ctx,
		"Reminder delivered.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("channels", rem.Channels.Strings()),
	)
	return result, nil
}
