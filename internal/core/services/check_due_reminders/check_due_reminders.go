package checkduereminders

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	"context"
	"time"
)

type Input struct{}

type Result struct {
	Checked  int
	Enqueued int
}

// service is the body of one polling tick: read the active reminder set,
// evaluate each with the due check, enqueue the due ones for delivery and
// mark them notified so the next tick does not re-fire them. Enqueue and
// mark failures leave the reminder untouched for the next tick.
type service struct {
	log      logging.Logger
	store    reminder.PendingReader
	marker   reminder.NotifiedMarker
	queue    reminder.Queue
	dueCheck reminder.DueCheck
	now      func() time.Time
}

func New(
	log logging.Logger,
	store reminder.PendingReader,
	marker reminder.NotifiedMarker,
	queue reminder.Queue,
	dueCheck reminder.DueCheck,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if store == nil {
		panic(e.NewNilArgumentError("store"))
	}
	if marker == nil {
		panic(e.NewNilArgumentError("marker"))
	}
	if queue == nil {
		panic(e.NewNilArgumentError("queue"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:      log,
		store:    store,
		marker:   marker,
		queue:    queue,
		dueCheck: dueCheck,
		now:      now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	reminders, err := s.store.ReadPending(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.Checked = len(reminders)

	now := s.now()
	for _, rem := range reminders {
		if rem.IsActive() && rem.EffectiveAt().IsZero() {
			s.log.Warning(
				ctx,
				"Reminder has an unparseable due instant, skipping.",
				logging.Entry("reminderID", rem.ID),
			)
			continue
		}
		if !s.dueCheck.IsDue(rem, now) {
			continue
		}

		if err := s.queue.EnqueueDue(ctx, rem.Occurrence()); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		if err := s.marker.MarkNotified(ctx, rem.ID); err != nil {
			// Delivery is already enqueued; the guard downstream absorbs the
			// duplicate this may cause on the next tick.
			logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
			continue
		}
		result.Enqueued++
	}

	if result.Enqueued > 0 {
		s.log.Info(
			ctx,
			"Due reminders enqueued for delivery.",
			logging.Entry("checked", result.Checked),
			logging.Entry("enqueued", result.Enqueued),
		)
	}
	return result, nil
}
