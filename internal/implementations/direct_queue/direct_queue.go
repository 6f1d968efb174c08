package directqueue

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	deliverreminder "batchbuddy/internal/core/services/deliver_reminder"
	"context"
)

// Direct invokes delivery inline, used when no message broker is configured.
// The checker then delivers during its own tick; errors surface to the
// checker so the reminder stays un-notified and is retried next tick.
type Direct struct {
	log     logging.Logger
	service services.Service[deliverreminder.Input, deliverreminder.Result]
}

func New(
	log logging.Logger,
	service services.Service[deliverreminder.Input, deliverreminder.Result],
) *Direct {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Direct{log: log, service: service}
}

func (q *Direct) EnqueueDue(ctx context.Context, occurrence reminder.Occurrence) error {
	_, err := q.service.Run(ctx, deliverreminder.Input{Occurrence: occurrence})
	if err != nil {
		logging.Error(ctx, q.log, err, logging.Entry("occurrence", occurrence))
	}
	return err
}
