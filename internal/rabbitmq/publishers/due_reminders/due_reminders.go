package duereminders

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/rabbitmq"
	"batchbuddy/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ enqueues due occurrences for the delivery consumer. Messages are
// published to the default exchange with the queue name as the routing key.
type RabbitMQ struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	return &RabbitMQ{log: log, channel: channel, queue: queue}
}

func (q *RabbitMQ) EnqueueDue(ctx context.Context, occurrence reminder.Occurrence) error {
	message := schema.DueOccurrence{ID: int64(occurrence.ID), At: occurrence.At}
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, q.log, err, logging.Entry("occurrence", occurrence))
		return err
	}

	err = q.channel.PublishWithContext(ctx, "", q.queue, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, q.log, err, logging.Entry("occurrence", occurrence))
		return err
	}
	q.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("queue", q.queue),
		logging.Entry("reminderID", occurrence.ID),
	)
	return nil
}
