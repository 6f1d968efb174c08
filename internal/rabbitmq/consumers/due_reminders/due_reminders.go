package duereminders

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	deliverreminder "batchbuddy/internal/core/services/deliver_reminder"
	"batchbuddy/internal/rabbitmq"
	"batchbuddy/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer drains the due reminders queue and hands every occurrence to the
// delivery service. The checker marks a reminder notified as soon as the
// occurrence is enqueued, so a failed delivery is requeued here rather than
// acknowledged: acking it would lose the occurrence for good. Messages that
// cannot be unmarshaled are acknowledged to keep them out of the queue.
type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[deliverreminder.Input, deliverreminder.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[deliverreminder.Input, deliverreminder.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(delivery)
		}
	}()
	return nil
}

func (c *Consumer) handle(delivery amqp091.Delivery) {
	occurrence := &schema.DueOccurrence{}
	if err := occurrence.Unmarshal(delivery.Body); err != nil {
		c.log.Error(
			context.Background(),
			"Could not unmarshal due occurrence.",
			logging.Entry("err", err),
			logging.Entry("delivery", delivery),
		)
		c.Ack(delivery)
		return
	}

	c.log.Info(
		context.Background(),
		"Got due occurrence for delivery.",
		logging.Entry("occurrence", occurrence),
	)
	_, err := c.service.Run(
		context.Background(),
		deliverreminder.Input{
			Occurrence: reminder.Occurrence{ID: reminder.ID(occurrence.ID), At: occurrence.At},
		},
	)
	if err != nil {
		c.log.Error(
			context.Background(),
			"Could not deliver reminder, requeueing occurrence.",
			logging.Entry("occurrence", occurrence),
			logging.Entry("err", err),
		)
		c.Nack(delivery)
		return
	}
	c.Ack(delivery)
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) Nack(delivery amqp091.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(context.Background(), "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
