package consumers

import (
	"batchbuddy/internal/app/deps"
	"batchbuddy/internal/app/services"
	dl "batchbuddy/internal/core/domain/logging"
	duereminders "batchbuddy/internal/rabbitmq/consumers/due_reminders"
	"context"
)

func initDueRemindersConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqDueQueue
	dueRemindersConsumer := duereminders.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.DeliverReminder,
	)
	if err = dueRemindersConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

// InitConsumers starts the due reminders consumer when a broker is
// configured. Without one the checker delivers inline and there is nothing to
// consume.
func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	shutdownDueRemindersConsumer := initDueRemindersConsumer(deps, services)

	return func() {
		shutdownDueRemindersConsumer()
	}
}
