package deps

import (
	"batchbuddy/internal/config"
	dl "batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	dbreminder "batchbuddy/internal/db/reminder"
	"batchbuddy/internal/httpstore"
	"batchbuddy/internal/hub"
	autoaction "batchbuddy/internal/implementations/auto_action"
	deliveryguard "batchbuddy/internal/implementations/delivery_guard"
	"batchbuddy/internal/implementations/logging"
	remindersender "batchbuddy/internal/implementations/reminder_sender"
	"batchbuddy/internal/rabbitmq"
	duereminders "batchbuddy/internal/rabbitmq/publishers/due_reminders"
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB              *pgxpool.Pool
	Redis           *redis.Client
	Rabbitmq        *rabbitmq.Connection
	RabbitmqChannel *rabbitmq.Channel
	SseServer       *sse.Server
	Hub             *hub.Hub
	Registry        *hub.Registry

	Now func() time.Time

	// ReminderRepository is nil when only a remote store is configured;
	// RemoteStore is nil when only the local database is configured.
	ReminderRepository *dbreminder.PgxRepository
	RemoteStore        *httpstore.Store

	DeliveryGuard  reminder.DeliveryGuard
	AutoActions    *autoaction.Registry
	EventPublisher reminder.EventPublisher
	PushSender     reminder.DueSender
	FallbackSender reminder.DueSender
	EmailSender    reminder.DueSender

	// DueQueue is nil when no broker is configured; the services layer then
	// falls back to inline delivery.
	DueQueue reminder.Queue
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()
	closeHub := deps.initHub()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.Registry = hub.NewRegistry()
	deps.EventPublisher = hub.NewFanout(deps.Registry, deps.Hub)

	if deps.DB != nil {
		deps.ReminderRepository = dbreminder.NewPgxRepository(deps.DB)
	}
	if deps.Config.StoreURL != "" {
		deps.RemoteStore = httpstore.New(deps.Config.StoreURL, deps.Logger)
	}

	if deps.Redis != nil {
		deps.DeliveryGuard = deliveryguard.NewRedis(deps.Redis, deps.Logger)
	} else {
		deps.DeliveryGuard = deliveryguard.NewAllowAlways()
	}

	deps.AutoActions = autoaction.NewRegistry(deps.Logger, deps.Config.AutoActionTimeout)
	closeAutoActions := func() {
		deps.Logger.Info(context.Background(), "Shutting down auto action timers.")
		deps.AutoActions.Stop()
	}

	deps.PushSender = remindersender.NewPush(deps.Hub)
	deps.FallbackSender = remindersender.NewSse(deps.SseServer)
	if deps.Config.EmailEnabled() {
		deps.initAwsConfig()
		deps.EmailSender = remindersender.NewEmail(
			deps.AwsConfig,
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailRecipient,
			deps.Config.AwsEmailDueTemplate,
		)
	} else {
		deps.EmailSender = remindersender.NewNoop()
	}

	closeDueQueue := deps.initDueQueue()

	return deps, func() {
		closeFuncs := []func(){
			closeAutoActions,
			closeHub,
			closeSseServer,
			closeDueQueue,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	if deps.Config.PostgresqlURL == "" {
		return func() {}
	}
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		return func() {}
	}
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initHub() func() {
	deps.Hub = hub.New(deps.Logger)
	go deps.Hub.Run()
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down websocket hub.")
		deps.Hub.Close()
		deps.Logger.Info(context.Background(), "Websocket hub shut down.")
	}
}

func (deps *Deps) initDueQueue() func() {
	if deps.Rabbitmq == nil {
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if _, err := rabbitmqChannel.QueueDeclare(
		deps.Config.RabbitmqDueQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.RabbitmqChannel = rabbitmqChannel
	deps.DueQueue = duereminders.NewRabbitMQ(deps.Logger, rabbitmqChannel, deps.Config.RabbitmqDueQueue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down due reminders publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Due reminders publisher shut down.")
	}
}
