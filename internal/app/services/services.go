package services

import (
	"batchbuddy/internal/app/deps"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"batchbuddy/internal/core/services"
	checkduereminders "batchbuddy/internal/core/services/check_due_reminders"
	completereminder "batchbuddy/internal/core/services/complete_reminder"
	createreminder "batchbuddy/internal/core/services/create_reminder"
	deletereminder "batchbuddy/internal/core/services/delete_reminder"
	deliverreminder "batchbuddy/internal/core/services/deliver_reminder"
	listreminders "batchbuddy/internal/core/services/list_reminders"
	setreminderstatus "batchbuddy/internal/core/services/set_reminder_status"
	snoozereminder "batchbuddy/internal/core/services/snooze_reminder"
	updatereminder "batchbuddy/internal/core/services/update_reminder"
	directqueue "batchbuddy/internal/implementations/direct_queue"
	"context"
)

type Services struct {
	DeliverReminder   services.Service[deliverreminder.Input, deliverreminder.Result]
	CheckDueReminders services.Service[checkduereminders.Input, checkduereminders.Result]

	// CRUD and action services are nil when no local database is configured
	// (remote checker mode).
	CreateReminder    services.Service[createreminder.Input, createreminder.Result]
	ListReminders     services.Service[listreminders.Input, listreminders.Result]
	UpdateReminder    services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder    services.Service[deletereminder.Input, deletereminder.Result]
	SetReminderStatus services.Service[setreminderstatus.Input, setreminderstatus.Result]
	CompleteReminder  services.Service[completereminder.Input, completereminder.Result]
	SnoozeReminder    services.Service[snoozereminder.Input, snoozereminder.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	var byID reminder.ByIDReader
	var pending reminder.PendingReader
	var marker reminder.NotifiedMarker
	if deps.RemoteStore != nil {
		byID = deps.RemoteStore
		pending = deps.RemoteStore
		marker = deps.RemoteStore
	} else {
		byID = deps.ReminderRepository
		pending = deps.ReminderRepository
		marker = deps.ReminderRepository
	}

	s.DeliverReminder = deliverreminder.New(
		deps.Logger,
		byID,
		deps.DeliveryGuard,
		deps.PushSender,
		deps.FallbackSender,
		deps.EmailSender,
		deps.AutoActions,
	)

	queue := deps.DueQueue
	if queue == nil {
		queue = directqueue.New(deps.Logger, s.DeliverReminder)
	}

	s.CheckDueReminders = checkduereminders.New(
		deps.Logger,
		pending,
		marker,
		queue,
		dueCheck(deps),
		deps.Now,
	)

	if deps.ReminderRepository != nil {
		s.CreateReminder = createreminder.New(deps.Logger, deps.ReminderRepository, deps.Now)
		s.ListReminders = listreminders.New(deps.Logger, deps.ReminderRepository)
		s.UpdateReminder = updatereminder.New(deps.Logger, deps.ReminderRepository)
		s.DeleteReminder = deletereminder.New(deps.Logger, deps.ReminderRepository, deps.AutoActions)
		s.SetReminderStatus = setreminderstatus.New(deps.Logger, deps.ReminderRepository, deps.Now)
		s.CompleteReminder = completereminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.EventPublisher,
			deps.AutoActions,
			deps.Now,
		)
		s.SnoozeReminder = snoozereminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.EventPublisher,
			deps.AutoActions,
			deps.Config.SnoozeDefaultMinutes,
			deps.Now,
		)
	}

	bindDefaultAction(deps, s)
	return s
}

// bindDefaultAction wires the ignored-reminder timeout to completion. With a
// local database the completing service runs (and creates the repeat
// successor); against a remote store completion is delegated to it.
func bindDefaultAction(deps *deps.Deps, s *Services) {
	if s.CompleteReminder != nil {
		complete := s.CompleteReminder
		deps.AutoActions.Bind(func(ctx context.Context, id reminder.ID) {
			if _, err := complete.Run(ctx, completereminder.Input{ReminderID: id}); err != nil {
				logging.Error(ctx, deps.Logger, err, logging.Entry("reminderID", id))
			}
		})
		return
	}

	remoteStore := deps.RemoteStore
	deps.AutoActions.Bind(func(ctx context.Context, id reminder.ID) {
		if err := remoteStore.Complete(ctx, id); err != nil {
			logging.Error(ctx, deps.Logger, err, logging.Entry("reminderID", id))
		}
	})
}

// dueCheck builds the evaluator from configuration. Under the window policy a
// window narrower than the poll interval can silently skip reminders, so the
// window is widened to the interval.
func dueCheck(deps *deps.Deps) reminder.DueCheck {
	window := deps.Config.DueWindow
	if deps.Config.DuePolicy == reminder.PolicyWindow && window < deps.Config.PollInterval {
		deps.Logger.Warning(
			context.Background(),
			"Due window is narrower than the poll interval, widening.",
			logging.Entry("window", window),
			logging.Entry("pollInterval", deps.Config.PollInterval),
		)
		window = deps.Config.PollInterval
	}
	return reminder.NewDueCheck(deps.Config.DuePolicy, window, deps.Config.NotifyLeadTime)
}
