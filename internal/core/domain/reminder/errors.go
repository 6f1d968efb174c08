package reminder

import "errors"

var (
	ErrReminderDoesNotExist  = errors.New("reminder does not exist")
	ErrReminderNotActive     = errors.New("reminder is not active")
	ErrSnoozeNotInFuture     = errors.New("snooze duration must be positive")
	ErrSnoozeRequiresMinutes = errors.New("snoozed status requires a duration, use the snooze endpoint")
)
