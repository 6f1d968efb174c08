package reminder

import (
	c "batchbuddy/internal/core/domain/common"
	e "batchbuddy/internal/core/domain/errors"
	"time"
)

type ID int64

type UserID int64

// Reminder is a single occurrence of a scheduled notification. Repeating
// reminders are represented as a chain of occurrences: completing one enqueues
// exactly one successor with the due instant advanced by the repeat unit.
type Reminder struct {
	ID           ID
	UserID       UserID
	Title        string
	Description  string
	At           time.Time // nominal due instant, UTC
	Priority     Priority
	NotifyBefore time.Duration
	Repeat       Repeat
	Status       Status
	Channels     Channels
	Notified     bool
	SnoozedUntil c.Optional[time.Time]
	CompletedAt  c.Optional[time.Time]
	CreatedAt    time.Time
}

// EffectiveAt is the instant the due check evaluates against: the snoozed-until
// instant when present, the nominal one otherwise.
func (r *Reminder) EffectiveAt() time.Time {
	if r.SnoozedUntil.IsPresent {
		return r.SnoozedUntil.Value
	}
	return r.At
}

// IsActive reports whether the reminder still awaits delivery or action.
func (r *Reminder) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusSnoozed
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return e.NewInvalidStateError("reminder title must not be empty")
	}
	if r.Status == StatusSnoozed && !r.SnoozedUntil.IsPresent {
		return e.NewInvalidStateError("SnoozedUntil must be set for snoozed reminders")
	}
	if r.Status == StatusCompleted && !r.CompletedAt.IsPresent {
		return e.NewInvalidStateError("CompletedAt must be set for completed reminders")
	}
	if r.CompletedAt.IsPresent && r.IsActive() {
		return e.NewInvalidStateError("CompletedAt must not be set for active reminders")
	}
	if r.NotifyBefore < 0 {
		return e.NewInvalidStateError("NotifyBefore must not be negative")
	}
	return nil
}
