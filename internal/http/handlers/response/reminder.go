package response

import (
	"batchbuddy/internal/core/domain/reminder"
	"time"
)

type Reminder struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"user_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	At                time.Time  `json:"at"`
	Priority          string     `json:"priority"`
	NotifyBefore      int        `json:"notify_before_minutes"`
	Repeat            string     `json:"repeat"`
	Status            string     `json:"status"`
	NotificationTypes []string   `json:"notification_types"`
	Notified          bool       `json:"notified"`
	SnoozedUntil      *time.Time `json:"snoozed_until"`
	CompletedAt       *time.Time `json:"completed_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.UserID = int64(dr.UserID)
	r.Title = dr.Title
	r.Description = dr.Description
	r.At = dr.At
	r.Priority = dr.Priority.String()
	r.NotifyBefore = int(dr.NotifyBefore / time.Minute)
	r.Repeat = dr.Repeat.String()
	r.Status = dr.Status.String()
	r.NotificationTypes = dr.Channels.Strings()
	r.Notified = dr.Notified
	if dr.SnoozedUntil.IsPresent {
		r.SnoozedUntil = &dr.SnoozedUntil.Value
	}
	if dr.CompletedAt.IsPresent {
		r.CompletedAt = &dr.CompletedAt.Value
	}
	r.CreatedAt = dr.CreatedAt
}

func Reminders(domainReminders []reminder.Reminder) []Reminder {
	reminders := make([]Reminder, len(domainReminders))
	for ix, dr := range domainReminders {
		reminders[ix].FromDomainType(dr)
	}
	return reminders
}
