package reminder

import "context"

// Event names pushed to connected clients and re-dispatched between open
// views. The payloads are the wire contract of the push channel.
const (
	EventDue       = "reminder-due"
	EventSnoozed   = "reminder-snoozed"
	EventCompleted = "reminder-completed"
)

type DueEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Priority    string `json:"priority"`
	Sound       bool   `json:"sound"`
	Speech      string `json:"speech,omitempty"`
}

type SnoozedEvent struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
}

type CompletedEvent struct {
	ID int64 `json:"id"`
}

func NewDueEvent(r Reminder, speech string) DueEvent {
	at := r.EffectiveAt()
	return DueEvent{
		ID:          int64(r.ID),
		Title:       r.Title,
		Description: r.Description,
		Date:        at.Format("2006-01-02"),
		Time:        at.Format("15:04"),
		Priority:    r.Priority.String(),
		Sound:       r.Channels.Has(ChannelSound),
		Speech:      speech,
	}
}

// EventPublisher pushes a named event to every open session of a user.
// Publishing is best effort: a user with no connected sessions is not an
// error.
type EventPublisher interface {
	PublishEvent(ctx context.Context, userID UserID, name string, payload interface{}) error
}
