package deliverreminder

import (
	"batchbuddy/internal/core/domain/reminder"
	"fmt"
	"strings"
)

// Summary composes the spoken announcement for a due reminder. Missing
// fields are omitted entirely rather than read out as empty values.
func Summary(r reminder.Reminder) string {
	parts := make([]string, 0, 4)
	parts = append(parts, fmt.Sprintf("Reminder: %s.", r.Title))
	if r.Description != "" {
		parts = append(parts, fmt.Sprintf("%s.", r.Description))
	}
	at := r.EffectiveAt()
	if !at.IsZero() {
		parts = append(parts, fmt.Sprintf(
			"Scheduled for %s at %s.",
			at.Format("January 2, 2006"),
			at.Format("15:04"),
		))
	}
	if r.Priority != reminder.PriorityUnknown {
		parts = append(parts, fmt.Sprintf("Priority: %s.", r.Priority))
	}
	return strings.Join(parts, " ")
}
