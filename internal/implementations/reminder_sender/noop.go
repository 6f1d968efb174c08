package remindersender

import (
	"batchbuddy/internal/core/domain/reminder"
	"context"
)

// NoopSender stands in for channels that are not configured, e.g. email when
// no AWS credentials are set.
type NoopSender struct{}

func NewNoop() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) SendDueReminder(ctx context.Context, rem reminder.Reminder, speech string) error {
	return nil
}
