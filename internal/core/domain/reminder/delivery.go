package reminder

import "context"

// Queue is the hop between the polling checker and the delivery multiplexer.
// The AMQP implementation survives process restarts; the direct implementation
// invokes delivery inline when no broker is configured.
type Queue interface {
	EnqueueDue(ctx context.Context, occurrence Occurrence) error
}

// DueSender delivers one due reminder over one channel. Channel failures are
// isolated: the multiplexer logs them and carries on with the remaining
// channels.
type DueSender interface {
	SendDueReminder(ctx context.Context, r Reminder, speech string) error
}

// DeliveryGuard de-duplicates deliveries of the same occurrence across the
// two independent triggers (poll tick and push event). It is best effort:
// implementations must allow delivery when the backing store is unreachable.
type DeliveryGuard interface {
	AcquireDelivery(ctx context.Context, occurrence Occurrence) bool
}

// DefaultActioner arms the default action (complete) applied when the user
// ignores a delivered reminder for the configured timeout.
type DefaultActioner interface {
	Arm(id ID)
	Cancel(id ID)
}
