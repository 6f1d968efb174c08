package autoaction

import (
	e "batchbuddy/internal/core/domain/errors"
	"batchbuddy/internal/core/domain/logging"
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"sync"
	"time"
)

const DefaultTimeout = 15 * time.Second

// Action is applied when a delivered reminder gets no user response within
// the timeout. In practice this completes the reminder.
type Action func(ctx context.Context, id reminder.ID)

// Registry is the lifecycle-scoped timer set behind the "auto-complete after
// 15 seconds" behavior. Arm replaces any timer already running for the same
// reminder; Cancel and Stop are idempotent.
type Registry struct {
	log     logging.Logger
	timeout time.Duration
	action  Action
	timers  map[reminder.ID]armedTimer
	seq     uint64
	stopped bool
	mu      sync.Mutex
}

// armedTimer pairs the timer with the sequence number of the Arm call that
// created it, so a callback that was already in flight when the same ID got
// re-armed can tell it is stale.
type armedTimer struct {
	timer *time.Timer
	seq   uint64
}

func NewRegistry(log logging.Logger, timeout time.Duration) *Registry {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Registry{
		log:     log,
		timeout: timeout,
		timers:  make(map[reminder.ID]armedTimer),
	}
}

// Bind sets the action applied on timeout. Must be called before the first
// Arm; the registry and the completing service reference each other, so the
// action cannot be a constructor argument.
func (r *Registry) Bind(action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.action = action
}

func (r *Registry) Arm(id reminder.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if r.action == nil {
		r.log.Warning(context.Background(), "No default action bound, Arm ignored.", logging.Entry("reminderID", id))
		return
	}
	if armed, ok := r.timers[id]; ok {
		armed.timer.Stop()
	}
	r.seq++
	seq := r.seq
	r.timers[id] = armedTimer{
		timer: time.AfterFunc(r.timeout, func() { r.fire(id, seq) }),
		seq:   seq,
	}
}

func (r *Registry) Cancel(id reminder.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if armed, ok := r.timers[id]; ok {
		armed.timer.Stop()
		delete(r.timers, id)
	}
}

// Stop cancels every armed timer. The registry rejects Arm afterwards.
func (r *Registry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	for id, armed := range r.timers {
		armed.timer.Stop()
		delete(r.timers, id)
	}
}

func (r *Registry) fire(id reminder.ID, seq uint64) {
	r.mu.Lock()
	armed, ok := r.timers[id]
	if !ok || armed.seq != seq {
		r.mu.Unlock()
		return
	}
	delete(r.timers, id)
	action := r.action
	r.mu.Unlock()

	r.log.Info(
		context.Background(),
		"No user response within timeout, applying default action.",
		logging.Entry("reminderID", id),
	)
	action(context.Background(), id)
}
