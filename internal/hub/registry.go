package hub

import (
	"batchbuddy/internal/core/domain/reminder"
	"context"
	"sync"
)

// Registry is an in-process observer registry: multiple independent handlers
// per event name, each individually unsubscribable. It lets components inside
// the server react to reminder events without holding references to each
// other, mirroring what connected clients do with pushed events.
type Registry struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler
}

type Handler func(userID reminder.UserID, payload interface{})

// Subscription detaches one handler. Safe to call more than once.
type Subscription func()

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]map[int]Handler)}
}

func (r *Registry) Subscribe(event string, handler Handler) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	byID, ok := r.handlers[event]
	if !ok {
		byID = make(map[int]Handler)
		r.handlers[event] = byID
	}
	byID[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.handlers[event], id)
		})
	}
}

func (r *Registry) Notify(event string, userID reminder.UserID, payload interface{}) {
	r.mu.RLock()
	handlers := make([]Handler, 0, len(r.handlers[event]))
	for _, h := range r.handlers[event] {
		handlers = append(handlers, h)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		h(userID, payload)
	}
}

// Fanout publishes every event to each wrapped publisher and notifies the
// local registry. Publisher failures are independent: the first error is
// returned after all publishers ran.
type Fanout struct {
	publishers []reminder.EventPublisher
	registry   *Registry
}

func NewFanout(registry *Registry, publishers ...reminder.EventPublisher) *Fanout {
	return &Fanout{publishers: publishers, registry: registry}
}

func (f *Fanout) PublishEvent(
	ctx context.Context,
	userID reminder.UserID,
	name string,
	payload interface{},
) error {
	var firstErr error
	for _, p := range f.publishers {
		if err := p.PublishEvent(ctx, userID, name, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if f.registry != nil {
		f.registry.Notify(name, userID, payload)
	}
	return firstErr
}
