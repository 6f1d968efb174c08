package reminder

import (
	"context"
	"sync"
)

// TestRepository is an in-memory Repository for service tests.
type TestRepository struct {
	CreateError error
	GetError    error
	ReadError   error
	UpdateError error
	DeleteError error
	Reminders   map[ID]Reminder
	Created     []Reminder
	Updated     []UpdateInput
	nextID      ID
	lock        sync.Mutex
}

func NewTestRepository(reminders ...Reminder) *TestRepository {
	r := &TestRepository{Reminders: make(map[ID]Reminder)}
	for _, rem := range reminders {
		r.Reminders[rem.ID] = rem
		if rem.ID > r.nextID {
			r.nextID = rem.ID
		}
	}
	return r
}

func (r *TestRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem = Reminder{
		ID:           r.nextID,
		UserID:       input.UserID,
		Title:        input.Title,
		Description:  input.Description,
		At:           input.At,
		Priority:     input.Priority,
		NotifyBefore: input.NotifyBefore,
		Repeat:       input.Repeat,
		Status:       input.Status,
		Channels:     input.Channels,
		Notified:     input.Notified,
		CreatedAt:    input.CreatedAt,
	}
	r.Reminders[rem.ID] = rem
	r.Created = append(r.Created, rem)
	return rem, nil
}

func (r *TestRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.GetError != nil {
		return rem, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[id]
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	return rem, nil
}

func (r *TestRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	reminders := make([]Reminder, 0, len(r.Reminders))
	for _, rem := range r.Reminders {
		if options.UserIDEquals.IsPresent && rem.UserID != options.UserIDEquals.Value {
			continue
		}
		if options.StatusIn.IsPresent && !statusIn(rem.Status, options.StatusIn.Value) {
			continue
		}
		if options.DueBefore.IsPresent && !rem.EffectiveAt().Before(options.DueBefore.Value) {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *TestRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	reminders, err := r.Read(ctx, options)
	if err != nil {
		return 0, err
	}
	return uint(len(reminders)), nil
}

func (r *TestRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.UpdateError != nil {
		return rem, r.UpdateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rem, ok := r.Reminders[input.ID]
	if !ok {
		return rem, ErrReminderDoesNotExist
	}
	if input.DoTitleUpdate {
		rem.Title = input.Title
	}
	if input.DoDescriptionUpdate {
		rem.Description = input.Description
	}
	if input.DoAtUpdate {
		rem.At = input.At
	}
	if input.DoPriorityUpdate {
		rem.Priority = input.Priority
	}
	if input.DoNotifyBeforeUpdate {
		rem.NotifyBefore = input.NotifyBefore
	}
	if input.DoRepeatUpdate {
		rem.Repeat = input.Repeat
	}
	if input.DoStatusUpdate {
		rem.Status = input.Status
	}
	if input.DoChannelsUpdate {
		rem.Channels = input.Channels
	}
	if input.DoNotifiedUpdate {
		rem.Notified = input.Notified
	}
	if input.DoSnoozedUntilUpdate {
		rem.SnoozedUntil = input.SnoozedUntil
	}
	if input.DoCompletedAtUpdate {
		rem.CompletedAt = input.CompletedAt
	}
	r.Reminders[rem.ID] = rem
	r.Updated = append(r.Updated, input)
	return rem, nil
}

func (r *TestRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Reminders[id]; !ok {
		return ErrReminderDoesNotExist
	}
	delete(r.Reminders, id)
	return nil
}

func (r *TestRepository) ReadPending(ctx context.Context) ([]Reminder, error) {
	return r.Read(ctx, ReadOptions{})
}

func (r *TestRepository) MarkNotified(ctx context.Context, id ID) error {
	_, err := r.Update(ctx, UpdateInput{ID: id, DoNotifiedUpdate: true, Notified: true})
	return err
}

func statusIn(s Status, in []Status) bool {
	for _, other := range in {
		if s == other {
			return true
		}
	}
	return false
}

type TestQueue struct {
	Enqueued []Occurrence
	Error    error
	lock     sync.Mutex
}

func NewTestQueue() *TestQueue {
	return &TestQueue{}
}

func (q *TestQueue) EnqueueDue(ctx context.Context, occurrence Occurrence) error {
	if q.Error != nil {
		return q.Error
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	q.Enqueued = append(q.Enqueued, occurrence)
	return nil
}

type TestDueSender struct {
	Sent      []Reminder
	SentError error
	lock      sync.Mutex
}

func NewTestDueSender() *TestDueSender {
	return &TestDueSender{}
}

func (s *TestDueSender) SendDueReminder(ctx context.Context, r Reminder, speech string) error {
	if s.SentError != nil {
		return s.SentError
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, r)
	return nil
}

type TestDeliveryGuard struct {
	Denied   bool
	Acquired []Occurrence
	lock     sync.Mutex
}

func NewTestDeliveryGuard() *TestDeliveryGuard {
	return &TestDeliveryGuard{}
}

func (g *TestDeliveryGuard) AcquireDelivery(ctx context.Context, occurrence Occurrence) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.Denied {
		return false
	}
	g.Acquired = append(g.Acquired, occurrence)
	return true
}

type TestDefaultActioner struct {
	Armed    []ID
	Canceled []ID
	lock     sync.Mutex
}

func NewTestDefaultActioner() *TestDefaultActioner {
	return &TestDefaultActioner{}
}

func (a *TestDefaultActioner) Arm(id ID) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.Armed = append(a.Armed, id)
}

func (a *TestDefaultActioner) Cancel(id ID) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.Canceled = append(a.Canceled, id)
}

type PublishedEvent struct {
	UserID  UserID
	Name    string
	Payload interface{}
}

type TestEventPublisher struct {
	Published []PublishedEvent
	Error     error
	lock      sync.Mutex
}

func NewTestEventPublisher() *TestEventPublisher {
	return &TestEventPublisher{}
}

func (p *TestEventPublisher) PublishEvent(
	ctx context.Context,
	userID UserID,
	name string,
	payload interface{},
) error {
	if p.Error != nil {
		return p.Error
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, PublishedEvent{UserID: userID, Name: name, Payload: payload})
	return nil
}
