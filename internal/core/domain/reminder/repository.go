package reminder

import (
	c "batchbuddy/internal/core/domain/common"
	"context"
	"time"
)

type CreateInput struct {
	UserID       UserID
	Title        string
	Description  string
	At           time.Time
	Priority     Priority
	NotifyBefore time.Duration
	Repeat       Repeat
	Status       Status
	Channels     Channels
	Notified     bool
	CreatedAt    time.Time
}

type ReadOptions struct {
	UserIDEquals c.Optional[UserID]
	StatusIn     c.Optional[[]Status]
	DueBefore    c.Optional[time.Time]
	OrderBy      OrderBy
	Limit        c.Optional[uint]
	Offset       uint
}

type UpdateInput struct {
	ID                   ID
	DoTitleUpdate        bool
	Title                string
	DoDescriptionUpdate  bool
	Description          string
	DoAtUpdate           bool
	At                   time.Time
	DoPriorityUpdate     bool
	Priority             Priority
	DoNotifyBeforeUpdate bool
	NotifyBefore         time.Duration
	DoRepeatUpdate       bool
	Repeat               Repeat
	DoStatusUpdate       bool
	Status               Status
	DoChannelsUpdate     bool
	Channels             Channels
	DoNotifiedUpdate     bool
	Notified             bool
	DoSnoozedUntilUpdate bool
	SnoozedUntil         c.Optional[time.Time]
	DoCompletedAtUpdate  bool
	CompletedAt          c.Optional[time.Time]
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Delete(ctx context.Context, id ID) error
}

// PendingReader, NotifiedMarker and ByIDReader are the narrow store surface
// the polling checker and the delivery multiplexer need. Both the pgx
// repository and the remote HTTP store adapter implement them.
type PendingReader interface {
	ReadPending(ctx context.Context) ([]Reminder, error)
}

type NotifiedMarker interface {
	MarkNotified(ctx context.Context, id ID) error
}

type ByIDReader interface {
	GetByID(ctx context.Context, id ID) (Reminder, error)
}
