package reminder

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "pending":
		return StatusPending, nil
	case "snoozed":
		return StatusSnoozed, nil
	case "completed":
		return StatusCompleted, nil
	case "dismissed":
		return StatusDismissed, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

var (
	StatusUnknown   = Status{}
	StatusPending   = Status{v: "pending"}
	StatusSnoozed   = Status{v: "snoozed"}
	StatusCompleted = Status{v: "completed"}
	StatusDismissed = Status{v: "dismissed"}
)
