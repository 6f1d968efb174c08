package reminder

import "errors"

var ErrParsePriority = errors.New("invalid priority")

type Priority struct {
	v string
}

func (p Priority) String() string {
	return p.v
}

func ParsePriority(value string) (Priority, error) {
	switch value {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityUnknown, ErrParsePriority
	}
}

var (
	PriorityUnknown = Priority{}
	PriorityLow     = Priority{v: "low"}
	PriorityMedium  = Priority{v: "medium"}
	PriorityHigh    = Priority{v: "high"}
)
