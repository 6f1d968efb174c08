package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"
)

var ErrParseRepeat = errors.New("invalid repeat")

type Repeat struct {
	v string
}

func (r Repeat) String() string {
	return r.v
}

func (r Repeat) IsZero() bool {
	return r == RepeatUnknown
}

func (r Repeat) IsRepeating() bool {
	return r != RepeatUnknown && r != RepeatNever
}

func ParseRepeat(value string) (Repeat, error) {
	switch value {
	case "never", "":
		return RepeatNever, nil
	case "daily":
		return RepeatDaily, nil
	case "weekly":
		return RepeatWeekly, nil
	case "monthly":
		return RepeatMonthly, nil
	default:
		return RepeatUnknown, ErrParseRepeat
	}
}

var (
	RepeatUnknown = Repeat{}
	RepeatNever   = Repeat{v: "never"}
	RepeatDaily   = Repeat{v: "daily"}
	RepeatWeekly  = Repeat{v: "weekly"}
	RepeatMonthly = Repeat{v: "monthly"}
)

// NextFrom returns the due instant of the successor occurrence. Monthly
// repeats use calendar arithmetic without overflow, so Jan 31 advances
// to Feb 28/29 rather than Mar 2.
func (r Repeat) NextFrom(t time.Time) time.Time {
	switch r {
	case RepeatDaily:
		return carbon.Time2Carbon(t).AddDay().Carbon2Time()
	case RepeatWeekly:
		return carbon.Time2Carbon(t).AddWeek().Carbon2Time()
	case RepeatMonthly:
		return carbon.Time2Carbon(t).AddMonthNoOverflow().Carbon2Time()
	default:
		panic(fmt.Sprintf("unexpected repeat: %v", r))
	}
}
