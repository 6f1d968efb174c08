package reminder

import (
	"errors"
	"time"
)

var ErrParseDuePolicy = errors.New("invalid due policy")

// DuePolicy decides what happens to a reminder whose due instant is already
// in the past.
//
// PolicyAtLeastOnce keeps the reminder due until it is delivered, so a missed
// poll cycle (suspended process, slow store) fires late rather than never.
// PolicyWindow only fires within a tolerance window after the due instant,
// trading possible silent misses for never firing long after the fact.
type DuePolicy struct {
	v string
}

func (p DuePolicy) String() string {
	return p.v
}

func ParseDuePolicy(value string) (DuePolicy, error) {
	switch value {
	case "at_least_once":
		return PolicyAtLeastOnce, nil
	case "window":
		return PolicyWindow, nil
	default:
		return DuePolicy{}, ErrParseDuePolicy
	}
}

var (
	PolicyAtLeastOnce = DuePolicy{v: "at_least_once"}
	PolicyWindow      = DuePolicy{v: "window"}
)

const DefaultDueWindow = time.Minute

// DueCheck is the pure due-time evaluator.
type DueCheck struct {
	Policy DuePolicy
	// Window bounds late firing under PolicyWindow. Ignored otherwise.
	Window time.Duration
	// LeadTimeEnabled shifts the effective due instant back by the
	// reminder's NotifyBefore duration.
	LeadTimeEnabled bool
}

func NewDueCheck(policy DuePolicy, window time.Duration, leadTimeEnabled bool) DueCheck {
	if window <= 0 {
		window = DefaultDueWindow
	}
	return DueCheck{Policy: policy, Window: window, LeadTimeEnabled: leadTimeEnabled}
}

// IsDue reports whether the reminder must be delivered at the given instant.
// A reminder with an unparseable (zero) due instant is never due; the caller
// is expected to log it rather than fail the whole evaluation cycle.
func (c DueCheck) IsDue(r Reminder, now time.Time) bool {
	if r.Notified {
		return false
	}
	if !r.IsActive() {
		return false
	}
	at := r.EffectiveAt()
	if at.IsZero() {
		return false
	}
	if c.LeadTimeEnabled {
		at = at.Add(-r.NotifyBefore)
	}
	if now.Before(at) {
		return false
	}
	if c.Policy == PolicyWindow && !now.Before(at.Add(c.Window)) {
		return false
	}
	return true
}

// Occurrence identifies one due instant of one reminder. Snoozing moves the
// effective instant and therefore produces a new occurrence.
func (r *Reminder) Occurrence() Occurrence {
	return Occurrence{ID: r.ID, At: r.EffectiveAt().Truncate(time.Second)}
}

type Occurrence struct {
	ID ID
	At time.Time
}
