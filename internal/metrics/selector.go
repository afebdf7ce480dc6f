package metrics

import "time"

// Selection is the persisted state of a user's period selector.
type Selection struct {
	Active         Period     `json:"active"`
	Range          *DateRange `json:"range,omitempty"`
	Previous       Snapshot   `json:"previous"`
	PreviousPeriod Period     `json:"previous_period,omitempty"`
	ChangedAt      time.Time  `json:"changed_at"`
}

func DefaultSelection() Selection {
	return Selection{Active: Period24h}
}

// Selector switches the active period. Every accepted transition captures the
// metrics shown immediately before the switch as the previous snapshot.
type Selector struct {
	state Selection
}

func NewSelector(state Selection) *Selector {
	if state.Active == "" {
		state.Active = Period24h
	}
	return &Selector{state: state}
}

// Select moves to p. A custom period without a complete range is a no-op and
// returns false; unknown periods are rejected the same way.
func (s *Selector) Select(p Period, r *DateRange, current Snapshot, now time.Time) bool {
	switch p {
	case Period24h, Period7d, Period30d:
		r = nil
	case PeriodCustom:
		if !r.Complete() {
			return false
		}
		rc := *r
		r = &rc
	default:
		return false
	}

	s.state.Previous = current
	s.state.PreviousPeriod = s.state.Active
	s.state.Active = p
	s.state.Range = r
	s.state.ChangedAt = now
	return true
}

func (s *Selector) State() Selection {
	return s.state
}
