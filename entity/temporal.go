package entity

import (
	"time"
)

type TemporalLabel string

const (
	TemporalPast     TemporalLabel = "PAST"
	TemporalCurrent  TemporalLabel = "CURRENT"
	TemporalUpcoming TemporalLabel = "UPCOMING"
)

func (l TemporalLabel) String() string {
	return string(l)
}

// labelFor checks the end first, so an interval that is entirely before now is PAST even when start > end.
func labelFor(start, end, now time.Time) TemporalLabel {
	switch {
	case end.Before(now):
		return TemporalPast
	case start.After(now):
		return TemporalUpcoming
	default:
		return TemporalCurrent
	}
}
