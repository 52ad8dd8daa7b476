package interval

import "time"

// Interval is a half-open time window [Start, End): the start instant is
// included, the end instant is not.
type Interval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

func New(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Valid reports whether the window is non-empty (Start strictly before End).
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

// Contains reports whether t falls inside the window: Start <= t < End.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether two windows share at least one instant.
// Windows that merely touch (a.End == b.Start) do not overlap, so
// back-to-back bookings are legal.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
