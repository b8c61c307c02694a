package domain

import "time"

// Order is one customer's required ingredient sequence, final and
// order-sensitive. Immutable after generation except for the completed flag.
type Order struct {
	Items      []ID
	TimeLimit  time.Duration
	ScoreValue int
	CreatedAt  time.Time
	Completed  bool
}

// Remaining returns the time left before the order expires. A completed
// order reports its full limit.
func (o *Order) Remaining(now time.Time) time.Duration {
	if o.Completed {
		return o.TimeLimit
	}
	left := o.TimeLimit - now.Sub(o.CreatedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Fraction returns the remaining time as a fraction of the limit, for
// rendering the countdown bar.
func (o *Order) Fraction(now time.Time) float64 {
	if o.TimeLimit <= 0 {
		return 0
	}
	return float64(o.Remaining(now)) / float64(o.TimeLimit)
}

// Expired reports whether the order's wall-clock budget ran out.
func (o *Order) Expired(now time.Time) bool {
	return !o.Completed && o.Remaining(now) <= 0
}

// Complete marks the order as fulfilled, freezing its countdown.
func (o *Order) Complete() {
	o.Completed = true
}
