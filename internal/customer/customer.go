// Package customer models patience decay, mood, satisfaction, and tips for
// the single active customer.
package customer

import (
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
	"github.com/bunbaker/bunbakery/internal/order"
)

// Mood is the customer's visible disposition.
type Mood int

const (
	MoodNeutral Mood = iota
	MoodHappy
	MoodAngry
)

// String returns a human-readable mood name.
func (m Mood) String() string {
	switch m {
	case MoodNeutral:
		return "neutral"
	case MoodHappy:
		return "happy"
	case MoodAngry:
		return "angry"
	default:
		return "unknown"
	}
}

const (
	// basePatience is the patience budget before upgrades.
	basePatience = 60.0
	// patiencePerLevel is the bonus per customer_patience upgrade level.
	patiencePerLevel = 10.0
	// tickStep is the fixed per-tick waiting increment in seconds. The
	// accumulator assumes a constant 60 Hz tick rate.
	tickStep = 1.0 / 60.0
)

// Customer holds one order and waits for it. One customer is active at a
// time; a served or departed customer is replaced, never reused.
type Customer struct {
	order        *domain.Order
	satisfaction float64
	mood         Mood
	waiting      float64 // seconds, fixed-increment accumulator
	patience     float64 // seconds
	served       bool
	tip          int

	notifier domain.Notifier
	log      *logger.Logger
}

// New creates a customer holding the given order. patienceLevel is the
// customer_patience upgrade level (>= 1).
func New(o *domain.Order, patienceLevel int, notifier domain.Notifier, log *logger.Logger) *Customer {
	if patienceLevel < 1 {
		patienceLevel = 1
	}
	return &Customer{
		order:        o,
		satisfaction: 0.5,
		mood:         MoodNeutral,
		patience:     basePatience + patiencePerLevel*float64(patienceLevel),
		notifier:     notifier,
		log:          log,
	}
}

// Order returns the customer's order.
func (c *Customer) Order() *domain.Order { return c.order }

// Served reports whether the customer has accepted a burger.
func (c *Customer) Served() bool { return c.served }

// Mood returns the customer's current mood.
func (c *Customer) Mood() Mood { return c.mood }

// Satisfaction returns the normalized satisfaction score.
func (c *Customer) Satisfaction() float64 { return c.satisfaction }

// Tip returns the tip computed at serve time, zero before then.
func (c *Customer) Tip() int { return c.tip }

// Waiting returns accumulated waiting time in seconds.
func (c *Customer) Waiting() float64 { return c.waiting }

// Patience returns the patience budget in seconds.
func (c *Customer) Patience() float64 { return c.patience }

// Tick advances the waiting accumulator by one fixed step and refreshes
// the mood. Returns true when patience is exhausted and the customer
// leaves, which ends the round. No-op once served.
func (c *Customer) Tick() (left bool) {
	if c.served || c.order == nil {
		return false
	}

	c.waiting += tickStep
	ratio := c.waiting / c.patience

	// The middle band is still neutral; only the 80% threshold actually
	// flips the mood.
	var mood Mood
	switch {
	case ratio < 0.5:
		mood = MoodNeutral
	case ratio < 0.8:
		mood = MoodNeutral
	default:
		mood = MoodAngry
	}
	if mood != c.mood {
		c.log.Debug("customer mood %s -> %s (waited %.1fs of %.0fs)", c.mood, mood, c.waiting, c.patience)
		c.mood = mood
	}

	return c.waiting >= c.patience
}

// Serve offers a burger stack. A zero match quality is an outright
// rejection: the mood turns angry, served stays false, and satisfaction is
// untouched. Any positive quality is accepted and converted, together with
// service speed, into satisfaction, mood, and tip.
func (c *Customer) Serve(stack []*domain.Instance) bool {
	if c.order == nil || c.served {
		return false
	}

	quality := order.Match(stack, c.order)
	if quality == 0 {
		c.mood = MoodAngry
		c.notifier.Notify(domain.EventCustomerAngry)
		c.log.Debug("customer rejected the burger")
		return false
	}

	c.served = true
	timeFactor := 1 - c.waiting/c.patience
	if timeFactor < 0 {
		timeFactor = 0
	}
	c.satisfaction = 0.7*quality + 0.3*timeFactor

	switch {
	case c.satisfaction > 0.8:
		c.mood = MoodHappy
		c.notifier.Notify(domain.EventCustomerHappy)
	case c.satisfaction > 0.4:
		c.mood = MoodNeutral
	default:
		c.mood = MoodAngry
		c.notifier.Notify(domain.EventCustomerAngry)
	}

	c.tip = tipFor(c.satisfaction)
	c.log.Debug("customer served: quality %.2f, satisfaction %.2f, mood %s, tip %d",
		quality, c.satisfaction, c.mood, c.tip)
	return true
}

// tipFor converts satisfaction into a tip. Satisfaction must strictly
// exceed 0.5 to tip at all.
func tipFor(satisfaction float64) int {
	if satisfaction > 0.5 {
		return int(20 * satisfaction)
	}
	return 0
}
