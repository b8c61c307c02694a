// Package station implements the cooking stations: stateful slots that run
// one ingredient through one timed transformation.
package station

import (
	"time"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

// Kind distinguishes the two station types.
type Kind int

const (
	// Thermal covers the grill surface: cook, grill, toast, and melt.
	Thermal Kind = iota
	// Cutting covers the cutting board: slice only.
	Cutting
)

// String returns a human-readable station name.
func (k Kind) String() string {
	switch k {
	case Thermal:
		return "grill"
	case Cutting:
		return "cutting_board"
	default:
		return "unknown"
	}
}

// OvercookAllowance is how far past completion a thermal transformation may
// run before the result resolves to the overcooked variant. The comparison
// is strict: finishing at exactly the allowance still yields the normal
// result.
const OvercookAllowance = 1.2

// capability resolution order per station kind
var priority = map[Kind][]domain.Process{
	Thermal: {domain.ProcessCook, domain.ProcessGrill, domain.ProcessToast, domain.ProcessMelt},
	Cutting: {domain.ProcessSlice},
}

// Option configures a station.
type Option func(*Station)

// WithSpeed sets the duration divisor for thermal work. Level-driven:
// 1.0 is nominal, higher is faster. Cutting stations ignore it.
func WithSpeed(factor float64) Option {
	return func(s *Station) {
		if factor > 0 {
			s.speed = factor
		}
	}
}

// Station holds at most one ingredient instance and advances it through a
// single timed transformation. Idle -> Processing -> Idle on success;
// removing the occupant mid-processing silently aborts.
type Station struct {
	kind     Kind
	catalog  domain.Catalog
	clock    domain.Clock
	notifier domain.Notifier
	log      *logger.Logger
	speed    float64

	occupant  *domain.Instance
	startedAt time.Time
	required  time.Duration
	result    domain.ID
}

// New creates an idle station of the given kind.
func New(kind Kind, catalog domain.Catalog, clk domain.Clock, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Station {
	s := &Station{
		kind:     kind,
		catalog:  catalog,
		clock:    clk,
		notifier: notifier,
		log:      log,
		speed:    1.0,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the station's type.
func (s *Station) Kind() Kind { return s.kind }

// Occupied reports whether an instance is on the station.
func (s *Station) Occupied() bool { return s.occupant != nil }

// Occupant returns the instance currently on the station, nil when idle.
func (s *Station) Occupant() *domain.Instance { return s.occupant }

// SetSpeed updates the thermal duration divisor mid-session (upgrade
// purchases). Does not affect work already in flight.
func (s *Station) SetSpeed(factor float64) {
	if factor > 0 {
		s.speed = factor
	}
}

// Start places an instance on the station and begins its transformation.
// Returns false with no side effects if the station is occupied or the
// instance supports no capability usable here.
func (s *Station) Start(inst *domain.Instance) bool {
	if inst == nil || s.occupant != nil {
		return false
	}

	for _, kind := range priority[s.kind] {
		result, duration, ok := s.catalog.ResultOf(inst.ID, kind)
		if !ok {
			continue
		}
		if s.kind == Thermal {
			duration = time.Duration(float64(duration) / s.speed)
		}

		s.occupant = inst
		s.result = result
		s.required = duration
		s.startedAt = s.clock.Now()
		inst.Mode = domain.ModeProcessing

		if s.kind == Thermal {
			s.notifier.Notify(domain.EventSizzle)
		} else {
			s.notifier.Notify(domain.EventChop)
		}
		s.log.Debug("%s: started %s on %s (%s)", s.kind, kind, inst.ID.Name(), duration)
		return true
	}

	return false
}

// Progress returns elapsed/required for the work in flight, unclamped so
// the overcook window stays observable. Zero when idle. Renderers should
// clamp to 1.0 themselves.
func (s *Station) Progress(now time.Time) float64 {
	if s.occupant == nil || s.required <= 0 {
		return 0
	}
	return float64(now.Sub(s.startedAt)) / float64(s.required)
}

// Tick advances the station. When the transformation has run its course
// the occupant is transformed, the slot is cleared, and the finished
// instance is returned for the caller to place. Returns nil otherwise.
func (s *Station) Tick(now time.Time) *domain.Instance {
	if s.occupant == nil {
		return nil
	}

	progress := s.Progress(now)
	if progress < 1.0 {
		return nil
	}

	result := s.result
	if s.kind == Thermal && progress > OvercookAllowance {
		if over, ok := s.catalog.OvercookedOf(s.occupant.ID); ok {
			result = over
		}
	}

	inst := s.occupant
	inst.Transform(result)
	inst.Mode = domain.ModeIdle
	s.clear()

	s.log.Debug("%s: finished %s (progress %.2f)", s.kind, inst.ID.Name(), progress)
	return inst
}

// Remove reclaims the occupant mid-processing: a silent abort with no
// transformation and no quality change. Returns nil when idle.
func (s *Station) Remove() *domain.Instance {
	if s.occupant == nil {
		return nil
	}
	inst := s.occupant
	inst.Mode = domain.ModeHeld
	s.clear()
	s.log.Debug("%s: %s removed mid-processing", s.kind, inst.ID.Name())
	return inst
}

func (s *Station) clear() {
	s.occupant = nil
	s.required = 0
	s.result = domain.ID{}
	s.startedAt = time.Time{}
}
