package domain

import (
	"fmt"
	"time"
)

// Spec is a catalog entry describing one ingredient category: its single
// optional processing capability, the transformation it produces, quality
// sampling parameters, and shelf price.
type Spec struct {
	Capability    Process       // meaningful only when HasCapability
	HasCapability bool
	Result        State         // state after the transformation finishes
	Overcooked    State         // cookable only; StatePlain means no overcooked variant
	HasOvercooked bool
	Duration      time.Duration // nominal transformation time
	BaseQuality   float64
	QualityRange  float64 // symmetric jitter around BaseQuality
	Price         int
}

// Catalog is the static ingredient catalog, one Spec per category.
type Catalog map[Category]Spec

// DefaultCatalog returns the built-in ingredient catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		BunBottom: {
			Capability: ProcessToast, HasCapability: true,
			Result:      StateToasted,
			Duration:    3 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.3,
			Price: 5,
		},
		BunTop: {
			Capability: ProcessToast, HasCapability: true,
			Result:      StateToasted,
			Duration:    3 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.3,
			Price: 5,
		},
		Patty: {
			Capability: ProcessCook, HasCapability: true,
			Result:     StatePlain, // cooked patty is the plain display state
			Overcooked: StateOvercooked, HasOvercooked: true,
			Duration:    5 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.5,
			Price: 10,
		},
		Cheese: {
			Capability: ProcessMelt, HasCapability: true,
			Result:      StateMelted,
			Duration:    2 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.3,
			Price: 8,
		},
		Lettuce: {
			BaseQuality: 1.0, QualityRange: 0.2,
			Price: 5,
		},
		Tomato: {
			Capability: ProcessSlice, HasCapability: true,
			Result:      StateSliced,
			Duration:    2 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.3,
			Price: 7,
		},
		Onion: {
			Capability: ProcessGrill, HasCapability: true,
			Result:      StateGrilled,
			Duration:    4 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.3,
			Price: 6,
		},
		Bacon: {
			Capability: ProcessCook, HasCapability: true,
			Result:      StateCrispy,
			Duration:    4 * time.Second,
			BaseQuality: 1.0, QualityRange: 0.4,
			Price: 12,
		},
	}
}

// Validate checks the catalog once at load time: every category present,
// every declared transformation target renderable, overcooked variants only
// on cookable entries, sane quality and duration values. A malformed entry
// fails fast here instead of surfacing as a silent mid-game skip.
func (c Catalog) Validate() error {
	for _, cat := range Categories {
		spec, ok := c[cat]
		if !ok {
			return fmt.Errorf("catalog: missing entry for %s", cat)
		}
		if spec.BaseQuality <= 0 || spec.QualityRange < 0 || spec.QualityRange >= spec.BaseQuality {
			return fmt.Errorf("catalog: %s: bad quality parameters (base=%v range=%v)", cat, spec.BaseQuality, spec.QualityRange)
		}
		if spec.Price <= 0 {
			return fmt.Errorf("catalog: %s: price must be positive", cat)
		}
		if !spec.HasCapability {
			if spec.HasOvercooked {
				return fmt.Errorf("catalog: %s: overcooked variant without a capability", cat)
			}
			continue
		}
		if spec.Duration <= 0 {
			return fmt.Errorf("catalog: %s: %s duration must be positive", cat, spec.Capability)
		}
		if !c.renderable(ID{Category: cat, State: spec.Result}) {
			return fmt.Errorf("catalog: %s: result state %q does not resolve to a renderable identity", cat, spec.Result)
		}
		if spec.HasOvercooked {
			if spec.Capability != ProcessCook {
				return fmt.Errorf("catalog: %s: overcooked variant on non-cookable entry", cat)
			}
			if !c.renderable(ID{Category: cat, State: spec.Overcooked}) {
				return fmt.Errorf("catalog: %s: overcooked state %q does not resolve to a renderable identity", cat, spec.Overcooked)
			}
		}
	}
	return nil
}

// renderable reports whether an identity maps to a displayable ingredient:
// the plain form, the capability result, the overcooked variant, or the raw
// form of a cookable entry.
func (c Catalog) renderable(id ID) bool {
	spec, ok := c[id.Category]
	if !ok {
		return false
	}
	switch id.State {
	case StatePlain:
		return true
	case StateRaw:
		return spec.HasCapability && spec.Capability == ProcessCook
	default:
		if !spec.HasCapability {
			return false
		}
		return id.State == spec.Result || (spec.HasOvercooked && id.State == spec.Overcooked)
	}
}

// CanProcess reports whether the given identity accepts the transformation
// kind. Illegal requests are simply false, never errors. Already-processed
// ingredients (other than raw cookables) accept nothing further.
func (c Catalog) CanProcess(id ID, kind Process) bool {
	spec, ok := c[id.Category]
	if !ok || !spec.HasCapability || spec.Capability != kind {
		return false
	}
	switch id.State {
	case StatePlain:
		return true
	case StateRaw:
		return kind == ProcessCook
	default:
		return false
	}
}

// ResultOf returns the identity produced by applying kind to id, along with
// the nominal duration. ok is false when the transformation is not legal.
func (c Catalog) ResultOf(id ID, kind Process) (result ID, duration time.Duration, ok bool) {
	if !c.CanProcess(id, kind) {
		return ID{}, 0, false
	}
	spec := c[id.Category]
	return ID{Category: id.Category, State: spec.Result}, spec.Duration, true
}

// OvercookedOf returns the overcooked identity for id, if the catalog
// declares one.
func (c Catalog) OvercookedOf(id ID) (ID, bool) {
	spec, ok := c[id.Category]
	if !ok || !spec.HasOvercooked {
		return ID{}, false
	}
	return ID{Category: id.Category, State: spec.Overcooked}, true
}
