// Package domain defines the core types and interfaces for the burger
// simulation. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// Category is an ingredient's base identity, ignoring processing state.
type Category int

const (
	BunBottom Category = iota
	BunTop
	Patty
	Cheese
	Lettuce
	Tomato
	Onion
	Bacon
)

// Categories lists every known category in shelf order.
var Categories = []Category{BunBottom, BunTop, Patty, Cheese, Lettuce, Tomato, Onion, Bacon}

// String returns the category's catalog key.
func (c Category) String() string {
	switch c {
	case BunBottom:
		return "bun_bottom"
	case BunTop:
		return "bun_top"
	case Patty:
		return "patty"
	case Cheese:
		return "cheese"
	case Lettuce:
		return "lettuce"
	case Tomato:
		return "tomato"
	case Onion:
		return "onion"
	case Bacon:
		return "bacon"
	default:
		return "unknown"
	}
}

// State is an ingredient's processing state.
type State int

const (
	StatePlain State = iota
	StateToasted
	StateRaw
	StateOvercooked
	StateMelted
	StateSliced
	StateGrilled
	StateCrispy
)

// String returns the state's name suffix, empty for plain.
func (s State) String() string {
	switch s {
	case StatePlain:
		return ""
	case StateToasted:
		return "toasted"
	case StateRaw:
		return "raw"
	case StateOvercooked:
		return "overcooked"
	case StateMelted:
		return "melted"
	case StateSliced:
		return "sliced"
	case StateGrilled:
		return "grilled"
	case StateCrispy:
		return "crispy"
	default:
		return "unknown"
	}
}

// Process is a transformation kind a station can apply.
type Process int

const (
	ProcessToast Process = iota
	ProcessCook
	ProcessSlice
	ProcessGrill
	ProcessMelt
)

// String returns a human-readable process name.
func (p Process) String() string {
	switch p {
	case ProcessToast:
		return "toast"
	case ProcessCook:
		return "cook"
	case ProcessSlice:
		return "slice"
	case ProcessGrill:
		return "grill"
	case ProcessMelt:
		return "melt"
	default:
		return "unknown"
	}
}

// ID is the full identity of an ingredient: base category plus processing
// state. It replaces suffix-parsed string names so that categories whose
// names share a prefix can never be confused with each other.
type ID struct {
	Category Category
	State    State
}

// Plain returns the unprocessed identity for a category.
func Plain(c Category) ID {
	return ID{Category: c}
}

// Name derives the catalog/display key, e.g. "patty_overcooked".
// Plain identities use the bare category name.
func (id ID) Name() string {
	if id.State == StatePlain {
		return id.Category.String()
	}
	return id.Category.String() + "_" + id.State.String()
}

// ParseName recovers an ID from a persisted or displayed name.
func ParseName(name string) (ID, error) {
	for _, c := range Categories {
		base := c.String()
		if name == base {
			return Plain(c), nil
		}
		if !strings.HasPrefix(name, base+"_") {
			continue
		}
		suffix := strings.TrimPrefix(name, base+"_")
		for s := StateToasted; s <= StateCrispy; s++ {
			if suffix == s.String() {
				return ID{Category: c, State: s}, nil
			}
		}
	}
	return ID{}, fmt.Errorf("ingredient name %q: %w", name, ErrUnknownIngredient)
}
