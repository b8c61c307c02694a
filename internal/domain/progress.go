package domain

import (
	"fmt"
	"slices"
)

// Upgrade names a purchasable upgrade track. Values double as the
// persisted map keys.
type Upgrade string

const (
	UpgradeGrillSpeed Upgrade = "grill_speed"
	UpgradePatience   Upgrade = "customer_patience"
	UpgradeTips       Upgrade = "tips"
)

// Upgrades lists every upgrade track.
var Upgrades = []Upgrade{UpgradeGrillSpeed, UpgradePatience, UpgradeTips}

// Progress is the persisted economy and unlock state. Mutated only by
// successful purchases and successful order completions, and written
// through the ProgressStore immediately after each mutation.
type Progress struct {
	HighScore         int            `json:"high_score"`
	Unlocked          []string       `json:"unlocked_ingredients"`
	Locked            []string       `json:"locked_ingredients"`
	Money             int            `json:"money"`
	Upgrades          map[Upgrade]int `json:"upgrades"`
	TutorialCompleted bool           `json:"tutorial_completed"`
}

// DefaultProgress returns a fresh save: starter ingredients unlocked, the
// rest locked, no money, all upgrades at level 1.
func DefaultProgress() *Progress {
	return &Progress{
		Unlocked: []string{"bun_bottom", "bun_top", "patty", "cheese", "lettuce"},
		Locked:   []string{"tomato", "onion", "bacon"},
		Upgrades: map[Upgrade]int{
			UpgradeGrillSpeed: 1,
			UpgradePatience:   1,
			UpgradeTips:       1,
		},
	}
}

// Validate checks a loaded Progress against the catalog: unlocked and
// locked must be a disjoint partition of the catalog's categories, and
// every upgrade level must be at least 1.
func (p *Progress) Validate(cat Catalog) error {
	seen := make(map[string]bool, len(cat))
	for _, name := range p.Unlocked {
		if seen[name] {
			return fmt.Errorf("%w: %q appears twice", ErrCorruptProgress, name)
		}
		seen[name] = true
	}
	for _, name := range p.Locked {
		if seen[name] {
			return fmt.Errorf("%w: %q is both locked and unlocked", ErrCorruptProgress, name)
		}
		seen[name] = true
	}
	for _, c := range Categories {
		if _, ok := cat[c]; !ok {
			continue
		}
		if !seen[c.String()] {
			return fmt.Errorf("%w: catalog ingredient %q missing from both sets", ErrCorruptProgress, c)
		}
	}
	for name := range seen {
		if _, err := ParseName(name); err != nil {
			return err
		}
	}
	for _, u := range Upgrades {
		if p.Upgrades[u] < 1 {
			return fmt.Errorf("%w: upgrade %q level below 1", ErrCorruptProgress, u)
		}
	}
	return nil
}

// IsUnlocked reports whether the named ingredient is available on the shelf.
func (p *Progress) IsUnlocked(name string) bool {
	return slices.Contains(p.Unlocked, name)
}

// Unlock moves an ingredient from the locked set to the unlocked set.
// Returns false if the ingredient is not locked.
func (p *Progress) Unlock(name string) bool {
	i := slices.Index(p.Locked, name)
	if i < 0 {
		return false
	}
	p.Locked = slices.Delete(p.Locked, i, i+1)
	p.Unlocked = append(p.Unlocked, name)
	return true
}

// Clone returns a deep copy.
func (p *Progress) Clone() *Progress {
	out := *p
	out.Unlocked = slices.Clone(p.Unlocked)
	out.Locked = slices.Clone(p.Locked)
	out.Upgrades = make(map[Upgrade]int, len(p.Upgrades))
	for u, lvl := range p.Upgrades {
		out.Upgrades[u] = lvl
	}
	return &out
}

// UpgradeLevel returns the level of an upgrade track, never below 1.
func (p *Progress) UpgradeLevel(u Upgrade) int {
	if lvl, ok := p.Upgrades[u]; ok && lvl >= 1 {
		return lvl
	}
	return 1
}
