package engine

import (
	"fmt"
	"strings"

	"github.com/bunbaker/bunbakery/internal/domain"
)

// ItemKind distinguishes shop entries.
type ItemKind int

const (
	// ItemIngredient unlocks a locked shelf ingredient.
	ItemIngredient ItemKind = iota
	// ItemUpgrade bumps an upgrade track by one level.
	ItemUpgrade
)

// Item is one purchasable shop entry.
type Item struct {
	Name        string
	Description string
	Price       int
	Kind        ItemKind

	// target is the ingredient name or upgrade key this entry acts on.
	target string
}

var upgradeCopy = map[domain.Upgrade][2]string{
	domain.UpgradeGrillSpeed: {"Faster Cooking", "Speed up all cooking processes"},
	domain.UpgradePatience:   {"Customer Patience", "Customers will wait longer"},
	domain.UpgradeTips:       {"Better Tips", "Increase tips from satisfied customers"},
}

// rebuildShop derives the shop inventory from current progress: one entry
// per still-locked ingredient, plus the three upgrade tracks.
func (e *Engine) rebuildShop() {
	e.items = e.items[:0]

	for _, name := range e.progress.Locked {
		id, err := domain.ParseName(name)
		if err != nil {
			e.log.Warn("skipping unknown locked ingredient %q", name)
			continue
		}
		spec, ok := e.catalog[id.Category]
		if !ok {
			continue
		}
		e.items = append(e.items, Item{
			Name:        titleCase(name),
			Description: fmt.Sprintf("Unlock %s for your burgers", strings.ReplaceAll(name, "_", " ")),
			Price:       spec.Price * 10,
			Kind:        ItemIngredient,
			target:      name,
		})
	}

	for _, u := range domain.Upgrades {
		level := e.progress.UpgradeLevel(u)
		text := upgradeCopy[u]
		e.items = append(e.items, Item{
			Name:        fmt.Sprintf("%s (Lvl %d)", text[0], level+1),
			Description: text[1],
			Price:       50 * (level + 1),
			Kind:        ItemUpgrade,
			target:      string(u),
		})
	}
}

// ShopItems returns the current shop inventory.
func (e *Engine) ShopItems() []Item { return e.items }

// Purchase buys the shop entry at index i. Affordable iff the price does
// not exceed the wallet; a failed purchase mutates nothing.
func (e *Engine) Purchase(i int) bool {
	if e.state != StateShop || i < 0 || i >= len(e.items) {
		return false
	}
	item := e.items[i]
	if item.Price > e.progress.Money {
		e.log.Debug("cannot afford %s ($%d > $%d)", item.Name, item.Price, e.progress.Money)
		return false
	}

	switch item.Kind {
	case ItemIngredient:
		if !e.progress.Unlock(item.target) {
			return false
		}
	case ItemUpgrade:
		u := domain.Upgrade(item.target)
		e.progress.Upgrades[u] = e.progress.UpgradeLevel(u) + 1
		if u == domain.UpgradeGrillSpeed {
			e.grill.SetSpeed(thermalSpeed(e.progress.Upgrades[u]))
		}
	}

	e.progress.Money -= item.Price
	e.money = e.progress.Money
	e.persist()
	e.notifier.Notify(domain.EventPurchase)
	e.rebuildShop()

	e.log.Info("purchased %s for $%d, $%d left", item.Name, item.Price, e.money)
	return true
}

// titleCase turns an ingredient key like "bun_top" into "Bun Top".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
