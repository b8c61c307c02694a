// Package order generates customer orders and scores burger stacks
// against them.
package order

import (
	"math/rand"
	"time"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

// extraPool lists the categories drawn between the patty and the top bun.
var extraPool = []domain.Category{
	domain.Cheese, domain.Lettuce, domain.Tomato, domain.Onion, domain.Bacon,
}

// Generator produces randomized, difficulty-scaled orders.
type Generator struct {
	catalog domain.Catalog
	clock   domain.Clock
	rng     *rand.Rand
	log     *logger.Logger
}

// NewGenerator creates an order generator. The rng is owned by the caller
// so sessions can be seeded deterministically.
func NewGenerator(catalog domain.Catalog, clk domain.Clock, rng *rand.Rand, log *logger.Logger) *Generator {
	return &Generator{
		catalog: catalog,
		clock:   clk,
		rng:     rng,
		log:     log,
	}
}

// maxExtras is the draw cap: half the extra pool counted over raw plus
// processed variants (five bases, four of which have a processed form).
func (g *Generator) maxExtras() int {
	variants := len(extraPool)
	for _, c := range extraPool {
		if spec, ok := g.catalog[c]; ok && spec.HasCapability {
			variants++
		}
	}
	return variants / 2
}

// Generate builds an order for the given difficulty (>= 1). The sequence
// always starts with the bottom bun and ends with a top bun; a patty is
// always present. A patty order may require the overcooked state outright;
// that permissiveness is deliberate.
func (g *Generator) Generate(difficulty int) *domain.Order {
	if difficulty < 1 {
		difficulty = 1
	}

	items := []domain.ID{domain.Plain(domain.BunBottom)}

	// Mandatory patty: plain 70% of the time, otherwise an even pick
	// between plain and overcooked.
	patty := domain.Plain(domain.Patty)
	if g.rng.Float64() >= 0.7 && g.rng.Intn(2) == 1 {
		patty = domain.ID{Category: domain.Patty, State: domain.StateOvercooked}
	}
	items = append(items, patty)

	// Distinct-category extras, drawn without replacement.
	count := 1
	if limit := min(difficulty+1, g.maxExtras()); limit > 1 {
		count += g.rng.Intn(limit)
	}
	pool := make([]domain.Category, len(extraPool))
	copy(pool, extraPool)
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	// Promotion probability grows with difficulty and is not clamped:
	// past 1.0 every capable extra promotes.
	promote := 0.3 + 0.1*float64(difficulty)
	for _, c := range pool[:count] {
		id := domain.Plain(c)
		if spec, ok := g.catalog[c]; ok && spec.HasCapability && g.rng.Float64() < promote {
			id = domain.ID{Category: c, State: spec.Result}
		}
		items = append(items, id)
	}

	// Top bun, toasted at higher difficulties.
	top := domain.Plain(domain.BunTop)
	if difficulty > 2 && g.rng.Float64() < 0.4 {
		top = domain.ID{Category: domain.BunTop, State: domain.StateToasted}
	}
	items = append(items, top)

	o := &domain.Order{
		Items:      items,
		TimeLimit:  timeLimit(difficulty),
		ScoreValue: 50 + 25*difficulty,
		CreatedAt:  g.clock.Now(),
	}

	g.log.Debug("generated order: %d items, limit %s, value %d", len(o.Items), o.TimeLimit, o.ScoreValue)
	return o
}

// timeLimit shrinks with difficulty but never below 30 seconds.
func timeLimit(difficulty int) time.Duration {
	secs := 60 - 5*difficulty
	if secs < 30 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}
