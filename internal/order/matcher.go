package order

import "github.com/bunbaker/bunbakery/internal/domain"

// Match scores an assembled stack against an order, returning a quality in
// [0, 1]. Zero means outright rejection: wrong length, or any position
// whose category differs from the required one. The match is strictly
// positional; categories are compared as enums, so a top bun never passes
// for a bottom bun. A correct category in the wrong processing state earns
// half credit.
func Match(stack []*domain.Instance, o *domain.Order) float64 {
	if len(stack) != len(o.Items) {
		return 0
	}

	score := 0.0
	for i, required := range o.Items {
		actual := stack[i].ID
		if actual.Category != required.Category {
			return 0
		}
		if actual == required {
			score += 1.0
		} else {
			score += 0.5
		}
	}
	return score / float64(len(o.Items))
}
