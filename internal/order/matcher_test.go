package order

import (
	"math"
	"testing"
	"time"

	"github.com/bunbaker/bunbakery/internal/domain"
)

func stackOf(names ...string) []*domain.Instance {
	out := make([]*domain.Instance, len(names))
	for i, name := range names {
		id, err := domain.ParseName(name)
		if err != nil {
			panic(err)
		}
		out[i] = &domain.Instance{ID: id, Quality: 1.0}
	}
	return out
}

func orderOf(names ...string) *domain.Order {
	items := make([]domain.ID, len(names))
	for i, name := range names {
		id, err := domain.ParseName(name)
		if err != nil {
			panic(err)
		}
		items[i] = id
	}
	return &domain.Order{Items: items, TimeLimit: time.Minute}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		stack []*domain.Instance
		order *domain.Order
		want  float64
	}{
		{
			"identical",
			stackOf("bun_bottom", "patty", "cheese_melted", "bun_top"),
			orderOf("bun_bottom", "patty", "cheese_melted", "bun_top"),
			1.0,
		},
		{
			"wrong processing state gives half credit",
			stackOf("bun_bottom", "patty", "bun_top"),
			orderOf("bun_bottom", "patty_overcooked", "bun_top"),
			(1 + 0.5 + 1) / 3,
		},
		{
			"category mismatch rejects",
			stackOf("bun_bottom", "cheese", "bun_top"),
			orderOf("bun_bottom", "patty", "bun_top"),
			0,
		},
		{
			"length mismatch rejects",
			stackOf("bun_bottom", "patty", "cheese", "bun_top"),
			orderOf("bun_bottom", "patty", "bun_top"),
			0,
		},
		{
			"buns are distinct categories",
			stackOf("bun_top", "patty", "bun_bottom"),
			orderOf("bun_bottom", "patty", "bun_top"),
			0,
		},
		{
			"unsliced tomato is half credit",
			stackOf("bun_bottom", "patty", "tomato", "bun_top"),
			orderOf("bun_bottom", "patty", "tomato_sliced", "bun_top"),
			3.5 / 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.stack, tt.order)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}
