package order

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bunbaker/bunbakery/internal/clock"
	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

func newGenerator(t *testing.T, seed int64) (*Generator, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Unix(5000, 0))
	log := logger.New(logger.LevelOff, nil)
	return NewGenerator(domain.DefaultCatalog(), clk, rand.New(rand.NewSource(seed)), log), clk
}

func TestGenerateDifficultyOneShape(t *testing.T) {
	gen, clk := newGenerator(t, 99)

	for i := 0; i < 500; i++ {
		o := gen.Generate(1)

		if len(o.Items) < 3 {
			t.Fatalf("order %d: length %d below minimum", i, len(o.Items))
		}
		if first := o.Items[0]; first != domain.Plain(domain.BunBottom) {
			t.Fatalf("order %d: starts with %s", i, first.Name())
		}
		last := o.Items[len(o.Items)-1]
		if last.Category != domain.BunTop {
			t.Fatalf("order %d: ends with %s", i, last.Name())
		}
		if last.State != domain.StatePlain {
			t.Fatalf("order %d: difficulty 1 must never toast the top bun", i)
		}

		patties := 0
		seen := map[domain.Category]bool{}
		for _, id := range o.Items[1 : len(o.Items)-1] {
			if id.Category == domain.Patty {
				patties++
				if id.State != domain.StatePlain && id.State != domain.StateOvercooked {
					t.Fatalf("order %d: patty in state %s", i, id.State)
				}
				continue
			}
			if seen[id.Category] {
				t.Fatalf("order %d: duplicate extra category %s", i, id.Category)
			}
			seen[id.Category] = true
		}
		if patties != 1 {
			t.Fatalf("order %d: %d patty entries, want exactly 1", i, patties)
		}
		// Difficulty 1 allows at most 2 extras.
		if extras := len(o.Items) - 3; extras < 1 || extras > 2 {
			t.Fatalf("order %d: %d extras outside [1, 2]", i, extras)
		}

		if o.TimeLimit != 55*time.Second {
			t.Fatalf("order %d: time limit %s, want 55s", i, o.TimeLimit)
		}
		if o.ScoreValue != 75 {
			t.Fatalf("order %d: score value %d, want 75", i, o.ScoreValue)
		}
		if !o.CreatedAt.Equal(clk.Now()) {
			t.Fatalf("order %d: creation timestamp not taken from the clock", i)
		}
	}
}

func TestGenerateTimeLimitFloor(t *testing.T) {
	gen, _ := newGenerator(t, 3)

	tests := []struct {
		difficulty int
		limit      time.Duration
		score      int
	}{
		{1, 55 * time.Second, 75},
		{3, 45 * time.Second, 125},
		{6, 30 * time.Second, 200},
		{12, 30 * time.Second, 350},
	}
	for _, tt := range tests {
		o := gen.Generate(tt.difficulty)
		if o.TimeLimit != tt.limit {
			t.Errorf("difficulty %d: limit %s, want %s", tt.difficulty, o.TimeLimit, tt.limit)
		}
		if o.ScoreValue != tt.score {
			t.Errorf("difficulty %d: score %d, want %d", tt.difficulty, o.ScoreValue, tt.score)
		}
	}
}

func TestGenerateExtrasCapped(t *testing.T) {
	gen, _ := newGenerator(t, 17)

	// The cap is half the variant pool (4), regardless of difficulty.
	for i := 0; i < 300; i++ {
		o := gen.Generate(20)
		extras := len(o.Items) - 3
		if extras < 1 || extras > 4 {
			t.Fatalf("difficulty 20: %d extras outside [1, 4]", extras)
		}
	}
}

func TestGenerateSaturatedPromotion(t *testing.T) {
	gen, _ := newGenerator(t, 23)

	// At difficulty 7 the promotion probability reaches 1.0: every extra
	// with a processed variant must appear in it.
	for i := 0; i < 300; i++ {
		o := gen.Generate(7)
		for _, id := range o.Items[1 : len(o.Items)-1] {
			if id.Category == domain.Patty || id.Category == domain.Lettuce {
				continue
			}
			if id.State == domain.StatePlain {
				t.Fatalf("order %d: extra %s not promoted at saturated probability", i, id.Name())
			}
		}
	}
}

func TestGenerateToastedTopAboveDifficultyTwo(t *testing.T) {
	gen, _ := newGenerator(t, 31)

	toasted := 0
	const n = 2000
	for i := 0; i < n; i++ {
		o := gen.Generate(3)
		if o.Items[len(o.Items)-1].State == domain.StateToasted {
			toasted++
		}
	}
	// Expect roughly 40%.
	if ratio := float64(toasted) / n; ratio < 0.34 || ratio > 0.46 {
		t.Fatalf("toasted top ratio %v, want about 0.40", ratio)
	}
}

func TestOrderExpiry(t *testing.T) {
	gen, clk := newGenerator(t, 8)

	o := gen.Generate(1)
	if o.Expired(clk.Now()) {
		t.Fatal("fresh order must not be expired")
	}

	clk.Advance(o.TimeLimit - time.Second)
	if o.Expired(clk.Now()) {
		t.Fatal("order within its limit must not be expired")
	}
	if got := o.Remaining(clk.Now()); got != time.Second {
		t.Fatalf("remaining = %s, want 1s", got)
	}

	clk.Advance(2 * time.Second)
	if !o.Expired(clk.Now()) {
		t.Fatal("order past its limit must be expired")
	}

	o.Complete()
	if o.Expired(clk.Now()) {
		t.Fatal("completed order must never report expired")
	}
	if o.Remaining(clk.Now()) != o.TimeLimit {
		t.Fatal("completed order must report its full limit")
	}
}
