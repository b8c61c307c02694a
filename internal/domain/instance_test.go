package domain

import (
	"math"
	"math/rand"
	"testing"
)

func TestQualitySamplingBounds(t *testing.T) {
	cat := DefaultCatalog()
	rng := rand.New(rand.NewSource(42))

	const n = 5000
	sum := 0.0
	spec := cat[Patty]
	for i := 0; i < n; i++ {
		in := NewInstance(Plain(Patty), cat, rng)
		lo, hi := spec.BaseQuality-spec.QualityRange, spec.BaseQuality+spec.QualityRange
		if in.Quality < lo || in.Quality > hi {
			t.Fatalf("sample %d: quality %v outside [%v, %v]", i, in.Quality, lo, hi)
		}
		sum += in.Quality
	}

	mean := sum / n
	if math.Abs(mean-spec.BaseQuality) > 0.02 {
		t.Fatalf("empirical mean %v too far from base %v", mean, spec.BaseQuality)
	}
}

func TestTransformBumpsQuality(t *testing.T) {
	cat := DefaultCatalog()
	rng := rand.New(rand.NewSource(1))

	in := NewInstance(Plain(Tomato), cat, rng)
	before := in.Quality
	in.Transform(ID{Tomato, StateSliced})

	if in.ID.Name() != "tomato_sliced" {
		t.Fatalf("expected tomato_sliced, got %s", in.ID.Name())
	}
	if got, want := in.Quality, before*QualityImprovement; math.Abs(got-want) > 1e-12 {
		t.Fatalf("quality = %v, want %v", got, want)
	}
}

func TestCloneKeepsQuality(t *testing.T) {
	cat := DefaultCatalog()
	rng := rand.New(rand.NewSource(7))

	in := NewInstance(Plain(Cheese), cat, rng)
	in.Mode = ModeHeld
	cp := in.Clone()

	if cp.Quality != in.Quality || cp.ID != in.ID {
		t.Fatal("clone must preserve identity and quality")
	}
	if cp.Mode != ModeIdle {
		t.Fatal("clone must start idle")
	}
	cp.Transform(ID{Cheese, StateMelted})
	if in.ID.State == StateMelted {
		t.Fatal("transforming the clone must not touch the original")
	}
}
