package domain

import "math/rand"

// Mode is the transient placement of an ingredient instance.
type Mode int

const (
	ModeIdle Mode = iota
	ModeHeld
	ModeProcessing
)

// QualityImprovement is the factor applied to an instance's quality each
// time a transformation finishes. It is deliberately uniform across
// transformation kinds, overcooking included.
const QualityImprovement = 1.2

// Instance is one concrete ingredient in play. Identity is mutable: a
// finished transformation changes the State half of the ID in place.
type Instance struct {
	ID      ID
	Quality float64
	Mode    Mode
}

// NewInstance creates an instance of the given identity with quality
// sampled uniformly in [base-range, base+range] from the catalog entry.
func NewInstance(id ID, cat Catalog, rng *rand.Rand) *Instance {
	quality := 1.0
	if spec, ok := cat[id.Category]; ok {
		quality = spec.BaseQuality + (rng.Float64()*2-1)*spec.QualityRange
	}
	return &Instance{ID: id, Quality: quality}
}

// Clone duplicates the instance, preserving its quality. Used when pulling
// from a shelf template.
func (in *Instance) Clone() *Instance {
	cp := *in
	cp.Mode = ModeIdle
	return &cp
}

// Transform applies a finished transformation: the instance takes on the
// new identity and its quality improves by the fixed factor.
func (in *Instance) Transform(to ID) {
	in.ID = to
	in.Quality *= QualityImprovement
}
