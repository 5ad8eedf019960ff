package synth

import "market-fixtures/internal/rng"

// Uniform yields values in [0, 1).
type Uniform interface {
	Float64() float64
}

// Coin is a uniform source that can also pick an integer in [0, n).
type Coin interface {
	Uniform
	IntN(n int) int
}

// Gaussian yields normal and log-normal variates.
type Gaussian interface {
	Normal(loc, scale float64) float64
	LogNormal(mean, sigma float64) float64
}

// Sources bundles the two independent draw streams of the market pipeline.
// Gauss feeds price shocks and then sizes; Flow feeds order direction.
type Sources struct {
	Flow  Coin
	Gauss Gaussian
}

// SeededSources returns the generator pair used by the reference fixtures:
// a CPython-compatible stream for order flow and a NumPy-compatible stream
// for shocks and sizes, both seeded with seed.
func SeededSources(seed uint32) Sources {
	return Sources{
		Flow:  rng.NewPython(uint64(seed)),
		Gauss: rng.NewNumPy(seed),
	}
}

// SeededDecisionSource returns the CPython-compatible stream used for the
// decision fixture.
func SeededDecisionSource(seed uint32) Uniform {
	return rng.NewPython(uint64(seed))
}
