package mcmc

import (
	"math/rand"
)

// Rand returns a random value in the range [0, 1], including 1.
func Rand(rng *rand.Rand) float64 {
	// 1.0 is not included and we would like to be symmetric
	r := float64(1)
	for r > 0.999 {
		r = rng.Float64()
	}
	return r / 0.999
}

// UniformProposal returns a symmetric uniform proposal function of a
// given width.
func UniformProposal(width float64) func(*rand.Rand, float64) float64 {
	if width <= 0 {
		panic("width should be > 0")
	}
	return func(rng *rand.Rand, x float64) float64 {
		return x + Rand(rng)*width - width/2
	}
}

// NormalProposal returns a normal proposal function with a given
// standard deviation.
func NormalProposal(sd float64) func(*rand.Rand, float64) float64 {
	if sd <= 0 {
		panic("sd should be > 0")
	}
	return func(rng *rand.Rand, x float64) float64 {
		return x + rng.NormFloat64()*sd
	}
}
