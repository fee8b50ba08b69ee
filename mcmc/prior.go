package mcmc

import (
	"math"
)

// FlatPrior returns an improper constant prior.
func FlatPrior() func(float64) float64 {
	return func(x float64) float64 {
		return 0
	}
}

// UniformPrior returns a uniform prior on [min, max]; incmin and
// incmax control whether the endpoints are inside the support.
func UniformPrior(min, max float64, incmin, incmax bool) func(float64) float64 {
	if max <= min {
		panic("max <= min")
	}
	return func(x float64) float64 {
		if (incmin && x < min) ||
			(!incmin && x <= min) ||
			(incmax && x > max) ||
			(!incmax && x >= max) {
			return math.Inf(-1)
		}
		return -math.Log(max - min)
	}
}

// BetaPrior returns a beta-distribution prior on the open interval
// (0, 1). The returned log-density has no beta-function term: the
// normalizing constant cancels in the acceptance ratio.
func BetaPrior(alpha, beta float64) func(float64) float64 {
	if alpha <= 0 || beta <= 0 {
		panic("alpha and beta of beta distribution must be > 0")
	}
	return func(x float64) float64 {
		if x <= 0 || x >= 1 {
			return math.Inf(-1)
		}
		return (alpha-1)*math.Log(x) + (beta-1)*math.Log(1-x)
	}
}
