package mcmc

import "math"

// SweepRecord stores the state of a sampler after a single sweep
// together with the proposals and the decisions made during the
// sweep. The slices are never modified after the record is created.
type SweepRecord struct {
	// Sweep is the sweep number; sweep 0 is the initial state.
	Sweep int
	// Values are the parameter values after the sweep.
	Values []float64
	// Proposed are the values proposed during the sweep; NaN for
	// sweep 0.
	Proposed []float64
	// Ratios are the acceptance ratios; a ratio is NaN if the
	// proposed point was outside the density support.
	Ratios []float64
	// Accepted are the acceptance flags. For the joint sampler all
	// the flags of a sweep are equal.
	Accepted []bool
	// LogPosterior is the unnormalized log-posterior after the sweep.
	LogPosterior float64
}

// nanSlice returns a slice of n NaN values.
func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
