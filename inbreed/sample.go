package inbreed

import (
	"fmt"

	"bitbucket.org/Davydov/gomcmc/mcmc"
)

// SampleJoint samples the posterior with the joint sampler: every
// sweep proposes new values for f and p together and accepts or
// rejects the pair atomically. It returns the full chain including
// the initial record.
func SampleJoint(counts Counts, priors Priors, f0, p0 float64, sweeps int, fSD, pSD float64, seed int64) ([]mcmc.SweepRecord, error) {
	m, err := newSampleModel(counts, priors, f0, p0, sweeps, fSD, pSD)
	if err != nil {
		return nil, err
	}
	s := mcmc.NewJoint()
	s.Quiet = true
	s.SetOptimizable(m)
	s.SetSeed(seed)
	s.Run(sweeps)
	return s.Trajectory(), nil
}

// SampleComponentwise samples the posterior with the componentwise
// sampler: every sweep updates f and then p, the p update seeing the
// f value accepted moments before. It returns the full chain
// including the initial record.
func SampleComponentwise(counts Counts, priors Priors, f0, p0 float64, sweeps int, fSD, pSD float64, seed int64) ([]mcmc.SweepRecord, error) {
	m, err := newSampleModel(counts, priors, f0, p0, sweeps, fSD, pSD)
	if err != nil {
		return nil, err
	}
	s := mcmc.NewComponentwise()
	s.Quiet = true
	s.SetOptimizable(m)
	s.SetSeed(seed)
	s.Run(sweeps)
	return s.Trajectory(), nil
}

// newSampleModel validates sampling arguments and creates a model.
func newSampleModel(counts Counts, priors Priors, f0, p0 float64, sweeps int, fSD, pSD float64) (*Model, error) {
	if sweeps < 0 {
		return nil, fmt.Errorf("Negative number of sweeps: %d", sweeps)
	}
	return NewModel(counts, priors, f0, p0, fSD, pSD)
}
