package main

import (
	"fmt"
	"os"

	"bitbucket.org/Davydov/gomcmc/checkpoint"
	"bitbucket.org/Davydov/gomcmc/inbreed"
	"bitbucket.org/Davydov/gomcmc/mcmc"
)

// samplerSettings stores settings for creation of a new sampler or
// optimizer.
type samplerSettings struct {
	method string
	model  *inbreed.Model

	sweeps int

	report int

	accept   int
	adaptive bool
	skip     int
	maxAdapt int

	trajF *os.File
	ckp   *checkpoint.CheckpointIO

	seed int64
}

// newSamplerSettings creates a new samplerSettings from
// the command line parameters (global variables).
func newSamplerSettings(model *inbreed.Model, trajF *os.File, ckp *checkpoint.CheckpointIO) *samplerSettings {
	return &samplerSettings{
		method: *method,
		model:  model,

		sweeps: *sweeps,

		report: *report,

		accept:   *accept,
		adaptive: *adaptive,
		skip:     *skip,
		maxAdapt: *maxAdapt,

		trajF: trajF,
		ckp:   ckp,

		seed: *seed,
	}
}

// create creates and initializes a new sampler from samplerSettings.
func (s *samplerSettings) create() (mcmc.Sampler, error) {
	// sweeps to skip before the adaptation stops, for adaptive mcmc
	if s.adaptive {
		as := mcmc.NewAdaptiveSettings()
		if s.skip < 0 {
			s.skip = s.sweeps / 20
		}
		if s.maxAdapt < 0 {
			s.maxAdapt = s.sweeps / 5
		}
		log.Infof("Setting adaptive parameters, skip=%v, maxAdapt=%v", s.skip, s.maxAdapt)
		as.Skip = s.skip
		as.MaxAdapt = s.maxAdapt
		s.model.SetAdaptive(as)
	}

	smpl, err := s.getSampler()
	if err != nil {
		return nil, err
	}
	log.Infof("Using %s sampling.", s.method)

	smpl.SetTrajectoryOutput(s.trajF)
	smpl.SetOptimizable(s.model)
	smpl.SetSeed(s.seed)
	smpl.SetCheckpointIO(s.ckp)

	smpl.SetReportPeriod(s.report)

	return smpl, nil
}

// getSampler returns a sampler from settings.
func (s *samplerSettings) getSampler() (mcmc.Sampler, error) {
	switch s.method {
	case "joint":
		chain := mcmc.NewJoint()
		chain.AccPeriod = s.accept
		return chain, nil
	case "componentwise":
		chain := mcmc.NewComponentwise()
		chain.AccPeriod = s.accept
		return chain, nil
	case "lbfgsb":
		return mcmc.NewLBFGSB(), nil
	case "simplex":
		return mcmc.NewDS(), nil
	case "none":
		return mcmc.NewNone(), nil
	}
	return nil, fmt.Errorf("Unknown sampling method: %s", s.method)
}
