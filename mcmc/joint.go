package mcmc

// Joint is a Metropolis-Hastings sampler proposing new values for all
// the parameters at once. Every sweep either replaces the whole
// parameter vector with the proposed one or keeps it unchanged.
type Joint struct {
	BaseSampler
	// AccPeriod is the number of sweeps between acceptance rate
	// reports.
	AccPeriod int
	accepted  int
}

// NewJoint creates a new joint sampler.
func NewJoint() *Joint {
	return &Joint{
		BaseSampler: newBaseSampler(),
		AccPeriod:   10,
	}
}

// Run starts sampling. The chain is recorded in the trajectory; the
// first record is the starting point.
func (s *Joint) Run(sweeps int) {
	s.SaveStart(sweeps)
	s.PrintHeader(s.parameters)
	s.PrintLine(s.parameters, s.lp, s.repPeriod)
	np := len(s.parameters)
	winAccepted := 0
	for s.i = 1; s.i <= sweeps; s.i++ {
		if s.i > 1 && (s.i-1)%s.AccPeriod == 0 {
			log.Infof("Acceptance rate %.2f%%", 100*float64(winAccepted)/float64(s.AccPeriod))
			winAccepted = 0
		}

		for _, par := range s.parameters {
			par.Propose(s.rng)
		}
		proposed := s.parameters.Values(nil)
		lik := s.Likelihood()
		s.calls++
		newLP, ratio, accept := s.decide(lik)
		if accept {
			for _, par := range s.parameters {
				par.Accept(s.i)
			}
			s.lp = newLP
			s.accepted++
			winAccepted++
			s.updateMax()
		} else {
			for _, par := range s.parameters {
				par.Reject()
			}
		}

		ratios := make([]float64, np)
		flags := make([]bool, np)
		for j := 0; j < np; j++ {
			ratios[j] = ratio
			flags[j] = accept
		}
		s.trajectory = append(s.trajectory, SweepRecord{
			Sweep:        s.i,
			Values:       s.parameters.Values(nil),
			Proposed:     proposed,
			Ratios:       ratios,
			Accepted:     flags,
			LogPosterior: s.lp,
		})

		s.PrintLine(s.parameters, s.lp, s.repPeriod)
		if s.repPeriod > 0 && s.i%s.repPeriod == 0 {
			log.Debugf("%d: logpost=%f", s.i, s.lp)
		}
		s.SaveCheckpoint(false)
		if s.stopRequested() {
			break
		}
	}
	if s.i > sweeps {
		s.i = sweeps
	}
	if s.i != s.lastReported {
		s.PrintLine(s.parameters, s.lp, 1)
	}
	s.SaveCheckpoint(true)
	s.saveDeltaT()
	if s.i > 0 {
		log.Noticef("Acceptance rate %.2f%%", 100*float64(s.accepted)/float64(s.i))
	}
}

// mhSummary extends the base summary with sampler statistics.
type mhSummary struct {
	baseSamplerSummary
	// Sweeps is the number of completed sweeps.
	Sweeps int `json:"sweeps"`
	// AcceptanceRates are the per-parameter acceptance rates.
	AcceptanceRates map[string]float64 `json:"acceptanceRates,omitempty"`
}

// Summary returns the run summary for JSON output.
func (s *Joint) Summary() interface{} {
	base := s.BaseSampler.Summary().(baseSamplerSummary)
	rates := make(map[string]float64, len(s.parameters))
	if s.i > 0 {
		for _, par := range s.parameters {
			rates[par.Name()] = float64(s.accepted) / float64(s.i)
		}
	}
	return mhSummary{
		baseSamplerSummary: base,
		Sweeps:             s.i,
		AcceptanceRates:    rates,
	}
}
