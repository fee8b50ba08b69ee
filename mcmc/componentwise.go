package mcmc

import (
	"fmt"
)

// Componentwise is a Metropolis-Hastings sampler updating one
// parameter at a time. Every sweep proposes and accepts or rejects
// each parameter in turn, so later updates of the sweep see the
// values accepted earlier in the same sweep.
type Componentwise struct {
	BaseSampler
	// AccPeriod is the number of sweeps between acceptance rate
	// reports.
	AccPeriod int
	accepted  []int
}

// NewComponentwise creates a new componentwise sampler.
func NewComponentwise() *Componentwise {
	return &Componentwise{
		BaseSampler: newBaseSampler(),
		AccPeriod:   10,
	}
}

// Run starts sampling. The chain is recorded in the trajectory; the
// first record is the starting point.
func (s *Componentwise) Run(sweeps int) {
	s.SaveStart(sweeps)
	s.PrintHeader(s.parameters)
	s.PrintLine(s.parameters, s.lp, s.repPeriod)
	np := len(s.parameters)
	if s.accepted == nil {
		s.accepted = make([]int, np)
	}
	winAccepted := make([]int, np)
	for s.i = 1; s.i <= sweeps; s.i++ {
		if s.i > 1 && (s.i-1)%s.AccPeriod == 0 {
			log.Infof("Acceptance rate %s", acceptanceString(s.parameters, winAccepted, s.AccPeriod))
			for j := range winAccepted {
				winAccepted[j] = 0
			}
		}

		proposed := make([]float64, np)
		ratios := make([]float64, np)
		flags := make([]bool, np)
		for j, par := range s.parameters {
			par.Propose(s.rng)
			proposed[j] = par.Get()
			lik := s.Likelihood()
			s.calls++
			newLP, ratio, accept := s.decide(lik)
			ratios[j] = ratio
			flags[j] = accept
			if accept {
				par.Accept(s.i)
				s.lp = newLP
				s.accepted[j]++
				winAccepted[j]++
				s.updateMax()
			} else {
				par.Reject()
			}
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
		log.Noticef("Acceptance rate %s", acceptanceString(s.parameters, s.accepted, s.i))
	}
}

// Summary returns the run summary for JSON output.
func (s *Componentwise) Summary() interface{} {
	base := s.BaseSampler.Summary().(baseSamplerSummary)
	rates := make(map[string]float64, len(s.parameters))
	if s.i > 0 {
		for j, par := range s.parameters {
			rates[par.Name()] = float64(s.accepted[j]) / float64(s.i)
		}
	}
	return mhSummary{
		baseSamplerSummary: base,
		Sweeps:             s.i,
		AcceptanceRates:    rates,
	}
}

// acceptanceString formats per-parameter acceptance percentages.
func acceptanceString(pars FloatParameters, accepted []int, total int) (s string) {
	for j, par := range pars {
		if j != 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %.2f%%", par.Name(), 100*float64(accepted[j])/float64(total))
	}
	return
}
