package inbreed

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gomcmc/dist"
	"bitbucket.org/Davydov/gomcmc/mcmc"
)

// log is the global logging variable.
var log = logging.MustGetLogger("inbreed")

// Model is the inbreeding model together with its sampling
// parameters.
type Model struct {
	counts Counts
	priors Priors

	f, p     float64
	fSD, pSD float64

	parameters mcmc.FloatParameters
	as         *mcmc.AdaptiveSettings
}

// NewModel creates a new model. The starting values f0 and p0 must be
// inside the open unit interval; fSD and pSD are the standard
// deviations of the normal proposals.
func NewModel(counts Counts, priors Priors, f0, p0, fSD, pSD float64) (*Model, error) {
	if err := counts.validate(); err != nil {
		return nil, err
	}
	if err := priors.validate(); err != nil {
		return nil, err
	}
	if !(f0 > 0 && f0 < 1) {
		return nil, fmt.Errorf("Initial f=%v outside (0, 1)", f0)
	}
	if !(p0 > 0 && p0 < 1) {
		return nil, fmt.Errorf("Initial p=%v outside (0, 1)", p0)
	}
	if !(fSD > 0) || !(pSD > 0) {
		return nil, fmt.Errorf("Proposal standard deviations must be positive (fsd=%v, psd=%v)", fSD, pSD)
	}
	m := &Model{
		counts: counts,
		priors: priors,
		f:      f0,
		p:      p0,
		fSD:    fSD,
		pSD:    pSD,
	}
	m.setupParameters()
	return m, nil
}

// setupParameters recreates the model parameters, e.g. after enabling
// adaptive MCMC.
func (m *Model) setupParameters() {
	m.parameters = nil
	var fpg mcmc.FloatParameterGenerator
	if m.as != nil {
		fpg = m.as.ParameterGenerator
	} else {
		fpg = mcmc.BasicFloatParameterGenerator
	}
	m.addParameters(fpg)
}

// addParameters creates the f and p parameters.
func (m *Model) addParameters(fpg mcmc.FloatParameterGenerator) {
	f := fpg(&m.f, "f")
	f.SetMin(0)
	f.SetMax(1)
	f.SetPriorFunc(mcmc.BetaPrior(m.priors.AlphaF, m.priors.BetaF))
	f.SetProposalFunc(mcmc.NormalProposal(m.fSD))
	m.parameters.Append(f)

	p := fpg(&m.p, "p")
	p.SetMin(0)
	p.SetMax(1)
	p.SetPriorFunc(mcmc.BetaPrior(m.priors.AlphaP, m.priors.BetaP))
	p.SetProposalFunc(mcmc.NormalProposal(m.pSD))
	m.parameters.Append(p)
}

// GetFloatParameters returns the model parameters.
func (m *Model) GetFloatParameters() mcmc.FloatParameters {
	return m.parameters
}

// SetAdaptive enables adaptive MCMC for the model parameters.
func (m *Model) SetAdaptive(as *mcmc.AdaptiveSettings) {
	m.as = as
	m.setupParameters()
}

// Copy returns a copy of the model with an independent set of
// parameters.
func (m *Model) Copy() mcmc.Optimizable {
	newM := &Model{
		counts: m.counts,
		priors: m.priors,
		f:      m.f,
		p:      m.p,
		fSD:    m.fSD,
		pSD:    m.pSD,
		as:     m.as,
	}
	newM.setupParameters()
	return newM
}

// GetParameters returns the current values of f and p.
func (m *Model) GetParameters() (f, p float64) {
	return m.f, m.p
}

// SetParameters sets the values of f and p.
func (m *Model) SetParameters(f, p float64) {
	m.parameters[0].Set(f)
	m.parameters[1].Set(p)
}

// Likelihood computes the genotype log-likelihood for the current
// values of f and p. Points outside the open unit square are out of
// the density domain.
func (m *Model) Likelihood() mcmc.LogDensity {
	if !(m.f > 0 && m.f < 1 && m.p > 0 && m.p < 1) {
		return mcmc.OutOfDomain()
	}
	l := logLikelihood(m.counts, m.f, m.p)
	if math.IsNaN(l) {
		return mcmc.OutOfDomain()
	}
	return mcmc.Valid(l)
}

// RandomizeFromPriors draws the starting values of f and p from their
// beta priors by inverse transform sampling.
func (m *Model) RandomizeFromPriors(rng *rand.Rand) {
	m.SetParameters(quantileDraw(rng, m.priors.AlphaF, m.priors.BetaF),
		quantileDraw(rng, m.priors.AlphaP, m.priors.BetaP))
	log.Infof("Starting from a random point f=%v, p=%v", m.f, m.p)
}

// quantileDraw draws from a beta distribution through the quantile
// function; a zero uniform draw is rejected to stay inside the open
// interval.
func quantileDraw(rng *rand.Rand, alpha, beta float64) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}
	return dist.QuantileBeta(u, alpha, beta)
}

// modelSummary stores the model description for JSON output.
type modelSummary struct {
	// Counts are the observed genotype counts.
	Counts Counts `json:"counts"`
	// Priors are the prior hyperparameters.
	Priors Priors `json:"priors"`
	// F and P are the final parameter values.
	F float64 `json:"f"`
	P float64 `json:"p"`
}

// Summary returns the model summary for JSON output.
func (m *Model) Summary() interface{} {
	return modelSummary{
		Counts: m.counts,
		Priors: m.priors,
		F:      m.f,
		P:      m.p,
	}
}
