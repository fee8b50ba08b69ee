package inbreed

import (
	"fmt"
)

// Counts stores observed genotype counts at a single biallelic locus.
type Counts struct {
	// NAA is the number of AA homozygotes.
	NAA int `json:"nAA"`
	// NAa is the number of heterozygotes.
	NAa int `json:"nAa"`
	// Naa is the number of aa homozygotes.
	Naa int `json:"naa"`
}

// N returns the total number of sampled individuals.
func (c Counts) N() int {
	return c.NAA + c.NAa + c.Naa
}

// validate checks that all the counts are non-negative.
func (c Counts) validate() error {
	if c.NAA < 0 || c.NAa < 0 || c.Naa < 0 {
		return fmt.Errorf("Negative genotype counts (nAA=%d, nAa=%d, naa=%d)", c.NAA, c.NAa, c.Naa)
	}
	return nil
}

// Priors stores the hyperparameters of the beta priors on the
// inbreeding coefficient f and the allele frequency p.
type Priors struct {
	// AlphaF and BetaF are the shape parameters of the prior on f.
	AlphaF float64 `json:"alphaF"`
	BetaF  float64 `json:"betaF"`
	// AlphaP and BetaP are the shape parameters of the prior on p.
	AlphaP float64 `json:"alphaP"`
	BetaP  float64 `json:"betaP"`
}

// DefaultPriors returns uniform priors on f and p (all the
// hyperparameters equal to one).
func DefaultPriors() Priors {
	return Priors{
		AlphaF: 1,
		BetaF:  1,
		AlphaP: 1,
		BetaP:  1,
	}
}

// validate checks that all the hyperparameters are positive.
func (pr Priors) validate() error {
	if !(pr.AlphaF > 0) || !(pr.BetaF > 0) || !(pr.AlphaP > 0) || !(pr.BetaP > 0) {
		return fmt.Errorf("Prior hyperparameters must be positive (%+v)", pr)
	}
	return nil
}
