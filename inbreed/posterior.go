// Package inbreed implements a Bayesian model of inbreeding at a
// single biallelic locus. The genotype counts are multinomial with
// probabilities determined by the inbreeding coefficient f and the
// allele frequency p; both parameters have beta priors.
package inbreed

import (
	"math"

	"bitbucket.org/Davydov/gomcmc/mcmc"
)

// probAA returns the probability of an AA genotype.
func probAA(f, p float64) float64 {
	return f*p + (1-f)*p*p
}

// probAa returns the probability of a heterozygote; inbreeding
// reduces heterozygosity by the factor 1-f.
func probAa(f, p float64) float64 {
	return (1 - f) * 2 * p * (1 - p)
}

// probaa returns the probability of an aa genotype.
func probaa(f, p float64) float64 {
	return f*(1-p) + (1-f)*(1-p)*(1-p)
}

// logLikelihood returns the multinomial log-likelihood of the counts.
// The multinomial coefficient is left out: it is constant in (f, p)
// and cancels in the acceptance ratio. Inside the open unit square
// all three genotype probabilities are strictly positive.
func logLikelihood(c Counts, f, p float64) float64 {
	return float64(c.NAA)*math.Log(probAA(f, p)) +
		float64(c.NAa)*math.Log(probAa(f, p)) +
		float64(c.Naa)*math.Log(probaa(f, p))
}

// LogPosterior evaluates the unnormalized log-posterior of the model
// at (f, p). Points outside the open unit square are out of the
// density domain. The beta-function terms of the priors are left out:
// they cancel in the acceptance ratio.
func LogPosterior(c Counts, f, p float64, priors Priors) mcmc.LogDensity {
	if !(f > 0 && f < 1 && p > 0 && p < 1) {
		return mcmc.OutOfDomain()
	}
	lp := (priors.AlphaF-1)*math.Log(f) + (priors.BetaF-1)*math.Log(1-f) +
		(priors.AlphaP-1)*math.Log(p) + (priors.BetaP-1)*math.Log(1-p) +
		logLikelihood(c, f, p)
	// extreme hyperparameters can produce NaN through Inf arithmetics
	if math.IsNaN(lp) {
		return mcmc.OutOfDomain()
	}
	return mcmc.Valid(lp)
}
