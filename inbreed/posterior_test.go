package inbreed

import (
	"math"
	"testing"

	"github.com/op/go-logging"
)

// smallDiff is a maximum allowed difference between density values
const smallDiff = 1e-6

// optDiff is a maximum allowed difference for optimization results
const optDiff = 1e-3

// testCounts is the genotype sample used throughout the tests.
var testCounts = Counts{NAA: 30, NAa: 10, Naa: 10}

func init() {
	// disable logging for tests
	logging.SetLevel(logging.WARNING, "mcmc")
	logging.SetLevel(logging.WARNING, "inbreed")
}

func TestGenotypeProbabilities(tst *testing.T) {
	for f := 0.1; f < 1; f += 0.2 {
		for p := 0.1; p < 1; p += 0.2 {
			sum := probAA(f, p) + probAa(f, p) + probaa(f, p)
			if math.Abs(sum-1) > 1e-12 {
				tst.Errorf("Genotype probabilities sum to %v for f=%v, p=%v", sum, f, p)
			}
		}
	}
}

func TestLogPosteriorUniform(tst *testing.T) {
	d := LogPosterior(testCounts, 0.2, 0.5, DefaultPriors())
	if !d.Valid() {
		tst.Fatal("Point inside the domain reported as invalid")
	}
	refL := -57.321819491778994
	L := d.Value()
	tst.Log("L=", L, ", Ref=", refL, ", diff=", math.Abs(L-refL))
	if math.Abs(L-refL) > smallDiff {
		tst.Error("Expected ", refL, ", got", L)
	}
}

func TestLogPosteriorBeta(tst *testing.T) {
	priors := Priors{AlphaF: 2, BetaF: 2, AlphaP: 2, BetaP: 2}
	d := LogPosterior(testCounts, 0.2, 0.5, priors)
	if !d.Valid() {
		tst.Fatal("Point inside the domain reported as invalid")
	}
	refL := -60.540695316647195
	L := d.Value()
	tst.Log("L=", L, ", Ref=", refL, ", diff=", math.Abs(L-refL))
	if math.Abs(L-refL) > smallDiff {
		tst.Error("Expected ", refL, ", got", L)
	}
}

func TestLogPosteriorDomain(tst *testing.T) {
	outside := []float64{0, 1, -0.1, 1.1, math.NaN()}
	for _, f := range outside {
		d := LogPosterior(testCounts, f, 0.5, DefaultPriors())
		if d.Valid() {
			tst.Errorf("f=%v reported as inside the domain", f)
		}
		if !math.IsNaN(d.Value()) {
			tst.Errorf("Expected NaN value for f=%v, got %v", f, d.Value())
		}
	}
	for _, p := range outside {
		d := LogPosterior(testCounts, 0.2, p, DefaultPriors())
		if d.Valid() {
			tst.Errorf("p=%v reported as inside the domain", p)
		}
		if !math.IsNaN(d.Value()) {
			tst.Errorf("Expected NaN value for p=%v, got %v", p, d.Value())
		}
	}
}

func TestLogPosteriorZeroCounts(tst *testing.T) {
	// with no observations the posterior is the prior
	d := LogPosterior(Counts{}, 0.2, 0.5, DefaultPriors())
	if !d.Valid() {
		tst.Fatal("Point inside the domain reported as invalid")
	}
	if math.Abs(d.Value()) > smallDiff {
		tst.Error("Expected 0, got", d.Value())
	}
}
