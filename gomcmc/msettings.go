package main

import (
	"errors"
	"fmt"
	"math/rand"

	"bitbucket.org/Davydov/gomcmc/inbreed"
)

// modelSettings stores settings for creating a new model.
type modelSettings struct {
	counts inbreed.Counts
	priors inbreed.Priors

	f0, p0   float64
	fSD, pSD float64

	startF    string
	randomize bool
	seed      int64
}

// newModelSettings initializes modelSettings from global
// variables (command-line arguments).
func newModelSettings() *modelSettings {
	return &modelSettings{
		counts: inbreed.Counts{NAA: *nAA, NAa: *nAa, Naa: *naa},
		priors: inbreed.Priors{
			AlphaF: *alphaF,
			BetaF:  *betaF,
			AlphaP: *alphaP,
			BetaP:  *betaP,
		},

		f0:  *f0,
		p0:  *p0,
		fSD: *fSD,
		pSD: *pSD,

		startF:    *startF,
		randomize: *randomize,
		seed:      *seed,
	}
}

// createInitialized creates and initializes a model from
// modelSettings. The starting point comes from a checkpoint map, a
// start file, the priors (-randomize) or the f0/p0 settings, in this
// order of preference.
func (ms *modelSettings) createInitialized(start map[string]float64) (*inbreed.Model, error) {
	m, err := inbreed.NewModel(ms.counts, ms.priors, ms.f0, ms.p0, ms.fSD, ms.pSD)
	if err != nil {
		return nil, err
	}

	log.Infof("Model has %d parameters.", len(m.GetFloatParameters()))

	switch {
	case len(start) > 0:
		par := m.GetFloatParameters()
		err = par.SetFromMap(start)
		if err != nil {
			return nil, err
		}
	case ms.startF != "":
		l, err := lastLine(ms.startF)
		par := m.GetFloatParameters()
		if err == nil {
			err = par.ReadLine(l)
		}
		if err != nil {
			log.Debug("Reading start file as JSON")
			err2 := par.ReadFromJSON(ms.startF)
			// the start file is neither a trajectory nor correct JSON
			if err2 != nil {
				log.Error("Error reading start position from JSON:", err2)
				return nil, fmt.Errorf("Error reading start position from trajectory file: %v", err)
			}
		}
		if !par.InRange() {
			return nil, errors.New("Initial parameters are not in the range")
		}
	case ms.randomize:
		log.Info("Using a random starting point drawn from the priors")
		m.RandomizeFromPriors(rand.New(rand.NewSource(ms.seed)))
	}

	return m, nil
}
