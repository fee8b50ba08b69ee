package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/Davydov/gomcmc/mcmc"
)

// parseWeights parses a comma-separated list of target weights.
func parseWeights(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	weights := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		weights = append(weights, v)
	}
	return weights, nil
}

// runWalk runs the Metropolis random walk over an integer interval.
func runWalk() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	k := *walkRight - *walkLeft + 1
	if k < 1 {
		log.Fatalf("Empty state space [%d, %d]", *walkLeft, *walkRight)
	}
	if *walkSteps < 0 {
		log.Fatalf("Negative number of steps: %d", *walkSteps)
	}

	var target mcmc.TargetWeights
	if *walkWeights != "" {
		weights, err := parseWeights(*walkWeights)
		if err != nil {
			log.Fatal("Error parsing weights:", err)
		}
		target, err = mcmc.NewTargetWeights(weights)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Info("Using uniform target weights")
		target = mcmc.UniformWeights(k)
	}

	w, err := mcmc.NewWalk(*walkInit, target, *walkLeft, *walkRight)
	if err != nil {
		log.Fatal(err)
	}
	w.SetSeed(*seed)

	w.Run(*walkSteps)

	f := os.Stdout

	if *outF != "" {
		f, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer f.Close()
	}

	out := bufio.NewWriter(f)
	fmt.Fprintln(out, "step\tstate")
	for i, state := range w.States() {
		fmt.Fprintf(out, "%d\t%d\n", i, state)
	}
	err = out.Flush()
	if err != nil {
		log.Error("Error writing trajectory:", err)
	}

	if *walkExact {
		compareExact(w, target)
	}

	summary.Walk = w.Summary()

	endTime := time.Now()

	deltaT := endTime.Sub(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}

// compareExact reports the difference between the observed visit
// frequencies and the exact stationary distribution of the walk.
func compareExact(w *mcmc.Walk, target mcmc.TargetWeights) {
	pi := mcmc.StationaryDist(target.TransitionMatrix())
	freqs := w.Frequencies()
	tv := 0.0
	for i, p := range pi {
		log.Noticef("state=%d visited=%.6f exact=%.6f", w.Left()+i, freqs[i], p)
		tv += math.Abs(p - freqs[i])
	}
	tv /= 2
	log.Noticef("Total variation distance from the stationary distribution: %.6f", tv)
}
