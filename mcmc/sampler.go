// Package mcmc provides Markov chain Monte Carlo samplers and
// mode-finding optimizers for models with continuous parameters, as
// well as a Metropolis random walk over a discrete state space.
package mcmc

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/gomcmc/checkpoint"
)

// log is the global logging variable.
var log = logging.MustGetLogger("mcmc")

// Optimizable is a model which can be sampled from or optimized.
// Likelihood returns the data log-likelihood; the parameter priors
// are attached to the parameters themselves.
type Optimizable interface {
	// GetFloatParameters returns the model parameters.
	GetFloatParameters() FloatParameters
	// Likelihood computes the log-likelihood for the current
	// parameter values.
	Likelihood() LogDensity
	// Copy returns a copy of the model with an independent set of
	// parameters.
	Copy() Optimizable
}

// Sampler is an interface for samplers and optimizers.
type Sampler interface {
	// SetOptimizable sets a model to sample from.
	SetOptimizable(Optimizable)
	// SetSeed initializes the random number source with a seed.
	SetSeed(seed int64)
	// WatchSignals installs a handler to stop the run gracefully.
	WatchSignals(...os.Signal)
	// SetReportPeriod sets the number of sweeps between trajectory
	// lines.
	SetReportPeriod(period int)
	// SetTrajectoryOutput sets a writer for the trajectory.
	SetTrajectoryOutput(io.Writer)
	// SetCheckpointIO sets the checkpoint storage.
	SetCheckpointIO(*checkpoint.CheckpointIO)
	// Run runs the sampler for a given number of sweeps.
	Run(sweeps int)
	// GetLogPosterior returns the current log-posterior value.
	GetLogPosterior() float64
	// GetMaxLogPosterior returns the maximum log-posterior value
	// found during the run.
	GetMaxLogPosterior() float64
	// GetMaxLogPosteriorParameters returns the parameter values
	// corresponding to the maximum log-posterior.
	GetMaxLogPosteriorParameters() []float64
	// Summary returns the run summary for JSON output.
	Summary() interface{}
	// PrintResults reports the results using the logging system.
	PrintResults()
}

// BaseSampler provides the common functionality of samplers and
// optimizers.
type BaseSampler struct {
	Optimizable
	parameters FloatParameters
	rng        *rand.Rand

	// i is the current sweep number.
	i int
	// lp is the current log-posterior value.
	lp float64
	// calls is the number of log-density evaluations.
	calls int

	maxLP    float64
	maxLPPar []float64

	trajectory []SweepRecord

	repPeriod    int
	lastReported int
	output       io.Writer
	sig          chan os.Signal
	ckp          *checkpoint.CheckpointIO
	startTime    time.Time
	deltaT       float64

	// Quiet disables the trajectory output.
	Quiet bool
}

// newBaseSampler creates a new base sampler with a time-based seed.
func newBaseSampler() BaseSampler {
	return BaseSampler{
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		repPeriod:    10,
		lastReported: -1,
		output:       os.Stdout,
		maxLP:        math.Inf(-1),
	}
}

// SetOptimizable sets a model to sample from.
func (s *BaseSampler) SetOptimizable(m Optimizable) {
	s.Optimizable = m
	s.parameters = m.GetFloatParameters()
}

// SetSeed initializes the random number source with a seed. Two runs
// with the same seed and the same model produce identical chains.
func (s *BaseSampler) SetSeed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// WatchSignals installs a handler to stop the run gracefully.
func (s *BaseSampler) WatchSignals(sigs ...os.Signal) {
	s.sig = make(chan os.Signal, 1)
	signal.Notify(s.sig, sigs...)
}

// SetReportPeriod sets the number of sweeps between trajectory lines.
func (s *BaseSampler) SetReportPeriod(period int) {
	s.repPeriod = period
}

// SetTrajectoryOutput sets a writer for the trajectory.
func (s *BaseSampler) SetTrajectoryOutput(w io.Writer) {
	s.output = w
}

// SetCheckpointIO sets the checkpoint storage.
func (s *BaseSampler) SetCheckpointIO(ckp *checkpoint.CheckpointIO) {
	s.ckp = ckp
}

// GetLogPosterior returns the current log-posterior value.
func (s *BaseSampler) GetLogPosterior() float64 {
	return s.lp
}

// GetMaxLogPosterior returns the maximum log-posterior value found
// during the run.
func (s *BaseSampler) GetMaxLogPosterior() float64 {
	return s.maxLP
}

// GetMaxLogPosteriorParameters returns the parameter values
// corresponding to the maximum log-posterior.
func (s *BaseSampler) GetMaxLogPosteriorParameters() []float64 {
	return s.maxLPPar
}

// Trajectory returns the recorded chain. The slice is append-only
// during the run; afterwards the caller owns it.
func (s *BaseSampler) Trajectory() []SweepRecord {
	return s.trajectory
}

// SaveStart evaluates the model at the starting point and stores the
// initial record of the trajectory.
func (s *BaseSampler) SaveStart(sweeps int) {
	s.startTime = time.Now()
	lik := s.Likelihood()
	s.calls++
	if !lik.Valid() {
		log.Fatal("Initial point is outside of the density support")
	}
	s.lp = lik.Value() + s.parameters.LogPrior()
	s.updateMax()
	np := len(s.parameters)
	s.trajectory = make([]SweepRecord, 0, sweeps+1)
	s.trajectory = append(s.trajectory, SweepRecord{
		Sweep:        0,
		Values:       s.parameters.Values(nil),
		Proposed:     nanSlice(np),
		Ratios:       nanSlice(np),
		Accepted:     make([]bool, np),
		LogPosterior: s.lp,
	})
	if s.ckp != nil {
		s.ckp.SetNow()
	}
}

// decide draws the acceptance decision for the currently proposed
// parameter values. The uniform draw is consumed even when the
// proposal is outside the density support, so the per-sweep draw
// sequence does not depend on the decisions.
func (s *BaseSampler) decide(lik LogDensity) (newLP, ratio float64, accept bool) {
	u := s.rng.Float64()
	if !lik.Valid() {
		return 0, math.NaN(), false
	}
	newLP = lik.Value() + s.parameters.LogPrior()
	ratio = math.Exp(newLP - s.lp)
	return newLP, ratio, u < ratio
}

// updateMax updates the maximum log-posterior value and the
// corresponding parameter values.
func (s *BaseSampler) updateMax() {
	if s.lp > s.maxLP {
		s.maxLP = s.lp
		s.maxLPPar = s.parameters.Values(s.maxLPPar)
	}
}

// stopRequested returns true if a signal was received.
func (s *BaseSampler) stopRequested() bool {
	select {
	case sig := <-s.sig:
		log.Warningf("Received signal %v, exiting", sig)
		return true
	default:
	}
	return false
}

// PrintHeader prints the trajectory header.
func (s *BaseSampler) PrintHeader(pars FloatParameters) {
	if s.Quiet || s.output == nil {
		return
	}
	fmt.Fprintf(s.output, "sweep\tlogpost\t%s\n", pars.NamesString())
}

// PrintLine prints a trajectory line if the current sweep number is a
// multiple of the period.
func (s *BaseSampler) PrintLine(pars FloatParameters, lp float64, period int) {
	if s.Quiet || s.output == nil || period <= 0 {
		return
	}
	if s.i%period != 0 {
		return
	}
	s.lastReported = s.i
	fmt.Fprintf(s.output, "%d\t%s\t%s\n", s.i,
		strconv.FormatFloat(lp, 'f', 6, 64), pars.ValuesString())
}

// PrintFinal reports the final parameter values using the logging
// system.
func (s *BaseSampler) PrintFinal(pars FloatParameters) {
	for _, par := range pars {
		log.Noticef("%s=%v", par.Name(), par.Get())
	}
}

// PrintResults reports the maximum found and the final parameter
// values.
func (s *BaseSampler) PrintResults() {
	log.Noticef("Maximum log-posterior: %v", s.maxLP)
	log.Infof("Parameter  names: %v", s.parameters.NamesString())
	log.Infof("Parameter values: %v", s.parameters.ValuesString())
	s.PrintFinal(s.parameters)
}

// SaveCheckpoint stores the sampler state in the checkpoint storage.
// Non-final saves are rate-limited by the checkpoint settings.
func (s *BaseSampler) SaveCheckpoint(final bool) {
	if s.ckp == nil {
		return
	}
	if !final && !s.ckp.Old() {
		return
	}
	s.ckp.Save(&checkpoint.CheckpointData{
		Parameters:   s.parameters.ValuesMap(),
		LogPosterior: s.lp,
		Sweep:        s.i,
		Final:        final,
	})
}

// saveDeltaT stores the run time for the summary.
func (s *BaseSampler) saveDeltaT() {
	s.deltaT = time.Since(s.startTime).Seconds()
}

// baseSamplerSummary stores the run information common for all the
// samplers and optimizers.
type baseSamplerSummary struct {
	// MaxLogPosterior is the maximum log-posterior value found.
	MaxLogPosterior float64 `json:"maxLogPosterior"`
	// MaxLogPosteriorParameters stores the parameter values
	// corresponding to the maximum.
	MaxLogPosteriorParameters map[string]float64 `json:"maxLogPosteriorParameters"`
	// FinalParameters stores the parameter values in the end of the
	// run.
	FinalParameters map[string]float64 `json:"finalParameters"`
	// DensityCalls is the number of log-density evaluations.
	DensityCalls int `json:"densityCalls"`
	// Time is the run time in seconds.
	Time float64 `json:"time"`
	// Status stores method-specific status information.
	Status interface{} `json:"status,omitempty"`
}

// Summary returns the run summary for JSON output.
func (s *BaseSampler) Summary() interface{} {
	maxPar := make(map[string]float64, len(s.parameters))
	for i, par := range s.parameters {
		if i < len(s.maxLPPar) {
			maxPar[par.Name()] = s.maxLPPar[i]
		}
	}
	return baseSamplerSummary{
		MaxLogPosterior:           s.maxLP,
		MaxLogPosteriorParameters: maxPar,
		FinalParameters:           s.parameters.ValuesMap(),
		DensityCalls:              s.calls,
		Time:                      s.deltaT,
	}
}
