package mcmc

import (
	"math"

	lbfgsb "github.com/idavydov/go-lbfgsb"
)

// LBFGSB is a maximum a posteriori optimizer using the bounded
// limited-memory Broyden-Fletcher-Goldfarb-Shanno method with a
// numerical gradient.
type LBFGSB struct {
	BaseSampler
	dH   float64
	grad []float64
}

// NewLBFGSB creates a new LBFGSB optimizer.
func NewLBFGSB() *LBFGSB {
	return &LBFGSB{
		BaseSampler: newBaseSampler(),
		dH:          1e-6,
	}
}

// Logger reports the optimization progress.
func (l *LBFGSB) Logger(info *lbfgsb.OptimizationIterationInformation) {
	l.i = info.Iteration
	l.parameters.SetValues(info.X)
	l.PrintLine(l.parameters, -info.F, l.repPeriod)
	if l.stopRequested() {
		log.Fatal("Exiting on signal")
	}
}

// EvaluateFunction returns the negated log-posterior at a point; a
// point outside the parameter ranges or the density support gets
// +Inf.
func (l *LBFGSB) EvaluateFunction(x []float64) float64 {
	if !l.parameters.ValuesInRange(x) {
		return math.Inf(+1)
	}

	l.parameters.SetValues(x)

	lik := l.Likelihood()
	l.calls++
	if !lik.Valid() {
		return math.Inf(+1)
	}
	l.lp = lik.Value() + l.parameters.LogPrior()
	l.updateMax()
	return -l.lp
}

// EvaluateGradient computes the gradient of the negated log-posterior
// using central differences on model copies.
func (l *LBFGSB) EvaluateGradient(x []float64) (grad []float64) {
	if l.grad == nil {
		l.grad = make([]float64, len(x))
	}
	grad = l.grad
	for i := range x {
		no1 := l.Optimizable.Copy()
		par1 := no1.GetFloatParameters()
		par1.SetValues(x)
		par1[i].Set(x[i] - l.dH)
		lp1 := -l.posteriorAt(no1)

		no2 := no1.Copy()
		par2 := no2.GetFloatParameters()
		par2[i].Set(x[i] + l.dH)
		lp2 := -l.posteriorAt(no2)

		grad[i] = (lp2 - lp1) / 2 / l.dH
	}
	if l.stopRequested() {
		log.Fatal("Exiting on signal")
	}
	return
}

// posteriorAt evaluates the log-posterior of a model copy.
func (l *LBFGSB) posteriorAt(m Optimizable) float64 {
	lik := m.Likelihood()
	l.calls++
	if !lik.Valid() {
		return math.Inf(-1)
	}
	return lik.Value() + m.GetFloatParameters().LogPrior()
}

// Run starts the optimization. The iterations argument is ignored:
// the method stops on its own convergence criteria.
func (l *LBFGSB) Run(iterations int) {
	l.SaveStart(0)
	l.PrintHeader(l.parameters)
	bounds := make([][2]float64, len(l.parameters))

	for i, par := range l.parameters {
		bounds[i][0] = par.GetMin() + 1e-5
		bounds[i][1] = par.GetMax() - 1e-5
	}

	opt := new(lbfgsb.Lbfgsb)
	opt.SetApproximationSize(10)
	opt.SetFTolerance(1e-9)
	opt.SetGTolerance(1e-9)

	opt.SetBounds(bounds)
	opt.SetLogger(l.Logger)

	minimum, exitStatus := opt.Minimize(l, l.parameters.Values(nil))

	log.Info("Exit status: ", exitStatus)

	l.parameters.SetValues(minimum.X)
	l.lp = -minimum.F
	l.SaveCheckpoint(true)
	l.saveDeltaT()
	log.Info("Finished LBFGSB")
	log.Infof("Log-density calls: %v", l.calls)
}
