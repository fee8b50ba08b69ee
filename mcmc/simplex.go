package mcmc

import (
	"math"
	"time"
)

const (
	// dsFTol is the relative tolerance of the simplex convergence
	// check.
	dsFTol = 1e-10
	// dsRestartDiff is the maximum log-posterior change between two
	// converged simplexes to stop restarting.
	dsRestartDiff = 1e-6
	// dsDelta is the initial simplex size.
	dsDelta = 0.1
)

// DS is a maximum a posteriori optimizer using the Nelder-Mead
// downhill simplex method. After convergence the simplex is recreated
// at the best point; the optimization stops when a restart does not
// improve the maximum.
type DS struct {
	BaseSampler
	delta  float64
	ftol   float64
	repeat bool
	oldLP  float64
	points []Optimizable
	psum   []float64
	pars   []FloatParameters
	lps    []float64
	newOpt Optimizable
	newPar FloatParameters
}

// NewDS creates a new downhill simplex optimizer.
func NewDS() *DS {
	return &DS{
		BaseSampler: newBaseSampler(),
		delta:       dsDelta,
		ftol:        dsFTol,
	}
}

// posteriorOf evaluates the log-posterior of a simplex point; a point
// outside the parameter ranges or the density support gets -Inf.
func (ds *DS) posteriorOf(opt Optimizable, pars FloatParameters) float64 {
	if !pars.InRange() {
		return math.Inf(-1)
	}
	lik := opt.Likelihood()
	ds.calls++
	if !lik.Valid() {
		return math.Inf(-1)
	}
	return lik.Value() + pars.LogPrior()
}

// createSimplex creates ndim+1 model copies; every copy but the first
// has one parameter shifted by delta.
func (ds *DS) createSimplex(opt Optimizable, delta float64) {
	pars := opt.GetFloatParameters()
	ds.points = make([]Optimizable, len(pars)+1)
	ds.pars = make([]FloatParameters, len(ds.points))
	ds.lps = make([]float64, len(ds.points))
	ds.points[0] = opt
	ds.pars[0] = pars
	for i := 1; i < len(ds.points); i++ {
		point := opt.Copy()
		ds.points[i] = point
		ds.pars[i] = point.GetFloatParameters()
	}
	for i := 0; i < len(pars); i++ {
		par := ds.pars[i+1][i]
		par.Set(par.Get() + delta)
	}
	for i := range ds.points {
		ds.lps[i] = ds.posteriorOf(ds.points[i], ds.pars[i])
	}
}

// SetOptimizable sets a model to optimize.
func (ds *DS) SetOptimizable(opt Optimizable) {
	ds.BaseSampler.SetOptimizable(opt)
	ds.createSimplex(opt, ds.delta)
}

// amotry extrapolates by the factor fac through the face of the
// simplex across from the worst point, tries it, and replaces the
// worst point if the new point is better.
func (ds *DS) amotry(iworst int, fac float64) float64 {
	if ds.newOpt == nil {
		ds.newOpt = ds.points[0].Copy()
		ds.newPar = ds.newOpt.GetFloatParameters()
	}
	ds.calcPsum()
	ndim := len(ds.newPar)
	fac1 := (1 - fac) / float64(ndim)
	fac2 := fac1 - fac
	for j := 0; j < ndim; j++ {
		ds.newPar[j].Set(ds.psum[j]*fac1 - ds.pars[iworst][j].Get()*fac2)
	}
	lp := ds.posteriorOf(ds.newOpt, ds.newPar)
	if lp > ds.lps[iworst] {
		ds.points[iworst], ds.newOpt = ds.newOpt, ds.points[iworst]
		ds.pars[iworst], ds.newPar = ds.newPar, ds.pars[iworst]
		ds.lps[iworst] = lp
	}
	return lp
}

// calcPsum computes per-parameter sums over the simplex points.
func (ds *DS) calcPsum() {
	ds.psum = make([]float64, len(ds.pars[0]))
	for i := range ds.psum {
		for _, pars := range ds.pars {
			ds.psum[i] += pars[i].Get()
		}
	}
}

// Run starts the optimization.
func (ds *DS) Run(iterations int) {
	ds.startTime = time.Now()
	// Worst, next-worst and best points of the simplex
	var iworst, inworst, ibest int
	var lpWorst, lpNworst, lpBest float64
	ds.PrintHeader(ds.pars[0])
Iter:
	for ds.i = 1; ds.i <= iterations; ds.i++ {
		if ds.lps[0] < ds.lps[1] {
			iworst = 0
			inworst = 1
			ibest = 1
		} else {
			iworst = 1
			inworst = 0
			ibest = 0
		}
		lpWorst = ds.lps[iworst]
		lpNworst = ds.lps[inworst]
		lpBest = ds.lps[ibest]
		for i := 2; i < len(ds.points); i++ {
			if ds.lps[i] >= lpBest {
				lpBest = ds.lps[i]
				ibest = i
			}
			if ds.lps[i] < lpWorst {
				lpNworst = lpWorst
				inworst = iworst
				lpWorst = ds.lps[i]
				iworst = i
			} else if ds.lps[i] < lpNworst {
				lpNworst = ds.lps[i]
				inworst = i
			}
		}
		if lpBest > ds.maxLP {
			ds.maxLP = lpBest
			ds.maxLPPar = ds.pars[ibest].Values(ds.maxLPPar)
		}
		ds.lp = lpBest
		if ds.repPeriod > 0 && ds.i%ds.repPeriod == 0 {
			log.Debugf("%d: logpost=%f (%f)", ds.i, lpBest, lpBest-lpWorst)
			ds.PrintLine(ds.pars[ibest], lpBest, 1)
		}
		rtol := 2 * math.Abs(lpBest-lpWorst) / (math.Abs(lpWorst) + math.Abs(lpBest) + dsFTol)
		if rtol < ds.ftol {
			if ds.repeat && math.Abs(ds.oldLP-lpBest) < dsRestartDiff {
				break Iter
			}
			ds.repeat = true
			ds.oldLP = lpBest
			log.Infof("converged. retrying")
			ds.createSimplex(ds.points[ibest], ds.delta)
			continue
		}
		lp := ds.amotry(iworst, -1)
		switch {
		case lp >= lpBest:
			ds.amotry(iworst, 2)
		case lp <= lpNworst:
			lpSave := lpWorst
			lp := ds.amotry(iworst, 0.5)
			if lp <= lpSave {
				// contract the simplex towards the best point
				for i, point := range ds.points {
					if i == ibest {
						continue
					}
					for j := range ds.pars[i] {
						ds.pars[i][j].Set(0.5 * (ds.pars[i][j].Get() + ds.pars[ibest][j].Get()))
					}
					ds.lps[i] = ds.posteriorOf(point, ds.pars[i])
				}
			}
		}
		if ds.stopRequested() {
			break Iter
		}
	}
	if ds.i > iterations {
		log.Warningf("Iterations exceeded (%d)", iterations)
	}

	ds.BaseSampler.parameters = ds.pars[ibest]
	ds.lp = lpBest
	ds.SaveCheckpoint(true)
	ds.saveDeltaT()
	log.Info("Finished downhill simplex")
	log.Infof("Log-density calls: %v", ds.calls)
}
