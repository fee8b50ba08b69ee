package mcmc

import (
	"github.com/gonum/blas/blas64"
	"github.com/gonum/matrix/mat64"
)

const (
	// stationaryTol is the convergence tolerance of the power
	// iteration.
	stationaryTol = 1e-13
	// maxPowerIter limits the number of power iterations.
	maxPowerIter = 200000
)

// TransitionMatrix returns the exact transition kernel of the
// Metropolis walk over the target weights: row i holds the
// probabilities of moving from state i to every other state. Rejected
// and out-of-bounds proposals contribute to the diagonal.
func (t TargetWeights) TransitionMatrix() *mat64.Dense {
	k := t.K()
	p := mat64.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		stay := 1.0
		if i > 0 {
			pr := 0.5 * acceptProb(t.w[i-1], t.w[i])
			p.Set(i, i-1, pr)
			stay -= pr
		}
		if i < k-1 {
			pr := 0.5 * acceptProb(t.w[i+1], t.w[i])
			p.Set(i, i+1, pr)
			stay -= pr
		}
		p.Set(i, i, stay)
	}
	return p
}

// acceptProb returns the probability of accepting a move to a state
// with weight wp from a state with weight wc.
func acceptProb(wp, wc float64) float64 {
	if wp >= wc {
		return 1
	}
	return wp / wc
}

// StationaryDist computes the stationary distribution of a stochastic
// matrix by power iteration.
func StationaryDist(p *mat64.Dense) []float64 {
	n, _ := p.Dims()
	data := make([]float64, n)
	for i := range data {
		data[i] = 1 / float64(n)
	}
	cur := mat64.NewVector(n, data)
	next := mat64.NewVector(n, make([]float64, n))
	for iter := 0; iter < maxPowerIter; iter++ {
		next.MulVec(p.T(), cur)
		nv := next.RawVector()
		cv := cur.RawVector()
		blas64.Scal(n, 1/blas64.Asum(n, nv), nv)
		// cur <- cur - next; its L1 norm measures convergence
		blas64.Axpy(n, -1, nv, cv)
		diff := blas64.Asum(n, cv)
		copy(cv.Data, nv.Data)
		if diff < stationaryTol {
			break
		}
	}
	return data
}
