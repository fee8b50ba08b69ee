package mcmc

import (
	"fmt"
	"math/rand"
	"time"
)

// TargetWeights is a vector of positive unnormalized weights defining
// the target distribution of the random walk; weight i corresponds to
// state left+i.
type TargetWeights struct {
	w []float64
}

// NewTargetWeights creates target weights from a vector. All the
// weights must be strictly positive.
func NewTargetWeights(weights []float64) (TargetWeights, error) {
	if len(weights) == 0 {
		return TargetWeights{}, fmt.Errorf("Empty target weights")
	}
	w := make([]float64, len(weights))
	for i, v := range weights {
		if !(v > 0) {
			return TargetWeights{}, fmt.Errorf("Target weight #%d is not positive (%v)", i+1, v)
		}
		w[i] = v
	}
	return TargetWeights{w: w}, nil
}

// UniformWeights creates k equal target weights.
func UniformWeights(k int) TargetWeights {
	if k < 1 {
		panic("number of states should be at least 1")
	}
	w := make([]float64, k)
	for i := range w {
		w[i] = 1
	}
	return TargetWeights{w: w}
}

// K returns the number of states.
func (t TargetWeights) K() int {
	return len(t.w)
}

// Weight returns the weight of a state; states are numbered from 1 to
// K.
func (t TargetWeights) Weight(state int) (float64, error) {
	if state < 1 || state > len(t.w) {
		return 0, fmt.Errorf("State %d outside [1, %d]", state, len(t.w))
	}
	return t.w[state-1], nil
}

// weight returns the weight for a zero-based state index.
func (t TargetWeights) weight(i int) float64 {
	return t.w[i]
}

// Normalized returns the weights normalized to sum to one.
func (t TargetWeights) Normalized() []float64 {
	sum := 0.0
	for _, v := range t.w {
		sum += v
	}
	res := make([]float64, len(t.w))
	for i, v := range t.w {
		res[i] = v / sum
	}
	return res
}

// Walk is a Metropolis random walk over the integer states of
// [left, right]. Every step proposes a move to a neighbour state; a
// move to a state with an equal or larger target weight is always
// accepted, a move to a smaller weight is accepted with the
// probability given by the weight ratio. A proposal outside of the
// boundaries is rejected without consuming an acceptance draw, so the
// walk stays in place.
type Walk struct {
	target      TargetWeights
	left, right int
	state       int
	rng         *rand.Rand

	states      []int
	visits      []int
	steps       int
	accepted    int
	outOfBounds int
}

// NewWalk creates a new walk at an initial state.
func NewWalk(init int, target TargetWeights, left, right int) (*Walk, error) {
	if left > right {
		return nil, fmt.Errorf("Left boundary %d is larger than right boundary %d", left, right)
	}
	if target.K() != right-left+1 {
		return nil, fmt.Errorf("Got %d target weights for %d states", target.K(), right-left+1)
	}
	if init < left || init > right {
		return nil, fmt.Errorf("Initial state %d outside [%d, %d]", init, left, right)
	}
	return &Walk{
		target: target,
		left:   left,
		right:  right,
		state:  init,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		visits: make([]int, right-left+1),
	}, nil
}

// SetSeed initializes the random number source with a seed. Two walks
// with the same seed and the same settings produce identical state
// sequences.
func (w *Walk) SetSeed(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
}

// Run makes a given number of steps. Repeated calls continue the same
// chain.
func (w *Walk) Run(steps int) {
	if w.states == nil {
		w.states = make([]int, 0, steps+1)
		w.states = append(w.states, w.state)
		w.visits[w.state-w.left]++
	}
	for i := 0; i < steps; i++ {
		dir := 1
		if w.rng.Intn(2) == 0 {
			dir = -1
		}
		proposed := w.state + dir
		if proposed < w.left || proposed > w.right {
			w.outOfBounds++
		} else {
			wp := w.target.weight(proposed - w.left)
			wc := w.target.weight(w.state - w.left)
			// the acceptance draw happens only for a downhill move
			if wp >= wc || w.rng.Float64() < wp/wc {
				w.state = proposed
				w.accepted++
			}
		}
		w.states = append(w.states, w.state)
		w.visits[w.state-w.left]++
	}
	w.steps += steps
	if w.steps > 0 {
		log.Infof("Walk acceptance rate %.2f%% (%d out-of-bounds proposals)",
			100*float64(w.accepted)/float64(w.steps), w.outOfBounds)
	}
}

// State returns the current state.
func (w *Walk) State() int {
	return w.state
}

// Left returns the left boundary of the state space; state i of
// Frequencies corresponds to the state left+i.
func (w *Walk) Left() int {
	return w.left
}

// States returns the visited states including the initial one. The
// slice is append-only during the run; afterwards the caller owns it.
func (w *Walk) States() []int {
	return w.states
}

// Frequencies returns the empirical state frequencies of the chain.
func (w *Walk) Frequencies() []float64 {
	res := make([]float64, len(w.visits))
	total := 0
	for _, v := range w.visits {
		total += v
	}
	if total == 0 {
		return res
	}
	for i, v := range w.visits {
		res[i] = float64(v) / float64(total)
	}
	return res
}

// walkSummary stores the walk summary for JSON output.
type walkSummary struct {
	// Steps is the number of steps made.
	Steps int `json:"steps"`
	// FinalState is the state after the last step.
	FinalState int `json:"finalState"`
	// AcceptanceRate is the fraction of accepted proposals.
	AcceptanceRate float64 `json:"acceptanceRate"`
	// OutOfBoundsProposals is the number of proposals outside of the
	// boundaries.
	OutOfBoundsProposals int `json:"outOfBoundsProposals"`
	// Frequencies are the empirical state frequencies.
	Frequencies []float64 `json:"frequencies"`
}

// Summary returns the run summary for JSON output.
func (w *Walk) Summary() interface{} {
	s := walkSummary{
		Steps:                w.steps,
		FinalState:           w.state,
		OutOfBoundsProposals: w.outOfBounds,
		Frequencies:          w.Frequencies(),
	}
	if w.steps > 0 {
		s.AcceptanceRate = float64(w.accepted) / float64(w.steps)
	}
	return s
}

// BiasedRandomWalk runs a seeded walk over [left, right] and returns
// the visited states including the initial one.
func BiasedRandomWalk(init, steps int, weights []float64, left, right int, seed int64) ([]int, error) {
	if steps < 0 {
		return nil, fmt.Errorf("Negative number of steps: %d", steps)
	}
	target, err := NewTargetWeights(weights)
	if err != nil {
		return nil, err
	}
	w, err := NewWalk(init, target, left, right)
	if err != nil {
		return nil, err
	}
	w.SetSeed(seed)
	w.Run(steps)
	return w.States(), nil
}

// RandomWalk runs a seeded unbiased walk over [left, right]; it is
// equivalent to BiasedRandomWalk with equal weights.
func RandomWalk(init, steps, left, right int, seed int64) ([]int, error) {
	if left > right {
		return nil, fmt.Errorf("Left boundary %d is larger than right boundary %d", left, right)
	}
	return BiasedRandomWalk(init, steps, UniformWeights(right-left+1).w, left, right, seed)
}
