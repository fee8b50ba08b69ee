package mcmc

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/op/go-logging"
)

const (
	// smallDiff is a threshold for value comparisons
	smallDiff = 1e-6
	// optDiff is a threshold for optimizer results
	optDiff = 1e-3
)

func init() {
	// disable logging for tests
	logging.SetLevel(logging.WARNING, "mcmc")
}

// normModel is a normal distribution with unknown mean and standard
// deviation; it serves as a simple target for the sampler tests.
type normModel struct {
	data     []float64
	mean, sd float64

	parameters FloatParameters
	as         *AdaptiveSettings
}

// normTestData simulates a sample from a normal distribution.
func normTestData(n int, mean, sd float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()*sd + mean
	}
	return data
}

func newNormModel(data []float64, mean, sd float64) *normModel {
	m := &normModel{
		data: data,
		mean: mean,
		sd:   sd,
	}
	m.setupParameters()
	return m
}

func (m *normModel) setupParameters() {
	m.parameters = nil
	var fpg FloatParameterGenerator
	if m.as != nil {
		fpg = m.as.ParameterGenerator
	} else {
		fpg = BasicFloatParameterGenerator
	}

	mean := fpg(&m.mean, "mean")
	mean.SetMin(-100)
	mean.SetMax(100)
	mean.SetPriorFunc(UniformPrior(-100, 100, false, false))
	mean.SetProposalFunc(NormalProposal(0.3))
	m.parameters.Append(mean)

	sd := fpg(&m.sd, "sd")
	sd.SetMin(0)
	sd.SetMax(100)
	sd.SetPriorFunc(UniformPrior(0, 100, false, false))
	sd.SetProposalFunc(NormalProposal(0.3))
	m.parameters.Append(sd)
}

func (m *normModel) GetFloatParameters() FloatParameters {
	return m.parameters
}

func (m *normModel) setAdaptive(as *AdaptiveSettings) {
	m.as = as
	m.setupParameters()
}

func (m *normModel) Copy() Optimizable {
	newM := &normModel{
		data: m.data,
		mean: m.mean,
		sd:   m.sd,
		as:   m.as,
	}
	newM.setupParameters()
	return newM
}

func (m *normModel) Likelihood() LogDensity {
	if !(m.sd > 0) {
		return OutOfDomain()
	}
	res := -float64(len(m.data)) * (math.Log(m.sd) + math.Log(2*math.Pi)/2)
	for _, x := range m.data {
		d := x - m.mean
		res -= d * d / (2 * m.sd * m.sd)
	}
	return Valid(res)
}

// mleNorm returns the maximum likelihood estimates for normModel.
func mleNorm(data []float64) (mean, sd float64) {
	for _, x := range data {
		mean += x
	}
	mean /= float64(len(data))
	v := 0.0
	for _, x := range data {
		v += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(v / float64(len(data)))
}

// checkTrajectory verifies the invariants of a recorded chain:
// sequential sweep numbers, accepted proposals becoming the new
// values, rejected proposals keeping the previous values, and
// out-of-domain proposals never accepted.
func checkTrajectory(tst *testing.T, traj []SweepRecord, np int) {
	for i, rec := range traj {
		if rec.Sweep != i {
			tst.Fatalf("Expected sweep %d, got %d", i, rec.Sweep)
		}
		if len(rec.Values) != np || len(rec.Proposed) != np ||
			len(rec.Ratios) != np || len(rec.Accepted) != np {
			tst.Fatalf("Incorrect record size at sweep %d", i)
		}
		if i == 0 {
			continue
		}
		prev := traj[i-1]
		for j := 0; j < np; j++ {
			if rec.Accepted[j] {
				if rec.Values[j] != rec.Proposed[j] {
					tst.Fatalf("Accepted value differs from the proposed one (sweep %d, parameter %d)", i, j)
				}
			} else if rec.Values[j] != prev.Values[j] {
				tst.Fatalf("Rejected value differs from the previous one (sweep %d, parameter %d)", i, j)
			}
			if math.IsNaN(rec.Ratios[j]) && rec.Accepted[j] {
				tst.Fatalf("Accepted an out-of-domain proposal (sweep %d, parameter %d)", i, j)
			}
		}
	}
}

// equalFloats compares two vectors; NaN values are considered equal.
func equalFloats(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] && !(math.IsNaN(x[i]) && math.IsNaN(y[i])) {
			return false
		}
	}
	return true
}

// equalChains compares two chains; NaN values are considered equal.
func equalChains(a, b []SweepRecord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Sweep != b[i].Sweep ||
			a[i].LogPosterior != b[i].LogPosterior ||
			!reflect.DeepEqual(a[i].Accepted, b[i].Accepted) ||
			!equalFloats(a[i].Values, b[i].Values) ||
			!equalFloats(a[i].Proposed, b[i].Proposed) ||
			!equalFloats(a[i].Ratios, b[i].Ratios) {
			return false
		}
	}
	return true
}

func TestJointTrajectory(tst *testing.T) {
	m := newNormModel(normTestData(50, 1, 2, 1), 0.5, 1)
	chain := NewJoint()
	chain.Quiet = true
	chain.SetOptimizable(m)
	chain.SetSeed(1)
	chain.Run(500)

	traj := chain.Trajectory()
	if len(traj) != 501 {
		tst.Fatalf("Expected 501 records, got %d", len(traj))
	}
	first := traj[0]
	if first.Sweep != 0 || first.Values[0] != 0.5 || first.Values[1] != 1 {
		tst.Error("Incorrect initial record:", first)
	}
	if !math.IsNaN(first.Proposed[0]) || !math.IsNaN(first.Ratios[0]) || first.Accepted[0] {
		tst.Error("Initial record should have no proposal")
	}
	checkTrajectory(tst, traj, 2)
	for _, rec := range traj[1:] {
		if rec.Accepted[0] != rec.Accepted[1] {
			tst.Fatal("Joint updates should accept both parameters together")
		}
		if rec.Ratios[0] != rec.Ratios[1] &&
			!(math.IsNaN(rec.Ratios[0]) && math.IsNaN(rec.Ratios[1])) {
			tst.Fatal("Joint updates should record a single ratio")
		}
	}
}

func TestComponentwiseTrajectory(tst *testing.T) {
	m := newNormModel(normTestData(50, 1, 2, 1), 0.5, 1)
	chain := NewComponentwise()
	chain.Quiet = true
	chain.SetOptimizable(m)
	chain.SetSeed(1)
	chain.Run(500)

	traj := chain.Trajectory()
	if len(traj) != 501 {
		tst.Fatalf("Expected 501 records, got %d", len(traj))
	}
	checkTrajectory(tst, traj, 2)

	// the per-parameter decisions should disagree at least once
	diff := false
	for _, rec := range traj[1:] {
		if rec.Accepted[0] != rec.Accepted[1] {
			diff = true
			break
		}
	}
	if !diff {
		tst.Error("All the componentwise decisions are identical")
	}
}

func TestSamplerDeterminism(tst *testing.T) {
	data := normTestData(50, 1, 2, 1)
	run := func(seed int64) []SweepRecord {
		m := newNormModel(data, 0.5, 1)
		chain := NewJoint()
		chain.Quiet = true
		chain.SetOptimizable(m)
		chain.SetSeed(seed)
		chain.Run(200)
		return chain.Trajectory()
	}
	t1 := run(5)
	t2 := run(5)
	if !equalChains(t1, t2) {
		tst.Error("Same seed produced different chains")
	}
	t3 := run(6)
	if equalChains(t1, t3) {
		tst.Error("Different seeds produced identical chains")
	}
}

func TestOutOfDomainRejected(tst *testing.T) {
	m := newNormModel(normTestData(50, 1, 2, 1), 0.5, 0.2)
	// wide steps often propose sd <= 0
	m.parameters[1].SetProposalFunc(NormalProposal(5))
	chain := NewJoint()
	chain.Quiet = true
	chain.SetOptimizable(m)
	chain.SetSeed(2)
	chain.Run(300)

	nan := 0
	for _, rec := range chain.Trajectory()[1:] {
		if math.IsNaN(rec.Ratios[1]) {
			nan++
			if rec.Accepted[1] {
				tst.Fatal("Accepted an out-of-domain proposal")
			}
		}
	}
	if nan == 0 {
		tst.Error("No out-of-domain proposals; the check is not exercised")
	}
	if !(m.sd > 0) {
		tst.Error("Chain left the density support, sd=", m.sd)
	}
}

func TestAdaptiveComponentwise(tst *testing.T) {
	m := newNormModel(normTestData(50, 1, 2, 1), 0.5, 1)
	as := NewAdaptiveSettings()
	as.Skip = 10
	as.MaxAdapt = 200
	m.setAdaptive(as)

	chain := NewComponentwise()
	chain.Quiet = true
	chain.SetOptimizable(m)
	chain.SetSeed(3)
	chain.Run(400)

	traj := chain.Trajectory()
	if len(traj) != 401 {
		tst.Fatalf("Expected 401 records, got %d", len(traj))
	}
	checkTrajectory(tst, traj, 2)
	if !m.parameters.InRange() {
		tst.Error("Final parameters are outside of the range")
	}
}

func TestLBFGSBNormModel(tst *testing.T) {
	data := normTestData(50, 1, 2, 1)
	m := newNormModel(data, 0.5, 1)
	opt := NewLBFGSB()
	opt.Quiet = true
	opt.SetOptimizable(m)
	opt.Run(100)

	mean, sd := mleNorm(data)
	tst.Log("mean=", m.mean, ", sd=", m.sd)
	if math.Abs(m.mean-mean) > optDiff || math.Abs(m.sd-sd) > optDiff {
		tst.Errorf("Expected mode (%v, %v), got (%v, %v)", mean, sd, m.mean, m.sd)
	}
}

func TestDSNormModel(tst *testing.T) {
	data := normTestData(50, 1, 2, 1)
	m := newNormModel(data, 0.5, 1)
	opt := NewDS()
	opt.Quiet = true
	opt.SetOptimizable(m)
	opt.Run(2000)

	mean, sd := mleNorm(data)
	pars := opt.GetMaxLogPosteriorParameters()
	tst.Log("mean=", pars[0], ", sd=", pars[1])
	if math.Abs(pars[0]-mean) > optDiff || math.Abs(pars[1]-sd) > optDiff {
		tst.Errorf("Expected mode (%v, %v), got (%v, %v)", mean, sd, pars[0], pars[1])
	}
}

func TestNoneNormModel(tst *testing.T) {
	data := normTestData(50, 1, 2, 1)
	m := newNormModel(data, 0.5, 1)
	want := m.Likelihood().Value() + m.GetFloatParameters().LogPrior()

	n := NewNone()
	n.Quiet = true
	n.SetOptimizable(m)
	n.Run(0)

	if n.GetLogPosterior() != want {
		tst.Error("Expected ", want, ", got", n.GetLogPosterior())
	}
	if n.GetMaxLogPosterior() != want {
		tst.Error("Expected maximum ", want, ", got", n.GetMaxLogPosterior())
	}
}
