package inbreed

import (
	"math"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/gomcmc/checkpoint"
	"bitbucket.org/Davydov/gomcmc/mcmc"
)

func TestSamplerCheckpoint(tst *testing.T) {
	fn := filepath.Join(tst.TempDir(), "checkpoint.db")
	db, err := bolt.Open(fn, 0644, nil)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	defer db.Close()

	m, err := NewModel(testCounts, DefaultPriors(), 0.2, 0.5, 0.07, 0.07)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	chain := mcmc.NewJoint()
	chain.Quiet = true
	chain.SetOptimizable(m)
	chain.SetSeed(1)
	ckp := checkpoint.NewCheckpointIO(db, []byte("inbreed"), 30)
	chain.SetCheckpointIO(ckp)
	chain.Run(100)

	data, err := ckp.Load()
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if data == nil {
		tst.Fatal("No checkpoint after the run")
	}
	if !data.Final {
		tst.Error("Expected a final checkpoint")
	}
	if data.Sweep != 100 {
		tst.Error("Expected sweep 100, got", data.Sweep)
	}
	f, p := m.GetParameters()
	if data.Parameters["f"] != f || data.Parameters["p"] != p {
		tst.Errorf("Checkpoint parameters %v differ from the model state (%v, %v)", data.Parameters, f, p)
	}
	if math.Abs(data.LogPosterior-chain.GetLogPosterior()) > smallDiff {
		tst.Error("Expected ", chain.GetLogPosterior(), ", got", data.LogPosterior)
	}

	// restarting from the stored parameters reproduces the
	// log-posterior
	m2, err := NewModel(testCounts, DefaultPriors(), 0.2, 0.5, 0.07, 0.07)
	if err != nil {
		tst.Fatal("Error: ", err)
	}
	if err := m2.GetFloatParameters().SetFromMap(data.Parameters); err != nil {
		tst.Fatal("Error: ", err)
	}
	lp := m2.Likelihood().Value() + m2.GetFloatParameters().LogPrior()
	tst.Log("lp=", lp, ", Ref=", data.LogPosterior, ", diff=", math.Abs(lp-data.LogPosterior))
	if math.Abs(lp-data.LogPosterior) > smallDiff {
		tst.Error("Expected ", data.LogPosterior, ", got", lp)
	}
}
