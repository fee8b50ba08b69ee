package main

import (
	"os"
	"syscall"
	"time"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/gomcmc/checkpoint"
)

// checkpointKey is the database key for the sampler state.
var checkpointKey = []byte("inbreed")

// runInbreed samples the posterior of the inbreeding model given the
// observed genotype counts.
func runInbreed() (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{}

	ms := newModelSettings()

	// open the checkpoint storage; a saved state overrides the
	// starting point
	var ckp *checkpoint.CheckpointIO
	var start map[string]float64
	if *checkpointF != "" {
		db, err := bolt.Open(*checkpointF, 0644, nil)
		if err != nil {
			log.Fatal("Error opening checkpoint file:", err)
		}
		defer db.Close()
		ckp = checkpoint.NewCheckpointIO(db, checkpointKey, *checkpointSec)
		data, err := ckp.Load()
		if err != nil {
			log.Fatal("Error reading checkpoint:", err)
		}
		if data != nil {
			start = data.Parameters
		}
	}

	m, err := ms.createInitialized(start)
	if err != nil {
		log.Fatal(err)
	}

	trajF := os.Stdout

	if *outF != "" {
		trajF, err = os.Create(*outF)
		if err != nil {
			log.Fatal("Error creating trajectory file:", err)
		}
		defer trajF.Close()
	}

	ss := newSamplerSettings(m, trajF, ckp)
	smpl, err := ss.create()
	if err != nil {
		log.Fatal(err)
	}

	smpl.WatchSignals(os.Interrupt, syscall.SIGUSR2)

	smpl.Run(ss.sweeps)
	summary.Sampler = smpl.Summary()

	smpl.PrintResults()
	summary.Model = m.Summary()

	endTime := time.Now()

	deltaT := endTime.Sub(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}
