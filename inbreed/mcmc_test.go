package inbreed

import (
	"testing"

	"bitbucket.org/Davydov/gomcmc/mcmc"
)

func benchmarkSampler(b *testing.B, newSampler func() mcmc.Sampler) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := NewModel(testCounts, DefaultPriors(), 0.2, 0.5, 0.07, 0.07)
		if err != nil {
			b.Error("Error: ", err)
		}
		s := newSampler()
		s.SetOptimizable(m)
		s.SetSeed(1)
		s.Run(100)
	}
}

func BenchmarkJoint(b *testing.B) {
	benchmarkSampler(b, func() mcmc.Sampler {
		s := mcmc.NewJoint()
		s.Quiet = true
		return s
	})
}

func BenchmarkComponentwise(b *testing.B) {
	benchmarkSampler(b, func() mcmc.Sampler {
		s := mcmc.NewComponentwise()
		s.Quiet = true
		return s
	})
}
