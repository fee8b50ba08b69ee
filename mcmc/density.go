package mcmc

import "math"

// LogDensity is a value of an unnormalized log-density. It keeps an
// explicit domain tag, so acceptance logic can branch on it instead
// of relying on NaN propagation through arithmetics.
type LogDensity struct {
	value float64
	valid bool
}

// Valid creates a log-density value for a point inside the density
// support.
func Valid(value float64) LogDensity {
	return LogDensity{value: value, valid: true}
}

// OutOfDomain creates a log-density value for a point outside the
// density support.
func OutOfDomain() LogDensity {
	return LogDensity{}
}

// Valid returns true if the point was inside the density support.
func (d LogDensity) Valid() bool {
	return d.valid
}

// Value returns the log-density value; for an out-of-domain point the
// value is NaN.
func (d LogDensity) Value() float64 {
	if !d.valid {
		return math.NaN()
	}
	return d.value
}
