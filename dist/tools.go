// Package dist implements functions for the beta and normal distributions.
package dist

import (
	"math"

	"github.com/gonum/mathext"
)

// QuantileNormal returns quantile for normal distribution.
func QuantileNormal(prob float64) float64 {
	return mathext.NormalQuantile(prob)
}

// LnBeta returns log of Beta function.
func LnBeta(p, q float64) float64 {
	lgp, _ := math.Lgamma(p)
	lgq, _ := math.Lgamma(q)
	lgpq, _ := math.Lgamma(p + q)
	return lgp + lgq - lgpq
}

/*

CDFBeta returns distribution function of the standard form of the beta
distribution, that is, the incomplete beta ratio I_x(p,q).

This is also known as the incomplete beta function ratio I_x(p, q)

*/
func CDFBeta(x, pin, qin float64) float64 {
	return mathext.RegIncBeta(pin, qin, x)
}

/*
QuantileBeta calculates the Quantile of the beta distribution
*/
func QuantileBeta(prob, p, q float64) float64 {
	return mathext.InvRegIncBeta(p, q, prob)
}

// PDFBeta returns density of the beta distribution, including the
// normalizing constant.
func PDFBeta(x, p, q float64) float64 {
	if x <= 0 || x >= 1 {
		return 0
	}
	return math.Exp((p-1)*math.Log(x) + (q-1)*math.Log(1-x) - LnBeta(p, q))
}
