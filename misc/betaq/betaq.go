// Betaq prints quantiles of a beta distribution, e.g. for choosing
// prior hyperparameters.
package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/Davydov/gomcmc/dist"
)

func main() {
	p := flag.Float64("p", 1, "p")
	q := flag.Float64("q", 1, "q")
	probs := flag.String("probs", "0.025,0.25,0.5,0.75,0.975", "comma-separated probabilities")
	x := flag.Float64("x", -1, "additionally print P(X<=x)")
	flag.Parse()

	for _, field := range strings.Split(*probs, ",") {
		prob, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%g\t%g\n", prob, dist.QuantileBeta(prob, *p, *q))
	}
	if *x >= 0 {
		fmt.Printf("P(X<=%g)=%g\n", *x, dist.CDFBeta(*x, *p, *q))
	}
}
