// Plotpost plots a posterior histogram from a sampling trajectory
// with the beta prior density on top.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/gomcmc/dist"
)

// readColumn reads a column of a tab-separated trajectory file by the
// header name, skipping the first burn lines.
func readColumn(fn, name string, burn int) ([]float64, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty file %s", fn)
	}
	col := -1
	for i, field := range strings.Split(scanner.Text(), "\t") {
		if field == name {
			col = i
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no column %s in %s", name, fn)
	}

	var values []float64
	line := 0
	for scanner.Scan() {
		line++
		if line <= burn {
			continue
		}
		fields := strings.Split(scanner.Text(), "\t")
		if col >= len(fields) {
			return nil, fmt.Errorf("line %d is too short", line)
		}
		v, err := strconv.ParseFloat(fields[col], 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, scanner.Err()
}

func main() {
	in := flag.String("in", "", "trajectory file")
	col := flag.String("col", "f", "column to plot")
	pf := flag.Float64("p", 1, "p of the beta prior")
	qf := flag.Float64("q", 1, "q of the beta prior")
	bins := flag.Int("bins", 50, "number of histogram bins")
	burn := flag.Int("burn", 0, "number of trajectory lines to discard")
	out := flag.String("o", "posterior.png", "output file")
	flag.Parse()

	values, err := readColumn(*in, *col, *burn)
	if err != nil {
		panic(err)
	}

	p, err := plot.New()
	if err != nil {
		panic(err)
	}
	p.X.Label.Text = *col
	p.X.Min = 0
	p.X.Max = 1

	h, err := plotter.NewHist(plotter.Values(values), *bins)
	if err != nil {
		panic(err)
	}
	h.Normalize(1)
	h.FillColor = plotutil.Color(0)
	p.Add(h)

	prior := plotter.NewFunction(func(x float64) float64 {
		return dist.PDFBeta(x, *pf, *qf)
	})
	prior.Samples = 200
	prior.Color = plotutil.Color(1)
	p.Add(prior)
	p.Legend.Add("prior", prior)
	p.Legend.Top = true

	if err := p.Save(4*vg.Inch, 4*vg.Inch, *out); err != nil {
		panic(err)
	}
}
