package main

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// summary describes the distribution of generated values.
type summary struct {
	Min, Max     float64
	Mean, StdDev float64
}

func summarize(values []float32) summary {
	if len(values) == 0 {
		return summary{}
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return summary{
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   mean,
		StdDev: std,
	}
}
