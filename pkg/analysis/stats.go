package analysis

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sample standard deviation (n-1 denominator)
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sqDiff float64
	for _, v := range values {
		sqDiff += (v - m) * (v - m)
	}
	return math.Sqrt(sqDiff / float64(len(values)-1))
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// linearFit returns the OLS slope, intercept and coefficient of
// determination of y against x. ok is false when there are fewer than two
// points or x carries no variance.
func linearFit(x, y []float64) (slope, intercept, rSquared float64, ok bool) {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0, 0, 0, false
	}

	meanX := mean(x)
	meanY := mean(y)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx == 0 {
		return 0, 0, 0, false
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		predicted := intercept + slope*x[i]
		ssRes += (y[i] - predicted) * (y[i] - predicted)
		dy := y[i] - meanY
		ssTot += dy * dy
	}
	if ssTot == 0 {
		// flat series: the fit explains everything there is to explain
		return slope, intercept, 1, true
	}
	return slope, intercept, 1 - ssRes/ssTot, true
}
