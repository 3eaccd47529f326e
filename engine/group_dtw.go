package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// dtwDistance computes the Dynamic Time Warping distance between two
// equal-or-unequal-length numeric sequences using absolute difference as
// the step cost and a full (len(v1)+1) x (len(v2)+1) dynamic-programming
// tableau (spec.md §4.9).
//
// spec.md §9 flags that the original routine left D[0][0], D[i][0], and
// D[0][j] uninitialized; this implementation sets them explicitly:
// D[0][0] = 0, D[i][0] = D[0][j] = +Inf for i, j > 0.
func dtwDistance(v1, v2 []float64) float64 {
	n, m := len(v1), len(v2)
	d := make([][]float64, n+1)
	for i := range d {
		d[i] = make([]float64, m+1)
	}

	d[0][0] = 0
	for i := 1; i <= n; i++ {
		d[i][0] = math.Inf(1)
	}
	for j := 1; j <= m; j++ {
		d[0][j] = math.Inf(1)
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := math.Abs(v1[i-1] - v2[j-1])
			d[i][j] = cost + min3(d[i-1][j], d[i][j-1], d[i-1][j-1])
		}
	}

	return d[n][m]
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// minMaxNormalize returns a copy of v rescaled to [0, 1]. A constant
// vector (max == min) normalizes to all zeros.
func minMaxNormalize(v []float64) []float64 {
	if len(v) == 0 {
		return v
	}
	lo, hi := floats.Min(v), floats.Max(v)
	out := make([]float64, len(v))
	span := hi - lo
	for i, x := range v {
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (x - lo) / span
	}
	return out
}

// toFloats converts an integer fingerprint to the float64 vector DTW
// operates on.
func toFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
