// Package rank provides rank transforms and correlation primitives.
package rank

import (
	"math"
	"sort"
)

// Midranks returns the 1-based ranks of vals under the total order cmp,
// with ties assigned the average of the ranks they jointly occupy.
func Midranks[T any](vals []T, cmp func(a, b T) int) []float64 {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return cmp(vals[idx[a]], vals[idx[b]]) < 0
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && cmp(vals[idx[j+1]], vals[idx[i]]) == 0 {
			j++
		}
		// Ranks i+1..j+1 collapse to their average.
		mid := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = mid
		}
		i = j + 1
	}
	return ranks
}

// Pearson returns the Pearson correlation coefficient of x and y.
//
// Returns NaN when either side has zero variance, matching the convention
// of common statistics packages. x and y must have equal length.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}

	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
