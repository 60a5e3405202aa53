// Package numutil holds small numeric helpers shared by the other packages.
package numutil

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmpty is returned when a helper needs at least one element.
	ErrEmpty = errors.New("numutil: empty input")

	// ErrTooShort is returned when a helper needs at least two elements.
	ErrTooShort = errors.New("numutil: need at least two values")
)

// OrderOfMagnitude returns floor(log10(|x|)) for every non-zero, non-NaN value.
// Zeros are dropped. Returns nil when no value qualifies.
func OrderOfMagnitude(values ...float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == 0 || math.IsNaN(v) {
			continue
		}
		out = append(out, math.Floor(math.Log10(math.Abs(v))))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CenteredBins returns len(x)+1 bin edges such that the values of x are the
// bin centres. The series is extended by one step equal to its last spacing
// before taking the gradient, so non-uniform spacing is handled too.
func CenteredBins(x []float64) ([]float64, error) {
	if len(x) < 2 {
		return nil, ErrTooShort
	}

	n := len(x)
	ext := make([]float64, n+1)
	copy(ext, x)
	ext[n] = x[n-1] + (x[n-1] - x[n-2])

	edges := make([]float64, len(ext))
	for i := range ext {
		edges[i] = ext[i] - gradient(ext, i, 2)
	}
	return edges, nil
}

// gradient mirrors a second-order central difference with uniform spacing h
// and first-order one-sided differences at the boundaries.
func gradient(x []float64, i int, h float64) float64 {
	last := len(x) - 1
	switch i {
	case 0:
		return (x[1] - x[0]) / h
	case last:
		return (x[last] - x[last-1]) / h
	default:
		return (x[i+1] - x[i-1]) / (2 * h)
	}
}

// FindNearest returns the first element of items closest to pivot.
func FindNearest(items []float64, pivot float64) (float64, error) {
	if len(items) == 0 {
		return 0, ErrEmpty
	}

	best := items[0]
	bestDist := math.Abs(best - pivot)
	for _, v := range items[1:] {
		if d := math.Abs(v - pivot); d < bestDist {
			best, bestDist = v, d
		}
	}
	return best, nil
}

// Median returns the median of the non-NaN values, or NaN if there are none.
func Median(values []float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	mid := len(clean) / 2
	if len(clean)%2 == 1 {
		return clean[mid]
	}
	return (clean[mid-1] + clean[mid]) / 2
}
