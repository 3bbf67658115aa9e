package cleaning

import (
	"math"
	"sort"
)

// mean computes the average of a slice.
func mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// stddev computes the population standard deviation in a single pass.
func stddev(x []float64) float64 {
	n := float64(len(x))
	if n == 0 {
		return 0
	}
	sum, sumSq := 0.0, 0.0
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	m := sum / n
	variance := (sumSq / n) - (m * m)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// median returns the median value of the slice (allocates a copy).
func median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1
	if n&1 == 0 {
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// percentile returns the p-th percentile (0 <= p <= 100) using linear
// interpolation between closest ranks.
func percentile(x []float64, p float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	if p <= 0 {
		return cp[0]
	}
	if p >= 100 {
		return cp[n-1]
	}
	rank := p / 100 * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}

// zScores computes the z-score of each value relative to the slice's own
// mean and population standard deviation. A zero-variance slice yields
// all-zero scores, so no value can be flagged as an outlier.
func zScores(x []float64) []float64 {
	scores := make([]float64, len(x))
	m := mean(x)
	sd := stddev(x)
	if sd == 0 {
		return scores
	}
	for i, v := range x {
		scores[i] = (v - m) / sd
	}
	return scores
}

// textMode returns the most frequent value, breaking ties by first
// occurrence. ok is false when the slice is empty (no mode exists).
func textMode(values []string) (mode string, ok bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
			mode = v
		}
	}
	return mode, true
}
