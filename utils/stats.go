package utils

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// StdDev returns the sample standard deviation (n-1 denominator).
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// Quantile returns the q-th quantile (0 <= q <= 1) of an ascending-sorted slice
// using linear interpolation between closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// MinMax returns the smallest and largest finite values. ok is false when there
// are none.
func MinMax(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, ok
}

// Histogram counts finite values into bins equal-width bins spanning
// [min, max]. The last bin is closed on the right.
func Histogram(values []float64, bins int) (edges []float64, counts []int) {
	lo, hi, ok := MinMax(values)
	if !ok || bins < 1 {
		return nil, nil
	}
	if hi == lo {
		lo -= 0.5
		hi += 0.5
	}

	// divided before subtracting so a span near MaxFloat64 stays finite
	width := hi/float64(bins) - lo/float64(bins)
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + width*float64(i)
	}
	edges[bins] = hi

	counts = make([]int, bins)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		idx := int(v/width - lo/width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return edges, counts
}

// BoxStats summarises a sample for a box plot. Whiskers extend to the most
// extreme points within 1.5 IQR of the quartiles.
type BoxStats struct {
	Q1, Median, Q3          float64
	LowWhisker, HighWhisker float64
	Outliers                []float64
}

// Box computes BoxStats for values. The input is not modified.
func Box(values []float64) (BoxStats, bool) {
	if len(values) == 0 {
		return BoxStats{}, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	b := BoxStats{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
	}
	iqr := b.Q3 - b.Q1
	loFence := b.Q1 - 1.5*iqr
	hiFence := b.Q3 + 1.5*iqr

	b.LowWhisker = b.Q1
	b.HighWhisker = b.Q3
	for _, v := range sorted {
		if v >= loFence {
			b.LowWhisker = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			b.HighWhisker = sorted[i]
			break
		}
	}
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, true
}

// KDE evaluates a Gaussian kernel density estimate of values at each point of
// xs, using Scott's rule for the bandwidth. It returns nil when the sample has
// fewer than two points or no spread.
func KDE(values, xs []float64) []float64 {
	n := len(values)
	if n < 2 {
		return nil
	}
	sd := StdDev(values)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	bw := sd * math.Pow(float64(n), -1.0/5.0)
	norm := 1 / (float64(n) * bw * math.Sqrt(2*math.Pi))

	out := make([]float64, len(xs))
	for i, x := range xs {
		var sum float64
		for _, v := range values {
			u := (x - v) / bw
			sum += math.Exp(-0.5 * u * u)
		}
		out[i] = sum * norm
	}
	return out
}

// Linspace returns n evenly spaced points over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		f := float64(i) / float64(n-1)
		out[i] = lo*(1-f) + hi*f
	}
	return out
}
