package utils

import (
	"math"
	"testing"
)

func TestMeanAndStdDev(t *testing.T) {
	vals := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(vals); got != 5 {
		t.Errorf("Mean: got %v, want 5", got)
	}
	want := math.Sqrt(32.0 / 7.0)
	if got := StdDev(vals); math.Abs(got-want) > 1e-12 {
		t.Errorf("StdDev: got %v, want %v", got, want)
	}
	if Mean(nil) != 0 || StdDev([]float64{1}) != 0 {
		t.Error("degenerate inputs should yield 0")
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{1, 4},
	}
	for _, tt := range tests {
		if got := Quantile(sorted, tt.q); got != tt.want {
			t.Errorf("Quantile(%v) = %v; want %v", tt.q, got, tt.want)
		}
	}
}

func TestHistogramCountsEveryFiniteValue(t *testing.T) {
	vals := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, math.NaN()}
	edges, counts := Histogram(vals, 5)
	if len(edges) != 6 || len(counts) != 5 {
		t.Fatalf("got %d edges / %d counts", len(edges), len(counts))
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 11 {
		t.Errorf("total count: got %d, want 11", total)
	}
	if counts[4] != 3 {
		t.Errorf("last bin should include the max: got %d, want 3", counts[4])
	}
}

func TestHistogramExtremeSpan(t *testing.T) {
	edges, counts := Histogram([]float64{-1e308, 0, 1e308}, 2)
	for _, e := range edges {
		if math.IsInf(e, 0) || math.IsNaN(e) {
			t.Fatalf("edges should be finite: %v", edges)
		}
	}
	if counts[0] != 1 || counts[1] != 2 {
		t.Errorf("counts: got %v, want [1 2]", counts)
	}

	xs := Linspace(-1e308, 1e308, 3)
	if xs[1] != 0 || xs[2] != 1e308 {
		t.Errorf("Linspace: got %v", xs)
	}
}

func TestBoxOutliers(t *testing.T) {
	b, ok := Box([]float64{1, 2, 3, 4, 5, 100})
	if !ok {
		t.Fatal("Box returned !ok")
	}
	if len(b.Outliers) != 1 || b.Outliers[0] != 100 {
		t.Errorf("Outliers: got %v, want [100]", b.Outliers)
	}
	if b.HighWhisker != 5 {
		t.Errorf("HighWhisker: got %v, want 5", b.HighWhisker)
	}
}

func TestKDEIntegratesToOne(t *testing.T) {
	vals := []float64{10, 12, 13, 15, 20, 22, 30}
	xs := Linspace(-100, 150, 2001)
	ys := KDE(vals, xs)
	if ys == nil {
		t.Fatal("KDE returned nil")
	}
	step := xs[1] - xs[0]
	var area float64
	for _, y := range ys {
		area += y * step
	}
	if math.Abs(area-1) > 0.01 {
		t.Errorf("area under KDE: got %v, want ~1", area)
	}
	if KDE([]float64{5, 5, 5}, xs) != nil {
		t.Error("KDE of a constant sample should be nil")
	}
}
