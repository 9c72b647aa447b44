package grading

import "testing"

func TestComputeStatisticsEmpty(t *testing.T) {
	scale := DefaultScale()

	res := ComputeStatistics(nil, scale)
	if res.Count != 0 {
		t.Fatalf("Count = %d, want 0", res.Count)
	}
	if res.Mean != nil || res.Median != nil || res.StdDev != nil || res.Min != nil || res.Max != nil {
		t.Fatal("all measures must be nil for empty input, not zero")
	}
	if len(res.BandCounts) != 0 {
		t.Fatalf("BandCounts = %v, want empty", res.BandCounts)
	}
}

func TestComputeStatistics(t *testing.T) {
	scale := DefaultScale()
	percentages := []float64{95, 85, 75, 65, 55}

	res := ComputeStatistics(percentages, scale)
	if res.Count != 5 {
		t.Fatalf("Count = %d, want 5", res.Count)
	}
	if res.Mean == nil || !almostEqual(*res.Mean, 75) {
		t.Fatalf("Mean = %v, want 75", res.Mean)
	}
	if res.Median == nil || !almostEqual(*res.Median, 75) {
		t.Fatalf("Median = %v, want 75", res.Median)
	}
	// Population standard deviation: sqrt(mean of squared deviations).
	if res.StdDev == nil || !almostEqual(*res.StdDev, 14.142135623730951) {
		t.Fatalf("StdDev = %v, want ~14.1421", res.StdDev)
	}
	if res.Min == nil || *res.Min != 55 || res.Max == nil || *res.Max != 95 {
		t.Fatalf("Min/Max = %v/%v, want 55/95", res.Min, res.Max)
	}

	wantBands := map[string]int{"A": 1, "B": 1, "C": 1, "D": 1, "F": 1}
	for letter, count := range wantBands {
		if res.BandCounts[letter] != count {
			t.Fatalf("BandCounts[%s] = %d, want %d (full: %v)", letter, res.BandCounts[letter], count, res.BandCounts)
		}
	}
}

func TestComputeStatisticsSingleValue(t *testing.T) {
	scale := DefaultScale()

	res := ComputeStatistics([]float64{88}, scale)
	if res.StdDev == nil || *res.StdDev != 0 {
		t.Fatalf("single-value StdDev = %v, want 0", res.StdDev)
	}
	if res.BandCounts["B+"] != 1 {
		t.Fatalf("BandCounts = %v, want B+ once", res.BandCounts)
	}
}
