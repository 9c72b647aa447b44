package grading

import (
	"github.com/montanaflynn/stats"
)

// Statistics holds descriptive statistics over a set of grade percentages.
// All measures are nil for empty input: a course with no grades has no
// average, which is different from an average of zero.
type Statistics struct {
	Count      int            `json:"count"`
	Mean       *float64       `json:"mean"`
	Median     *float64       `json:"median"`
	StdDev     *float64       `json:"std_dev"`
	Min        *float64       `json:"min"`
	Max        *float64       `json:"max"`
	BandCounts map[string]int `json:"band_counts"`
}

// ComputeStatistics computes mean, median, population standard deviation,
// min, max and per-letter band counts over grade percentages.
func ComputeStatistics(percentages []float64, scale *Scale) Statistics {
	result := Statistics{
		Count:      len(percentages),
		BandCounts: make(map[string]int),
	}
	if len(percentages) == 0 {
		return result
	}

	data := stats.Float64Data(percentages)

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	result.Mean = &mean
	result.Median = &median
	result.StdDev = &stdDev
	result.Min = &min
	result.Max = &max

	for _, pct := range percentages {
		result.BandCounts[scale.Letter(pct)]++
	}
	return result
}
