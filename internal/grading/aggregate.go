package grading

import (
	"fmt"
	"sort"
)

// CourseConfig holds a course's gradebook weighting and adjustment rules.
type CourseConfig struct {
	AssignmentWeightPct    float64
	ExamWeightPct          float64
	ParticipationWeightPct float64
	DropLowestAssignments  int
	DropLowestExams        int
	CurveEnabled           bool
	CurvePct               float64
}

// Validate checks that the config can produce a meaningful weighted average.
// Weights not summing to exactly 100 are tolerated (they are normalized
// before use), but a non-positive total is a configuration error.
func (c CourseConfig) Validate() error {
	total := c.AssignmentWeightPct + c.ExamWeightPct + c.ParticipationWeightPct
	if total <= 0 {
		return fmt.Errorf("%w: category weights sum to %.2f", ErrInvalidConfiguration, total)
	}
	if c.AssignmentWeightPct < 0 || c.ExamWeightPct < 0 || c.ParticipationWeightPct < 0 {
		return fmt.Errorf("%w: category weights must be >= 0", ErrInvalidConfiguration)
	}
	if c.DropLowestAssignments < 0 || c.DropLowestExams < 0 {
		return fmt.Errorf("%w: drop-lowest counts must be >= 0", ErrInvalidConfiguration)
	}
	return nil
}

// Aggregate warnings. These flag sparse data without failing the
// computation, so callers can show "No grades yet" instead of "0.0".
const (
	WarnNoGradesRecorded = "no grades recorded"
)

// AggregateResult is the outcome of combining a student's grade items into
// an overall course percentage.
type AggregateResult struct {
	OverallPercentage float64
	LetterGrade       string
	CategoryAverages  map[Category]float64
	CategoryCounts    map[Category]int
	// NoGrades is true when no category had any items; the overall
	// percentage is then 0.0 by definition, not by performance.
	NoGrades bool
	Warnings []string
}

// Aggregate combines grade items into an overall course percentage.
//
// Items are partitioned by category. Within the assignment and exam
// categories, the configured number of lowest-scoring items is dropped
// before averaging (ties broken by earliest due date, so the result is
// deterministic). A category with no items contributes nothing and its
// weight is redistributed proportionally among the non-empty categories;
// a course without a participation component is not penalized for it.
func Aggregate(items []GradeItem, cfg CourseConfig, scale *Scale) (AggregateResult, error) {
	if err := cfg.Validate(); err != nil {
		return AggregateResult{}, err
	}

	type scored struct {
		item GradeItem
		pct  float64
	}

	byCategory := make(map[Category][]scored)
	for _, item := range items {
		norm, err := Normalize(item, scale)
		if err != nil {
			return AggregateResult{}, err
		}
		byCategory[item.Category] = append(byCategory[item.Category], scored{item: item, pct: norm.Percentage})
	}

	result := AggregateResult{
		CategoryAverages: make(map[Category]float64, 3),
		CategoryCounts:   make(map[Category]int, 3),
	}

	categoryAverage := func(cat Category, dropLowest int) float64 {
		entries := byCategory[cat]
		result.CategoryCounts[cat] = len(entries)
		if len(entries) == 0 {
			return 0
		}

		if dropLowest > 0 {
			if dropLowest >= len(entries) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("insufficient data: drop-lowest %d leaves no %s items", dropLowest, cat))
				result.CategoryAverages[cat] = 0
				return 0
			}
			// Lowest percentage first; ties drop the earliest due date.
			sort.SliceStable(entries, func(i, j int) bool {
				if entries[i].pct != entries[j].pct {
					return entries[i].pct < entries[j].pct
				}
				return entries[i].item.DueDate.Before(entries[j].item.DueDate)
			})
			entries = entries[dropLowest:]
		}

		var sum float64
		for _, e := range entries {
			sum += e.pct
		}
		avg := sum / float64(len(entries))
		result.CategoryAverages[cat] = avg
		return avg
	}

	type weighted struct {
		cat    Category
		weight float64
		drop   int
	}
	categories := []weighted{
		{CategoryAssignment, cfg.AssignmentWeightPct, cfg.DropLowestAssignments},
		{CategoryExam, cfg.ExamWeightPct, cfg.DropLowestExams},
		{CategoryParticipation, cfg.ParticipationWeightPct, 0},
	}

	var weightedSum, weightTotal float64
	for _, wc := range categories {
		avg := categoryAverage(wc.cat, wc.drop)
		if result.CategoryCounts[wc.cat] == 0 {
			continue // Empty category: effective weight 0.
		}
		weightedSum += avg * wc.weight
		weightTotal += wc.weight
	}

	if weightTotal == 0 {
		// Either every category is empty, or the only populated
		// categories carry zero weight. Both mean "nothing to average".
		result.NoGrades = true
		result.Warnings = append(result.Warnings, WarnNoGradesRecorded)
		result.OverallPercentage = 0
		result.LetterGrade = scale.Letter(0)
		return result, nil
	}

	overall := weightedSum / weightTotal

	if cfg.CurveEnabled {
		overall += cfg.CurvePct
	}
	if overall < 0 {
		overall = 0
	}

	result.OverallPercentage = overall
	result.LetterGrade = scale.Letter(overall)
	return result, nil
}
