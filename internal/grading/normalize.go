package grading

import (
	"fmt"
	"time"
)

// Category is the gradebook category a grade item belongs to.
type Category string

const (
	CategoryAssignment    Category = "assignment"
	CategoryExam          Category = "exam"
	CategoryParticipation Category = "participation"
)

// GradeItem is a single raw grade as entered by a professor. It is a plain
// value: the grading functions never mutate it or anything else.
type GradeItem struct {
	PointsEarned       float64
	PointsPossible     float64
	DueDate            time.Time
	SubmittedDate      *time.Time
	IsLate             bool
	LatePenaltyPct     float64
	ExtraCreditPts     float64
	CurveAdjustmentPts float64
	Category           Category
	WeightPct          float64
}

// NormalizedGrade is the percentage and letter produced from a GradeItem.
type NormalizedGrade struct {
	Percentage  float64
	LetterGrade string
}

// Normalize converts a raw grade item into a percentage and letter grade.
// Adjustments apply in a fixed order: late penalty (absolute percentage
// points, floored at 0), then extra credit, then the signed curve
// adjustment. The result is lower-clamped at 0 but never upper-clamped —
// extra credit may push a grade above 100.
func Normalize(item GradeItem, scale *Scale) (NormalizedGrade, error) {
	if item.PointsPossible <= 0 {
		return NormalizedGrade{}, fmt.Errorf("%w: points possible must be > 0, got %.2f", ErrInvalidGradeInput, item.PointsPossible)
	}
	if item.PointsEarned < 0 {
		return NormalizedGrade{}, fmt.Errorf("%w: points earned must be >= 0, got %.2f", ErrInvalidGradeInput, item.PointsEarned)
	}

	pct := item.PointsEarned / item.PointsPossible * 100

	if item.IsLate && item.LatePenaltyPct > 0 {
		pct -= item.LatePenaltyPct
		if pct < 0 {
			pct = 0
		}
	}

	pct += item.ExtraCreditPts
	pct += item.CurveAdjustmentPts

	if pct < 0 {
		pct = 0
	}

	return NormalizedGrade{
		Percentage:  pct,
		LetterGrade: scale.Letter(pct),
	}, nil
}
