package grading

import (
	"errors"
	"testing"
	"time"
)

func item(cat Category, earned, possible float64, due time.Time) GradeItem {
	return GradeItem{
		PointsEarned:   earned,
		PointsPossible: possible,
		DueDate:        due,
		Category:       cat,
	}
}

func defaultConfig() CourseConfig {
	return CourseConfig{
		AssignmentWeightPct:    40,
		ExamWeightPct:          50,
		ParticipationWeightPct: 10,
	}
}

func TestAggregateDropLowest(t *testing.T) {
	scale := DefaultScale()
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	// Scores 50, 70, 90, 95 with drop_lowest=1: (70+90+95)/3 = 85.
	items := []GradeItem{
		item(CategoryAssignment, 50, 100, base),
		item(CategoryAssignment, 70, 100, base.AddDate(0, 0, 7)),
		item(CategoryAssignment, 90, 100, base.AddDate(0, 0, 14)),
		item(CategoryAssignment, 95, 100, base.AddDate(0, 0, 21)),
	}
	cfg := CourseConfig{AssignmentWeightPct: 100, DropLowestAssignments: 1}

	res, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !almostEqual(res.OverallPercentage, 85.0) {
		t.Fatalf("overall = %.4f, want 85.0", res.OverallPercentage)
	}
	if !almostEqual(res.CategoryAverages[CategoryAssignment], 85.0) {
		t.Fatalf("assignment average = %.4f, want 85.0", res.CategoryAverages[CategoryAssignment])
	}
}

func TestAggregateDropLowestTieBreaksByDueDate(t *testing.T) {
	scale := DefaultScale()
	early := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 0, 14)

	// Two items tied at 60%; the earlier due date is the one dropped.
	// Result is deterministic regardless of input order.
	items := []GradeItem{
		item(CategoryAssignment, 60, 100, late),
		item(CategoryAssignment, 60, 100, early),
		item(CategoryAssignment, 90, 100, early.AddDate(0, 0, 28)),
	}
	cfg := CourseConfig{AssignmentWeightPct: 100, DropLowestAssignments: 1}

	res, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := (60.0 + 90.0) / 2
	if !almostEqual(res.OverallPercentage, want) {
		t.Fatalf("overall = %.4f, want %.4f", res.OverallPercentage, want)
	}
}

func TestAggregateDropLowestExhaustsCategory(t *testing.T) {
	scale := DefaultScale()
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	items := []GradeItem{
		item(CategoryAssignment, 80, 100, due),
		item(CategoryExam, 90, 100, due),
	}
	cfg := CourseConfig{
		AssignmentWeightPct:   50,
		ExamWeightPct:         50,
		DropLowestAssignments: 1,
	}

	res, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	// The exhausted category averages 0 but its weight still counts,
	// unlike a category that never had items.
	want := (0.0*50 + 90.0*50) / 100
	if !almostEqual(res.OverallPercentage, want) {
		t.Fatalf("overall = %.4f, want %.4f", res.OverallPercentage, want)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected an insufficient-data warning")
	}
}

func TestAggregateWeightRedistribution(t *testing.T) {
	scale := DefaultScale()
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	items := []GradeItem{
		item(CategoryAssignment, 80, 100, due),
		item(CategoryExam, 90, 100, due),
	}

	// 40/50/10 with no participation items must equal 40/50 renormalized.
	withParticipationWeight, err := Aggregate(items, defaultConfig(), scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	renormalized, err := Aggregate(items, CourseConfig{
		AssignmentWeightPct: 40.0 / 90.0 * 100,
		ExamWeightPct:       50.0 / 90.0 * 100,
	}, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if !almostEqual(withParticipationWeight.OverallPercentage, renormalized.OverallPercentage) {
		t.Fatalf("redistribution mismatch: %.6f vs %.6f",
			withParticipationWeight.OverallPercentage, renormalized.OverallPercentage)
	}
}

func TestAggregateNoGrades(t *testing.T) {
	scale := DefaultScale()

	res, err := Aggregate(nil, defaultConfig(), scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !res.NoGrades {
		t.Fatal("NoGrades should be set for an empty item list")
	}
	if res.OverallPercentage != 0 {
		t.Fatalf("overall = %.2f, want 0", res.OverallPercentage)
	}
	found := false
	for _, w := range res.Warnings {
		if w == WarnNoGradesRecorded {
			found = true
		}
	}
	if !found {
		t.Fatalf("warnings = %v, want %q present", res.Warnings, WarnNoGradesRecorded)
	}
}

func TestAggregateCurve(t *testing.T) {
	scale := DefaultScale()
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	items := []GradeItem{item(CategoryExam, 78, 100, due)}
	cfg := CourseConfig{ExamWeightPct: 100, CurveEnabled: true, CurvePct: 5}

	res, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !almostEqual(res.OverallPercentage, 83.0) || res.LetterGrade != "B" {
		t.Fatalf("got %.2f %q, want 83.00 B", res.OverallPercentage, res.LetterGrade)
	}

	// Disabled curve leaves the percentage untouched even if CurvePct is set.
	cfg.CurveEnabled = false
	res, err = Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !almostEqual(res.OverallPercentage, 78.0) {
		t.Fatalf("got %.2f, want 78.00", res.OverallPercentage)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	scale := DefaultScale()
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	items := []GradeItem{
		item(CategoryAssignment, 88, 100, due),
		item(CategoryAssignment, 64, 100, due.AddDate(0, 0, 7)),
		item(CategoryExam, 91, 100, due.AddDate(0, 0, 30)),
		item(CategoryParticipation, 10, 10, due),
	}
	cfg := defaultConfig()
	cfg.DropLowestAssignments = 1

	first, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	second, err := Aggregate(items, cfg, scale)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if first.OverallPercentage != second.OverallPercentage || first.LetterGrade != second.LetterGrade {
		t.Fatalf("repeated aggregation diverged: %.6f vs %.6f", first.OverallPercentage, second.OverallPercentage)
	}
}

func TestAggregateInvalidConfig(t *testing.T) {
	scale := DefaultScale()

	for _, cfg := range []CourseConfig{
		{},
		{AssignmentWeightPct: -10, ExamWeightPct: 110},
		{AssignmentWeightPct: 100, DropLowestAssignments: -1},
	} {
		if _, err := Aggregate(nil, cfg, scale); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("Aggregate(%+v): expected ErrInvalidConfiguration, got %v", cfg, err)
		}
	}
}
