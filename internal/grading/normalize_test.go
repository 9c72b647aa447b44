package grading

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeBasic(t *testing.T) {
	scale := DefaultScale()

	norm, err := Normalize(GradeItem{PointsEarned: 45, PointsPossible: 50}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(norm.Percentage, 90.0) || norm.LetterGrade != "A-" {
		t.Fatalf("got %.2f %q, want 90.00 A-", norm.Percentage, norm.LetterGrade)
	}
}

func TestNormalizeLatePenalty(t *testing.T) {
	scale := DefaultScale()

	// 45/50 = 90%, late penalty of 10 percentage points lands on 80.
	norm, err := Normalize(GradeItem{
		PointsEarned:   45,
		PointsPossible: 50,
		IsLate:         true,
		LatePenaltyPct: 10,
	}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(norm.Percentage, 80.0) || norm.LetterGrade != "B-" {
		t.Fatalf("got %.2f %q, want 80.00 B-", norm.Percentage, norm.LetterGrade)
	}

	// Penalty larger than the score floors at 0 before extra credit.
	norm, err = Normalize(GradeItem{
		PointsEarned:   2,
		PointsPossible: 50,
		IsLate:         true,
		LatePenaltyPct: 50,
		ExtraCreditPts: 5,
	}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(norm.Percentage, 5.0) {
		t.Fatalf("penalty must floor at 0 before extra credit, got %.2f", norm.Percentage)
	}

	// The penalty only applies to items actually marked late.
	norm, err = Normalize(GradeItem{
		PointsEarned:   45,
		PointsPossible: 50,
		IsLate:         false,
		LatePenaltyPct: 10,
	}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(norm.Percentage, 90.0) {
		t.Fatalf("penalty applied to on-time item, got %.2f", norm.Percentage)
	}
}

func TestNormalizeExtraCreditAboveHundred(t *testing.T) {
	scale := DefaultScale()

	norm, err := Normalize(GradeItem{
		PointsEarned:   50,
		PointsPossible: 50,
		ExtraCreditPts: 5,
	}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !almostEqual(norm.Percentage, 105.0) || norm.LetterGrade != "A+" {
		t.Fatalf("got %.2f %q, want 105.00 A+ (no upper clamp)", norm.Percentage, norm.LetterGrade)
	}
}

func TestNormalizeNegativeCurveClamps(t *testing.T) {
	scale := DefaultScale()

	norm, err := Normalize(GradeItem{
		PointsEarned:       1,
		PointsPossible:     50,
		CurveAdjustmentPts: -10,
	}, scale)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if norm.Percentage != 0 || norm.LetterGrade != "F" {
		t.Fatalf("got %.2f %q, want 0.00 F", norm.Percentage, norm.LetterGrade)
	}
}

func TestNormalizeRejectsInvalidInput(t *testing.T) {
	scale := DefaultScale()

	for _, item := range []GradeItem{
		{PointsEarned: 10, PointsPossible: 0},
		{PointsEarned: 10, PointsPossible: -5},
		{PointsEarned: -1, PointsPossible: 10},
	} {
		if _, err := Normalize(item, scale); !errors.Is(err, ErrInvalidGradeInput) {
			t.Errorf("Normalize(%+v): expected ErrInvalidGradeInput, got %v", item, err)
		}
	}
}
