package grading

import (
	"errors"
	"testing"
)

func TestNewScaleValidation(t *testing.T) {
	cases := []struct {
		name    string
		entries []ScaleEntry
	}{
		{"empty", nil},
		{"duplicate letters", []ScaleEntry{
			{MinPercent: 90, Letter: "A", QualityPoints: 4.0},
			{MinPercent: 80, Letter: "A", QualityPoints: 3.0},
			{MinPercent: 0, Letter: "F", QualityPoints: 0},
		}},
		{"non-decreasing bounds", []ScaleEntry{
			{MinPercent: 80, Letter: "A", QualityPoints: 4.0},
			{MinPercent: 90, Letter: "B", QualityPoints: 3.0},
			{MinPercent: 0, Letter: "F", QualityPoints: 0},
		}},
		{"last bound not zero", []ScaleEntry{
			{MinPercent: 90, Letter: "A", QualityPoints: 4.0},
			{MinPercent: 50, Letter: "F", QualityPoints: 0},
		}},
		{"negative quality points", []ScaleEntry{
			{MinPercent: 90, Letter: "A", QualityPoints: 4.0},
			{MinPercent: 0, Letter: "F", QualityPoints: -1},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewScale(tc.entries)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestDefaultScaleLetters(t *testing.T) {
	scale := DefaultScale()

	cases := []struct {
		pct    float64
		letter string
	}{
		{100, "A+"},
		{97, "A+"},
		{96.99, "A"},
		{93, "A"},
		{90, "A-"},
		{87, "B+"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59.99, "F"},
		{0, "F"},
		// Extra credit can push above 100; the top letter still applies.
		{104.5, "A+"},
	}

	for _, tc := range cases {
		if got := scale.Letter(tc.pct); got != tc.letter {
			t.Errorf("Letter(%.2f) = %q, want %q", tc.pct, got, tc.letter)
		}
	}
}

func TestScaleQualityPoints(t *testing.T) {
	scale := DefaultScale()

	qp, ok := scale.QualityPoints("B+")
	if !ok || qp != 3.3 {
		t.Fatalf("QualityPoints(B+) = %v, %v; want 3.3, true", qp, ok)
	}

	if _, ok := scale.QualityPoints("Z"); ok {
		t.Fatal("QualityPoints(Z) should not resolve")
	}
}

func TestScaleEntriesCopy(t *testing.T) {
	scale := DefaultScale()
	entries := scale.Entries()
	entries[0].Letter = "mutated"

	if scale.Letter(100) != "A+" {
		t.Fatal("mutating Entries() result must not affect the scale")
	}
}
