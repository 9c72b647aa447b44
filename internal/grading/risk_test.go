package grading

import "testing"

func defaultThresholds() RiskThresholds {
	return RiskThresholds{MinGPA: 2.0, MinAttendancePct: 70, MinCompletionPct: 60}
}

func TestAssessRiskLowGPAOnly(t *testing.T) {
	res := AssessRisk(RiskInput{
		StudentID:     1,
		CourseID:      10,
		GPA:           1.8,
		AttendancePct: 95,
		CompletionPct: 90,
	}, defaultThresholds())

	if !res.IsAtRisk {
		t.Fatal("expected at-risk")
	}
	if len(res.RiskFactors) != 1 || res.RiskFactors[0] != RiskLowGPA {
		t.Fatalf("RiskFactors = %v, want [low_gpa]", res.RiskFactors)
	}
}

func TestAssessRiskAllFactors(t *testing.T) {
	res := AssessRisk(RiskInput{
		GPA:           1.0,
		AttendancePct: 50,
		CompletionPct: 20,
	}, defaultThresholds())

	if !res.IsAtRisk || len(res.RiskFactors) != 3 {
		t.Fatalf("RiskFactors = %v, want all three", res.RiskFactors)
	}
}

func TestAssessRiskNotAtRisk(t *testing.T) {
	res := AssessRisk(RiskInput{
		GPA:           3.2,
		AttendancePct: 90,
		CompletionPct: 100,
	}, defaultThresholds())

	if res.IsAtRisk {
		t.Fatalf("unexpected at-risk: %v", res.RiskFactors)
	}
	if res.RiskFactors == nil || len(res.RiskFactors) != 0 {
		t.Fatalf("RiskFactors = %#v, want empty non-nil slice", res.RiskFactors)
	}
}

func TestAssessRiskThresholdIsExclusive(t *testing.T) {
	// Values exactly at the threshold are not flagged.
	res := AssessRisk(RiskInput{
		GPA:           2.0,
		AttendancePct: 70,
		CompletionPct: 60,
	}, defaultThresholds())

	if res.IsAtRisk {
		t.Fatalf("boundary values flagged: %v", res.RiskFactors)
	}
}
