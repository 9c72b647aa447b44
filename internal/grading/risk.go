package grading

import "time"

// RiskFactor is one reason a student was flagged at risk. The vocabulary is
// closed; callers can rely on exactly these values appearing.
type RiskFactor string

const (
	RiskLowGPA        RiskFactor = "low_gpa"
	RiskLowAttendance RiskFactor = "low_attendance"
	RiskLowCompletion RiskFactor = "low_completion"
)

// RiskThresholds are the cutoffs below which each risk rule fires.
type RiskThresholds struct {
	MinGPA           float64 `json:"min_gpa"`
	MinAttendancePct float64 `json:"min_attendance_pct"`
	MinCompletionPct float64 `json:"min_completion_pct"`
}

// RiskInput is the per-student measurement set evaluated against thresholds.
type RiskInput struct {
	StudentID     int
	CourseID      int
	GPA           float64
	AttendancePct float64
	CompletionPct float64
}

// RiskAssessment is a derived classification, recomputed on demand. The
// factor list records which rules fired, for explainability.
type RiskAssessment struct {
	StudentID   int          `json:"student_id"`
	CourseID    int          `json:"course_id"`
	IsAtRisk    bool         `json:"is_at_risk"`
	RiskFactors []RiskFactor `json:"risk_factors"`
	ComputedAt  time.Time    `json:"computed_at"`
}

// AssessRisk flags a student as at risk if ANY rule fires: GPA, attendance
// percentage or assignment completion percentage below its threshold.
// Pure classification; persistence of the flag is the caller's concern.
func AssessRisk(in RiskInput, th RiskThresholds) RiskAssessment {
	assessment := RiskAssessment{
		StudentID:   in.StudentID,
		CourseID:    in.CourseID,
		RiskFactors: []RiskFactor{},
		ComputedAt:  time.Now().UTC(),
	}

	if in.GPA < th.MinGPA {
		assessment.RiskFactors = append(assessment.RiskFactors, RiskLowGPA)
	}
	if in.AttendancePct < th.MinAttendancePct {
		assessment.RiskFactors = append(assessment.RiskFactors, RiskLowAttendance)
	}
	if in.CompletionPct < th.MinCompletionPct {
		assessment.RiskFactors = append(assessment.RiskFactors, RiskLowCompletion)
	}

	assessment.IsAtRisk = len(assessment.RiskFactors) > 0
	return assessment
}
