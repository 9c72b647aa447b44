package model

import (
	"time"

	"github.com/academica/academica-backend/internal/grading"
)

// Gradebook holds a course's grading configuration. Scale is stored as
// JSONB; an empty scale means the default institutional scale applies.
type Gradebook struct {
	ID                     int                  `json:"id"`
	CourseID               int                  `json:"course_id"`
	AssignmentWeightPct    float64              `json:"assignment_weight_pct"`
	ExamWeightPct          float64              `json:"exam_weight_pct"`
	ParticipationWeightPct float64              `json:"participation_weight_pct"`
	DropLowestAssignments  int                  `json:"drop_lowest_assignments"`
	DropLowestExams        int                  `json:"drop_lowest_exams"`
	CurveEnabled           bool                 `json:"curve_enabled"`
	CurvePct               float64              `json:"curve_pct"`
	Scale                  []grading.ScaleEntry `json:"scale,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// Config converts the stored row into the computation config.
func (g *Gradebook) Config() grading.CourseConfig {
	return grading.CourseConfig{
		AssignmentWeightPct:    g.AssignmentWeightPct,
		ExamWeightPct:          g.ExamWeightPct,
		ParticipationWeightPct: g.ParticipationWeightPct,
		DropLowestAssignments:  g.DropLowestAssignments,
		DropLowestExams:        g.DropLowestExams,
		CurveEnabled:           g.CurveEnabled,
		CurvePct:               g.CurvePct,
	}
}

// UpdateGradebookRequest is the payload for configuring a course gradebook.
type UpdateGradebookRequest struct {
	AssignmentWeightPct    float64              `json:"assignment_weight_pct" binding:"min=0,max=100"`
	ExamWeightPct          float64              `json:"exam_weight_pct" binding:"min=0,max=100"`
	ParticipationWeightPct float64              `json:"participation_weight_pct" binding:"min=0,max=100"`
	DropLowestAssignments  int                  `json:"drop_lowest_assignments" binding:"min=0,max=10"`
	DropLowestExams        int                  `json:"drop_lowest_exams" binding:"min=0,max=10"`
	CurveEnabled           bool                 `json:"curve_enabled"`
	CurvePct               float64              `json:"curve_pct" binding:"min=-100,max=100"`
	Scale                  []grading.ScaleEntry `json:"scale" binding:"omitempty,dive"`
}

// GradebookEntry is a per-student snapshot of the computed course standing.
// Rows are recomputed by the background worker after grade changes and are
// never an authoritative input to any computation.
type GradebookEntry struct {
	ID                   int       `json:"id"`
	CourseID             int       `json:"course_id"`
	StudentID            int       `json:"student_id"`
	StudentName          string    `json:"student_name,omitempty"`
	OverallPercentage    float64   `json:"overall_percentage"`
	LetterGrade          string    `json:"letter_grade"`
	AssignmentAverage    float64   `json:"assignment_average"`
	ExamAverage          float64   `json:"exam_average"`
	ParticipationAverage float64   `json:"participation_average"`
	AssignmentsGraded    int       `json:"assignments_graded"`
	AssignmentsTotal     int       `json:"assignments_total"`
	ExamsGraded          int       `json:"exams_graded"`
	ExamsTotal           int       `json:"exams_total"`
	IsAtRisk             bool      `json:"is_at_risk"`
	RiskFactors          []string  `json:"risk_factors"`
	LastCalculated       time.Time `json:"last_calculated"`
}
