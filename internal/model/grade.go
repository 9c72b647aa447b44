package model

import (
	"time"

	"github.com/academica/academica-backend/internal/grading"
)

// GradeStatus represents the publication state of a grade.
type GradeStatus string

const (
	GradeDraft     GradeStatus = "draft"
	GradePublished GradeStatus = "published"
)

// Grade is a single recorded score. Percentage and LetterGrade are stored
// denormalized from the normalization pass so list queries never recompute.
type Grade struct {
	ID              int              `json:"id"`
	StudentID       int              `json:"student_id"`
	CourseID        int              `json:"course_id"`
	AssignmentID    *int             `json:"assignment_id,omitempty"`
	ExamID          *int             `json:"exam_id,omitempty"`
	Category        grading.Category `json:"category"`
	PointsEarned    float64          `json:"points_earned"`
	PointsPossible  float64          `json:"points_possible"`
	Percentage      float64          `json:"percentage"`
	LetterGrade     string           `json:"letter_grade"`
	Status          GradeStatus      `json:"status"`
	IsLate          bool             `json:"is_late"`
	LatePenaltyPct  float64          `json:"late_penalty_pct"`
	ExtraCredit     float64          `json:"extra_credit"`
	CurveAdjustment float64          `json:"curve_adjustment"`
	DueDate         time.Time        `json:"due_date"`
	GradedBy        int              `json:"graded_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// GradeModification is an audit row recorded on every grade change.
type GradeModification struct {
	ID              int       `json:"id"`
	GradeID         int       `json:"grade_id"`
	ModifiedBy      int       `json:"modified_by"`
	OldPointsEarned float64   `json:"old_points_earned"`
	NewPointsEarned float64   `json:"new_points_earned"`
	OldPercentage   float64   `json:"old_percentage"`
	NewPercentage   float64   `json:"new_percentage"`
	OldLetterGrade  string    `json:"old_letter_grade"`
	NewLetterGrade  string    `json:"new_letter_grade"`
	Reason          string    `json:"reason"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateGradeRequest is the payload for recording a grade. Exactly one of
// AssignmentID/ExamID is set for those categories; participation grades
// carry PointsPossible directly.
type CreateGradeRequest struct {
	StudentID       int     `json:"student_id" binding:"required"`
	Category        string  `json:"category" binding:"required,oneof=assignment exam participation"`
	AssignmentID    *int    `json:"assignment_id" binding:"omitempty,min=1"`
	ExamID          *int    `json:"exam_id" binding:"omitempty,min=1"`
	PointsEarned    float64 `json:"points_earned" binding:"min=0"`
	PointsPossible  float64 `json:"points_possible" binding:"omitempty,gt=0"`
	IsLate          bool    `json:"is_late"`
	ExtraCredit     float64 `json:"extra_credit" binding:"min=0"`
	CurveAdjustment float64 `json:"curve_adjustment"`
}

// UpdateGradeRequest is the payload for correcting a grade. Reason is
// mandatory; it goes into the modification audit trail.
type UpdateGradeRequest struct {
	PointsEarned    float64 `json:"points_earned" binding:"min=0"`
	IsLate          bool    `json:"is_late"`
	ExtraCredit     float64 `json:"extra_credit" binding:"min=0"`
	CurveAdjustment float64 `json:"curve_adjustment"`
	Reason          string  `json:"reason" binding:"required,min=3,max=500"`
}

// BulkGradeRequest records many grades in one request.
type BulkGradeRequest struct {
	Grades []CreateGradeRequest `json:"grades" binding:"required,min=1,max=200,dive"`
}
