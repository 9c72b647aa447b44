package model

import "time"

// Assignment represents a gradable assignment within a course.
type Assignment struct {
	ID             int       `json:"id"`
	CourseID       int       `json:"course_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TotalPoints    float64   `json:"total_points"`
	DueDate        time.Time `json:"due_date"`
	AllowLate      bool      `json:"allow_late"`
	LatePenaltyPct float64   `json:"late_penalty_pct"`
	Published      bool      `json:"published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Title          string    `json:"title" binding:"required,min=2,max=150"`
	Description    string    `json:"description" binding:"omitempty,max=5000"`
	TotalPoints    float64   `json:"total_points" binding:"required,gt=0"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	AllowLate      bool      `json:"allow_late"`
	LatePenaltyPct float64   `json:"late_penalty_pct" binding:"min=0,max=100"`
}

// UpdateAssignmentRequest is the payload for updating an assignment.
type UpdateAssignmentRequest struct {
	Title          string    `json:"title" binding:"required,min=2,max=150"`
	Description    string    `json:"description" binding:"omitempty,max=5000"`
	TotalPoints    float64   `json:"total_points" binding:"required,gt=0"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	AllowLate      bool      `json:"allow_late"`
	LatePenaltyPct float64   `json:"late_penalty_pct" binding:"min=0,max=100"`
}
