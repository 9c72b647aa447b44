package model

import "time"

// Exam represents a gradable exam within a course.
type Exam struct {
	ID          int       `json:"id"`
	CourseID    int       `json:"course_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TotalPoints float64   `json:"total_points"`
	ExamDate    time.Time `json:"exam_date"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateExamRequest is the payload for creating an exam.
type CreateExamRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=150"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	TotalPoints float64   `json:"total_points" binding:"required,gt=0"`
	ExamDate    time.Time `json:"exam_date" binding:"required"`
}

// UpdateExamRequest is the payload for updating an exam.
type UpdateExamRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=150"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	TotalPoints float64   `json:"total_points" binding:"required,gt=0"`
	ExamDate    time.Time `json:"exam_date" binding:"required"`
}
