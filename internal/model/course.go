package model

import "time"

// Course represents an offered course section.
type Course struct {
	ID            int       `json:"id"`
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ProfessorID   int       `json:"professor_id"`
	Credits       int       `json:"credits"`
	MaxCapacity   int       `json:"max_capacity"`
	EnrolledCount int       `json:"enrolled_count"`
	Semester      string    `json:"semester"`
	Year          int       `json:"year"`
	MajorCode     string    `json:"major_code"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating a course.
type CreateCourseRequest struct {
	Code        string `json:"code" binding:"required,min=2,max=20"`
	Title       string `json:"title" binding:"required,min=2,max=150"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Credits     int    `json:"credits" binding:"required,min=1,max=6"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1,max=500"`
	Semester    string `json:"semester" binding:"required,oneof=Spring Summer Fall Winter"`
	Year        int    `json:"year" binding:"required,min=2000"`
	MajorCode   string `json:"major_code" binding:"omitempty,min=2,max=10"`
}

// UpdateCourseRequest is the payload for updating a course.
type UpdateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=150"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Credits     int    `json:"credits" binding:"required,min=1,max=6"`
	MaxCapacity int    `json:"max_capacity" binding:"required,min=1,max=500"`
	Semester    string `json:"semester" binding:"required,oneof=Spring Summer Fall Winter"`
	Year        int    `json:"year" binding:"required,min=2000"`
	MajorCode   string `json:"major_code" binding:"omitempty,min=2,max=10"`
}
