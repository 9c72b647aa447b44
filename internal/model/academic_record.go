package model

import (
	"time"

	"github.com/academica/academica-backend/internal/grading"
)

// AcademicRecord is the per-course outcome row feeding GPA computation.
type AcademicRecord struct {
	ID               int                  `json:"id"`
	StudentID        int                  `json:"student_id"`
	CourseID         int                  `json:"course_id"`
	Semester         string               `json:"semester"`
	Year             int                  `json:"year"`
	LetterGrade      string               `json:"letter_grade"`
	CreditsAttempted int                  `json:"credits_attempted"`
	CreditsEarned    int                  `json:"credits_earned"`
	Status           grading.RecordStatus `json:"status"`
	MajorCourse      bool                 `json:"major_course"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// UpsertAcademicRecordRequest is the payload for creating or finalizing an
// academic record.
type UpsertAcademicRecordRequest struct {
	StudentID        int    `json:"student_id" binding:"required"`
	LetterGrade      string `json:"letter_grade" binding:"omitempty,max=3"`
	CreditsAttempted int    `json:"credits_attempted" binding:"required,min=1,max=12"`
	CreditsEarned    int    `json:"credits_earned" binding:"min=0,max=12"`
	Status           string `json:"status" binding:"required,oneof=pending graded incomplete withdrawn"`
	MajorCourse      bool   `json:"major_course"`
}
