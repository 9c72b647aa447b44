package model

import "time"

// EnrollmentStatus represents the state of a course registration.
type EnrollmentStatus string

const (
	EnrollmentRegistered EnrollmentStatus = "registered"
	EnrollmentDropped    EnrollmentStatus = "dropped"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// Enrollment links a student to a course.
type Enrollment struct {
	ID           int              `json:"id"`
	StudentID    int              `json:"student_id"`
	CourseID     int              `json:"course_id"`
	Status       EnrollmentStatus `json:"status"`
	RegisteredAt time.Time        `json:"registered_at"`
	DroppedAt    *time.Time       `json:"dropped_at,omitempty"`
}

// EnrolledStudent is a roster row: enrollment plus student identity.
type EnrolledStudent struct {
	EnrollmentID  int       `json:"enrollment_id"`
	StudentID     int       `json:"student_id"`
	StudentNumber string    `json:"student_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	RegisteredAt  time.Time `json:"registered_at"`
}
