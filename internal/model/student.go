package model

import "time"

// Student represents a student user.
type Student struct {
	ID             int       `json:"id"`
	StudentNumber  string    `json:"student_number"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	MajorCode      string    `json:"major_code"`
	EnrollmentYear int       `json:"enrollment_year"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=4,max=20"`
	Password      string `json:"password" binding:"required,min=4,max=128"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	StudentNumber  string `json:"student_number" binding:"required,min=4,max=20"`
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,email,max=120"`
	Password       string `json:"password" binding:"required,min=6,max=128"`
	MajorCode      string `json:"major_code" binding:"required,min=2,max=10"`
	EnrollmentYear int    `json:"enrollment_year" binding:"required,min=2000"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Email          string `json:"email" binding:"required,email,max=120"`
	Password       string `json:"password" binding:"omitempty,min=6,max=128"`
	MajorCode      string `json:"major_code" binding:"required,min=2,max=10"`
	EnrollmentYear int    `json:"enrollment_year" binding:"required,min=2000"`
}
