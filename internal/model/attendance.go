package model

import "time"

// AttendanceStatus represents a single class-session attendance mark.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Attendance is one student's mark for one class date.
type Attendance struct {
	ID          int              `json:"id"`
	StudentID   int              `json:"student_id"`
	CourseID    int              `json:"course_id"`
	ClassDate   time.Time        `json:"class_date"`
	Status      AttendanceStatus `json:"status"`
	LateMinutes int              `json:"late_minutes"`
	Notes       string           `json:"notes,omitempty"`
	RecordedBy  int              `json:"recorded_by"`
	CreatedAt   time.Time        `json:"created_at"`
}

// RecordAttendanceRequest marks a single student for a class date.
type RecordAttendanceRequest struct {
	StudentID   int    `json:"student_id" binding:"required"`
	ClassDate   string `json:"class_date" binding:"required,datetime=2006-01-02"`
	Status      string `json:"status" binding:"required,oneof=present absent late excused"`
	LateMinutes int    `json:"late_minutes" binding:"min=0,max=600"`
	Notes       string `json:"notes" binding:"omitempty,max=500"`
}

// BulkAttendanceMark is one roster row in a bulk recording request.
type BulkAttendanceMark struct {
	StudentID   int    `json:"student_id" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=present absent late excused"`
	LateMinutes int    `json:"late_minutes" binding:"min=0,max=600"`
}

// BulkAttendanceRequest marks a whole roster for one class date.
type BulkAttendanceRequest struct {
	ClassDate string               `json:"class_date" binding:"required,datetime=2006-01-02"`
	Marks     []BulkAttendanceMark `json:"marks" binding:"required,min=1,max=500,dive"`
}

// AttendanceSummary aggregates a student's marks for one course.
// Present and late both count as attended; excused sessions are excluded
// from the denominator.
type AttendanceSummary struct {
	StudentID     int     `json:"student_id"`
	CourseID      int     `json:"course_id"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	Excused       int     `json:"excused"`
	TotalSessions int     `json:"total_sessions"`
	AttendancePct float64 `json:"attendance_pct"`
}
