package model

// DashboardSummary is the professor landing-page aggregate.
type DashboardSummary struct {
	CourseCount     int      `json:"course_count"`
	StudentCount    int      `json:"student_count"`
	AssignmentCount int      `json:"assignment_count"`
	ExamCount       int      `json:"exam_count"`
	DraftGrades     int      `json:"draft_grades"`
	StudentsAtRisk  int      `json:"students_at_risk"`
	AverageGrade    *float64 `json:"average_grade"`
}
