package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

// AttendanceRepository handles attendance data access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert records or corrects one student's mark for a class date.
func (r *AttendanceRepository) Upsert(ctx context.Context, a *model.Attendance) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, course_id, class_date, status, late_minutes, notes, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (student_id, course_id, class_date) DO UPDATE
		 SET status = EXCLUDED.status,
		     late_minutes = EXCLUDED.late_minutes,
		     notes = EXCLUDED.notes,
		     recorded_by = EXCLUDED.recorded_by
		 RETURNING id, created_at`,
		a.StudentID, a.CourseID, a.ClassDate, a.Status, a.LateMinutes, a.Notes, a.RecordedBy,
	).Scan(&a.ID, &a.CreatedAt)
}

// BulkUpsert records a whole roster for one class date with a single
// UNNEST statement.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, courseID int, classDate time.Time, recordedBy int, marks []model.BulkAttendanceMark) error {
	n := len(marks)
	if n == 0 {
		return nil
	}

	studentIDs := make([]int, n)
	statuses := make([]string, n)
	lateMinutes := make([]int, n)
	for i, m := range marks {
		studentIDs[i] = m.StudentID
		statuses[i] = m.Status
		lateMinutes[i] = m.LateMinutes
	}

	query := `
		INSERT INTO attendance (student_id, course_id, class_date, status, late_minutes, recorded_by)
		SELECT u.student_id, $1, $2, u.status, u.late_minutes, $3
		FROM UNNEST($4::int[], $5::text[], $6::int[]) AS u (student_id, status, late_minutes)
		ON CONFLICT (student_id, course_id, class_date) DO UPDATE
		SET status = EXCLUDED.status,
		    late_minutes = EXCLUDED.late_minutes,
		    recorded_by = EXCLUDED.recorded_by
	`

	_, err := r.pool.Exec(ctx, query, courseID, classDate, recordedBy, studentIDs, statuses, lateMinutes)
	return err
}

// ListByCourseDate retrieves a course's marks for one class date.
func (r *AttendanceRepository) ListByCourseDate(ctx context.Context, courseID int, classDate time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, course_id, class_date, status, late_minutes, notes, recorded_by, created_at
		 FROM attendance WHERE course_id = $1 AND class_date = $2
		 ORDER BY student_id`, courseID, classDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.CourseID, &a.ClassDate, &a.Status, &a.LateMinutes, &a.Notes, &a.RecordedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, rows.Err()
}

// Summary aggregates one student's marks for one course. Excused sessions
// are excluded from the percentage denominator; present and late both
// count as attended.
func (r *AttendanceRepository) Summary(ctx context.Context, studentID, courseID int) (*model.AttendanceSummary, error) {
	s := &model.AttendanceSummary{StudentID: studentID, CourseID: courseID}
	err := r.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE status = 'present'),
		   COUNT(*) FILTER (WHERE status = 'absent'),
		   COUNT(*) FILTER (WHERE status = 'late'),
		   COUNT(*) FILTER (WHERE status = 'excused'),
		   COUNT(*)
		 FROM attendance WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID,
	).Scan(&s.Present, &s.Absent, &s.Late, &s.Excused, &s.TotalSessions)
	if err != nil {
		return nil, err
	}

	counted := s.TotalSessions - s.Excused
	if counted > 0 {
		s.AttendancePct = float64(s.Present+s.Late) / float64(counted) * 100
	} else {
		s.AttendancePct = 100
	}
	return s, nil
}

// SummariesByCourse aggregates marks per student for a whole course.
func (r *AttendanceRepository) SummariesByCourse(ctx context.Context, courseID int) ([]model.AttendanceSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id,
		   COUNT(*) FILTER (WHERE status = 'present'),
		   COUNT(*) FILTER (WHERE status = 'absent'),
		   COUNT(*) FILTER (WHERE status = 'late'),
		   COUNT(*) FILTER (WHERE status = 'excused'),
		   COUNT(*)
		 FROM attendance WHERE course_id = $1
		 GROUP BY student_id ORDER BY student_id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.AttendanceSummary
	for rows.Next() {
		s := model.AttendanceSummary{CourseID: courseID}
		if err := rows.Scan(&s.StudentID, &s.Present, &s.Absent, &s.Late, &s.Excused, &s.TotalSessions); err != nil {
			return nil, err
		}
		counted := s.TotalSessions - s.Excused
		if counted > 0 {
			s.AttendancePct = float64(s.Present+s.Late) / float64(counted) * 100
		} else {
			s.AttendancePct = 100
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
