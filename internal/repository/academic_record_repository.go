package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

// AcademicRecordRepository handles academic record data access.
type AcademicRecordRepository struct {
	pool *pgxpool.Pool
}

// NewAcademicRecordRepository creates a new AcademicRecordRepository.
func NewAcademicRecordRepository(pool *pgxpool.Pool) *AcademicRecordRepository {
	return &AcademicRecordRepository{pool: pool}
}

const academicRecordColumns = `ar.id, ar.student_id, ar.course_id, c.semester, c.year, ar.letter_grade,
	ar.credits_attempted, ar.credits_earned, ar.status, ar.major_course, ar.created_at, ar.updated_at`

// Upsert creates or replaces the record for (student, course).
func (r *AcademicRecordRepository) Upsert(ctx context.Context, rec *model.AcademicRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO academic_records (student_id, course_id, letter_grade, credits_attempted, credits_earned, status, major_course)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (student_id, course_id) DO UPDATE
		 SET letter_grade = EXCLUDED.letter_grade,
		     credits_attempted = EXCLUDED.credits_attempted,
		     credits_earned = EXCLUDED.credits_earned,
		     status = EXCLUDED.status,
		     major_course = EXCLUDED.major_course,
		     updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		rec.StudentID, rec.CourseID, rec.LetterGrade, rec.CreditsAttempted, rec.CreditsEarned, rec.Status, rec.MajorCourse,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

// GetByStudentCourse retrieves the record for one (student, course) pair.
func (r *AcademicRecordRepository) GetByStudentCourse(ctx context.Context, studentID, courseID int) (*model.AcademicRecord, error) {
	rec := &model.AcademicRecord{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+academicRecordColumns+`
		 FROM academic_records ar
		 JOIN courses c ON c.id = ar.course_id
		 WHERE ar.student_id = $1 AND ar.course_id = $2`,
		studentID, courseID,
	).Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Semester, &rec.Year, &rec.LetterGrade,
		&rec.CreditsAttempted, &rec.CreditsEarned, &rec.Status, &rec.MajorCourse, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListByStudent retrieves all academic records for a student, newest term
// first. Term data comes from the course row so records never drift from
// the offering they belong to.
func (r *AcademicRecordRepository) ListByStudent(ctx context.Context, studentID int) ([]model.AcademicRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+academicRecordColumns+`
		 FROM academic_records ar
		 JOIN courses c ON c.id = ar.course_id
		 WHERE ar.student_id = $1
		 ORDER BY c.year DESC, c.semester, c.code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AcademicRecord
	for rows.Next() {
		var rec model.AcademicRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Semester, &rec.Year, &rec.LetterGrade,
			&rec.CreditsAttempted, &rec.CreditsEarned, &rec.Status, &rec.MajorCourse, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByCoursePaginated retrieves records for one course.
func (r *AcademicRecordRepository) ListByCoursePaginated(ctx context.Context, courseID, limit, offset int) ([]model.AcademicRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM academic_records WHERE course_id = $1`, courseID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+academicRecordColumns+`
		 FROM academic_records ar
		 JOIN courses c ON c.id = ar.course_id
		 WHERE ar.course_id = $1
		 ORDER BY ar.student_id LIMIT $2 OFFSET $3`,
		courseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []model.AcademicRecord
	for rows.Next() {
		var rec model.AcademicRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Semester, &rec.Year, &rec.LetterGrade,
			&rec.CreditsAttempted, &rec.CreditsEarned, &rec.Status, &rec.MajorCourse, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
