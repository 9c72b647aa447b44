package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository serves aggregate counts for the professor dashboard.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// Counts returns course, distinct-student, assignment and exam counts for
// one professor in a single round trip.
func (r *DashboardRepository) Counts(ctx context.Context, professorID int) (courses, students, assignments, exams int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM courses WHERE professor_id = $1),
		   (SELECT COUNT(DISTINCT e.student_id) FROM enrollments e
		      JOIN courses c ON c.id = e.course_id
		      WHERE c.professor_id = $1 AND e.status = 'registered'),
		   (SELECT COUNT(*) FROM assignments a
		      JOIN courses c ON c.id = a.course_id WHERE c.professor_id = $1),
		   (SELECT COUNT(*) FROM exams x
		      JOIN courses c ON c.id = x.course_id WHERE c.professor_id = $1)`,
		professorID,
	).Scan(&courses, &students, &assignments, &exams)
	return
}
