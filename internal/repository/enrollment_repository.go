package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var (
	ErrAlreadyRegistered = errors.New("student is already registered for this course")
	ErrNotRegistered     = errors.New("student is not registered for this course")
	ErrCourseFull        = errors.New("course is at capacity")
)

// EnrollmentRepository handles course registration data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// Register enrolls a student into a course. The course row is locked for
// the duration of the transaction so the capacity check and the insert are
// atomic under concurrent registrations.
func (r *EnrollmentRepository) Register(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var maxCapacity int
	if err := tx.QueryRow(ctx,
		`SELECT max_capacity FROM courses WHERE id = $1 FOR UPDATE`, courseID,
	).Scan(&maxCapacity); err != nil {
		return nil, err
	}

	var registered int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'registered'`, courseID,
	).Scan(&registered); err != nil {
		return nil, err
	}
	if registered >= maxCapacity {
		return nil, ErrCourseFull
	}

	e := &model.Enrollment{StudentID: studentID, CourseID: courseID, Status: model.EnrollmentRegistered}
	err = tx.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, course_id, status)
		 VALUES ($1, $2, 'registered')
		 ON CONFLICT (student_id, course_id) DO UPDATE
		 SET status = 'registered', registered_at = CURRENT_TIMESTAMP, dropped_at = NULL
		 WHERE enrollments.status = 'dropped'
		 RETURNING id, registered_at`,
		studentID, courseID,
	).Scan(&e.ID, &e.RegisteredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict on an active registration: the WHERE filtered it out.
			return nil, ErrAlreadyRegistered
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Drop marks a registration as dropped.
func (r *EnrollmentRepository) Drop(ctx context.Context, studentID, courseID int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status = 'dropped', dropped_at = CURRENT_TIMESTAMP
		 WHERE student_id = $1 AND course_id = $2 AND status = 'registered'`,
		studentID, courseID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotRegistered
	}
	return nil
}

// IsRegistered reports whether the student holds an active registration.
func (r *EnrollmentRepository) IsRegistered(ctx context.Context, studentID, courseID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2 AND status = 'registered')`,
		studentID, courseID,
	).Scan(&exists)
	return exists, err
}

// ListByStudent retrieves a student's active registrations.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, course_id, status, registered_at, dropped_at
		 FROM enrollments WHERE student_id = $1 AND status = 'registered'
		 ORDER BY registered_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.RegisteredAt, &e.DroppedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ListRegisteredStudentIDs retrieves the IDs of all actively registered
// students in a course. Used by the gradebook recompute path.
func (r *EnrollmentRepository) ListRegisteredStudentIDs(ctx context.Context, courseID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT student_id FROM enrollments WHERE course_id = $1 AND status = 'registered' ORDER BY student_id`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListRosterPaginated retrieves the course roster with student identity.
func (r *EnrollmentRepository) ListRosterPaginated(ctx context.Context, courseID, limit, offset int) ([]model.EnrolledStudent, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'registered'`, courseID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT e.id, s.id, s.student_number, s.name, s.email, e.registered_at
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 WHERE e.course_id = $1 AND e.status = 'registered'
		 ORDER BY s.name LIMIT $2 OFFSET $3`,
		courseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var roster []model.EnrolledStudent
	for rows.Next() {
		var es model.EnrolledStudent
		if err := rows.Scan(&es.EnrollmentID, &es.StudentID, &es.StudentNumber, &es.Name, &es.Email, &es.RegisteredAt); err != nil {
			return nil, 0, err
		}
		roster = append(roster, es)
	}
	return roster, total, rows.Err()
}
