package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var ErrAssignmentHasGrades = errors.New("assignment has recorded grades and cannot be deleted")

// AssignmentRepository handles assignment data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentColumns = `id, course_id, title, description, total_points, due_date, allow_late, late_penalty_pct, published, created_at, updated_at`

func scanAssignment(row interface{ Scan(...interface{}) error }) (*model.Assignment, error) {
	a := &model.Assignment{}
	err := row.Scan(&a.ID, &a.CourseID, &a.Title, &a.Description, &a.TotalPoints, &a.DueDate,
		&a.AllowLate, &a.LatePenaltyPct, &a.Published, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID retrieves an assignment by ID.
func (r *AssignmentRepository) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	return scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
}

// ListByCourse retrieves a course's assignments, due soonest first.
// publishedOnly restricts the list for student-facing views.
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int, publishedOnly bool) ([]model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE course_id = $1`
	if publishedOnly {
		query += ` AND published = TRUE`
	}
	query += ` ORDER BY due_date ASC`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// CountByCourse returns the number of published assignments in a course.
func (r *AssignmentRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments WHERE course_id = $1 AND published = TRUE`, courseID,
	).Scan(&count)
	return count, err
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO assignments (course_id, title, description, total_points, due_date, allow_late, late_penalty_pct)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, published, created_at, updated_at`,
		a.CourseID, a.Title, a.Description, a.TotalPoints, a.DueDate, a.AllowLate, a.LatePenaltyPct,
	).Scan(&a.ID, &a.Published, &a.CreatedAt, &a.UpdatedAt)
	return err
}

// Update modifies an assignment.
func (r *AssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments SET title = $1, description = $2, total_points = $3, due_date = $4,
		        allow_late = $5, late_penalty_pct = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		a.Title, a.Description, a.TotalPoints, a.DueDate, a.AllowLate, a.LatePenaltyPct, a.ID,
	)
	return err
}

// Publish makes an assignment visible to students.
func (r *AssignmentRepository) Publish(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assignments SET published = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

// Delete removes an assignment. A restrict FK on grades surfaces as a
// dependency error.
func (r *AssignmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrAssignmentHasGrades
		}
		return err
	}
	return nil
}
