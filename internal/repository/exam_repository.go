package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var ErrExamHasGrades = errors.New("exam has recorded grades and cannot be deleted")

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `id, course_id, title, description, total_points, exam_date, published, created_at, updated_at`

func scanExam(row interface{ Scan(...interface{}) error }) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.TotalPoints, &e.ExamDate,
		&e.Published, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID retrieves an exam by ID.
func (r *ExamRepository) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx, `SELECT `+examColumns+` FROM exams WHERE id = $1`, id))
}

// ListByCourse retrieves a course's exams in date order.
func (r *ExamRepository) ListByCourse(ctx context.Context, courseID int, publishedOnly bool) ([]model.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams WHERE course_id = $1`
	if publishedOnly {
		query += ` AND published = TRUE`
	}
	query += ` ORDER BY exam_date ASC`

	rows, err := r.pool.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *e)
	}
	return exams, rows.Err()
}

// CountByCourse returns the number of published exams in a course.
func (r *ExamRepository) CountByCourse(ctx context.Context, courseID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exams WHERE course_id = $1 AND published = TRUE`, courseID,
	).Scan(&count)
	return count, err
}

// Create inserts a new exam.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exams (course_id, title, description, total_points, exam_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, published, created_at, updated_at`,
		e.CourseID, e.Title, e.Description, e.TotalPoints, e.ExamDate,
	).Scan(&e.ID, &e.Published, &e.CreatedAt, &e.UpdatedAt)
	return err
}

// Update modifies an exam.
func (r *ExamRepository) Update(ctx context.Context, e *model.Exam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET title = $1, description = $2, total_points = $3, exam_date = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		e.Title, e.Description, e.TotalPoints, e.ExamDate, e.ID,
	)
	return err
}

// Publish makes an exam visible to students.
func (r *ExamRepository) Publish(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET published = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	return err
}

// Delete removes an exam.
func (r *ExamRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrExamHasGrades
		}
		return err
	}
	return nil
}
