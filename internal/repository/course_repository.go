package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var (
	ErrDuplicateCourseCode = errors.New("course with this code already exists for the term")
	ErrCourseHasGrades     = errors.New("course has recorded grades and cannot be deleted")
)

const courseColumns = `c.id, c.code, c.title, c.description, c.professor_id, c.credits, c.max_capacity,
	(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'registered'),
	c.semester, c.year, c.major_code, c.created_at, c.updated_at`

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row interface{ Scan(...interface{}) error }) (*model.Course, error) {
	c := &model.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Description, &c.ProfessorID, &c.Credits, &c.MaxCapacity,
		&c.EnrolledCount, &c.Semester, &c.Year, &c.MajorCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a course by ID, including its live enrolled count.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses c WHERE c.id = $1`, id))
}

// ListPaginated retrieves courses with pagination and optional filters.
func (r *CourseRepository) ListPaginated(ctx context.Context, professorID *int, semester *string, year *int, limit, offset int) ([]model.Course, int, error) {
	where := ``
	var args []interface{}
	addFilter := func(clause string, val interface{}) {
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		args = append(args, val)
		where += clause + `$` + strconv.Itoa(len(args))
	}
	if professorID != nil {
		addFilter(`c.professor_id = `, *professorID)
	}
	if semester != nil {
		addFilter(`c.semester = `, *semester)
	}
	if year != nil {
		addFilter(`c.year = `, *year)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses c`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + courseColumns + ` FROM courses c` + where +
		` ORDER BY c.year DESC, c.semester, c.code LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *c)
	}
	return courses, total, rows.Err()
}

// ListByStudent retrieves the courses a student is actively registered in.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+`
		 FROM courses c
		 JOIN enrollments e ON e.course_id = c.id
		 WHERE e.student_id = $1 AND e.status = 'registered'
		 ORDER BY c.year DESC, c.semester, c.code`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (code, title, description, professor_id, credits, max_capacity, semester, year, major_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		c.Code, c.Title, c.Description, c.ProfessorID, c.Credits, c.MaxCapacity, c.Semester, c.Year, c.MajorCode,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateCourseCode
		}
		return err
	}
	return nil
}

// Update modifies a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE courses SET title = $1, description = $2, credits = $3, max_capacity = $4,
		        semester = $5, year = $6, major_code = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		c.Title, c.Description, c.Credits, c.MaxCapacity, c.Semester, c.Year, c.MajorCode, c.ID,
	)
	return err
}

// Delete removes a course. Rejected while grades exist for it.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	var gradeCount int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grades WHERE course_id = $1`, id).Scan(&gradeCount); err != nil {
		return err
	}
	if gradeCount > 0 {
		return ErrCourseHasGrades
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	return err
}
