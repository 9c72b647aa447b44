package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var ErrDuplicateGrade = errors.New("a grade already exists for this student and item")

// GradeRepository handles grade and grade modification data access.
type GradeRepository struct {
	pool *pgxpool.Pool
}

// NewGradeRepository creates a new GradeRepository.
func NewGradeRepository(pool *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{pool: pool}
}

const gradeColumns = `id, student_id, course_id, assignment_id, exam_id, category, points_earned, points_possible,
	percentage, letter_grade, status, is_late, late_penalty_pct, extra_credit, curve_adjustment, due_date,
	graded_by, created_at, updated_at`

func scanGrade(row interface{ Scan(...interface{}) error }) (*model.Grade, error) {
	g := &model.Grade{}
	err := row.Scan(&g.ID, &g.StudentID, &g.CourseID, &g.AssignmentID, &g.ExamID, &g.Category,
		&g.PointsEarned, &g.PointsPossible, &g.Percentage, &g.LetterGrade, &g.Status, &g.IsLate,
		&g.LatePenaltyPct, &g.ExtraCredit, &g.CurveAdjustment, &g.DueDate, &g.GradedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetByID retrieves a grade by ID.
func (r *GradeRepository) GetByID(ctx context.Context, id int) (*model.Grade, error) {
	return scanGrade(r.pool.QueryRow(ctx, `SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id))
}

// Create inserts a new grade with its precomputed percentage and letter.
func (r *GradeRepository) Create(ctx context.Context, g *model.Grade) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO grades (student_id, course_id, assignment_id, exam_id, category, points_earned, points_possible,
		                     percentage, letter_grade, status, is_late, late_penalty_pct, extra_credit, curve_adjustment,
		                     due_date, graded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id, created_at, updated_at`,
		g.StudentID, g.CourseID, g.AssignmentID, g.ExamID, g.Category, g.PointsEarned, g.PointsPossible,
		g.Percentage, g.LetterGrade, g.Status, g.IsLate, g.LatePenaltyPct, g.ExtraCredit, g.CurveAdjustment,
		g.DueDate, g.GradedBy,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateGrade
		}
		return err
	}
	return nil
}

// BulkCreate inserts a batch of grades with a single UNNEST statement and
// scans the generated IDs back into the batch in insert order. A zero
// assignment/exam reference becomes NULL.
func (r *GradeRepository) BulkCreate(ctx context.Context, grades []*model.Grade) error {
	n := len(grades)
	if n == 0 {
		return nil
	}

	studentIDs := make([]int, n)
	courseIDs := make([]int, n)
	assignmentIDs := make([]int, n)
	examIDs := make([]int, n)
	categories := make([]string, n)
	earned := make([]float64, n)
	possible := make([]float64, n)
	percentages := make([]float64, n)
	letters := make([]string, n)
	statuses := make([]string, n)
	isLate := make([]bool, n)
	penalties := make([]float64, n)
	extras := make([]float64, n)
	curves := make([]float64, n)
	dueDates := make([]time.Time, n)
	gradedBy := make([]int, n)

	for i, g := range grades {
		studentIDs[i] = g.StudentID
		courseIDs[i] = g.CourseID
		if g.AssignmentID != nil {
			assignmentIDs[i] = *g.AssignmentID
		}
		if g.ExamID != nil {
			examIDs[i] = *g.ExamID
		}
		categories[i] = string(g.Category)
		earned[i] = g.PointsEarned
		possible[i] = g.PointsPossible
		percentages[i] = g.Percentage
		letters[i] = g.LetterGrade
		statuses[i] = string(g.Status)
		isLate[i] = g.IsLate
		penalties[i] = g.LatePenaltyPct
		extras[i] = g.ExtraCredit
		curves[i] = g.CurveAdjustment
		dueDates[i] = g.DueDate
		gradedBy[i] = g.GradedBy
	}

	rows, err := r.pool.Query(ctx,
		`INSERT INTO grades (student_id, course_id, assignment_id, exam_id, category, points_earned, points_possible,
		                     percentage, letter_grade, status, is_late, late_penalty_pct, extra_credit, curve_adjustment,
		                     due_date, graded_by)
		 SELECT u.student_id, u.course_id, NULLIF(u.assignment_id, 0), NULLIF(u.exam_id, 0), u.category,
		        u.points_earned, u.points_possible, u.percentage, u.letter_grade, u.status, u.is_late,
		        u.late_penalty_pct, u.extra_credit, u.curve_adjustment, u.due_date, u.graded_by
		 FROM UNNEST(
			$1::int[], $2::int[], $3::int[], $4::int[], $5::text[],
			$6::float8[], $7::float8[], $8::float8[], $9::text[], $10::text[],
			$11::bool[], $12::float8[], $13::float8[], $14::float8[],
			$15::timestamptz[], $16::int[]
		 ) AS u (student_id, course_id, assignment_id, exam_id, category, points_earned, points_possible,
		         percentage, letter_grade, status, is_late, late_penalty_pct, extra_credit, curve_adjustment,
		         due_date, graded_by)
		 RETURNING id, created_at, updated_at`,
		studentIDs, courseIDs, assignmentIDs, examIDs, categories,
		earned, possible, percentages, letters, statuses,
		isLate, penalties, extras, curves, dueDates, gradedBy,
	)
	if err != nil {
		return bulkGradeErr(err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() && i < n {
		g := grades[i]
		if err := rows.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return err
		}
		i++
	}
	return bulkGradeErr(rows.Err())
}

func bulkGradeErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateGrade
	}
	return err
}

// Update rewrites a grade's score fields and recomputed derived values.
func (r *GradeRepository) Update(ctx context.Context, g *model.Grade) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE grades SET points_earned = $1, percentage = $2, letter_grade = $3, is_late = $4,
		        late_penalty_pct = $5, extra_credit = $6, curve_adjustment = $7, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		g.PointsEarned, g.Percentage, g.LetterGrade, g.IsLate, g.LatePenaltyPct, g.ExtraCredit, g.CurveAdjustment, g.ID,
	)
	return err
}

// Delete removes a grade.
func (r *GradeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	return err
}

// ListByStudentCourse retrieves all of a student's grades in one course.
// publishedOnly restricts to published grades for student-facing views.
func (r *GradeRepository) ListByStudentCourse(ctx context.Context, studentID, courseID int, publishedOnly bool) ([]model.Grade, error) {
	query := `SELECT ` + gradeColumns + ` FROM grades WHERE student_id = $1 AND course_id = $2`
	if publishedOnly {
		query += ` AND status = 'published'`
	}
	query += ` ORDER BY due_date ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		grades = append(grades, *g)
	}
	return grades, rows.Err()
}

// ListByCoursePaginated retrieves a course's grades with an optional
// student filter.
func (r *GradeRepository) ListByCoursePaginated(ctx context.Context, courseID int, studentID *int, limit, offset int) ([]model.Grade, int, error) {
	where := ` WHERE course_id = $1`
	countArgs := []interface{}{courseID}
	if studentID != nil {
		where += ` AND student_id = $2`
		countArgs = append(countArgs, *studentID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grades`+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append([]interface{}{}, countArgs...)
	query := `SELECT ` + gradeColumns + ` FROM grades` + where +
		` ORDER BY student_id, due_date LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		grades = append(grades, *g)
	}
	return grades, total, rows.Err()
}

// ListByStudentPaginated retrieves a student's published grades across
// courses, newest first.
func (r *GradeRepository) ListByStudentPaginated(ctx context.Context, studentID, limit, offset int) ([]model.Grade, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM grades WHERE student_id = $1 AND status = 'published'`, studentID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+gradeColumns+` FROM grades
		 WHERE student_id = $1 AND status = 'published'
		 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var grades []model.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, 0, err
		}
		grades = append(grades, *g)
	}
	return grades, total, rows.Err()
}

// PublishByCourse flips all draft grades in a course to published and
// returns the affected student IDs so their gradebook entries can be
// recomputed.
func (r *GradeRepository) PublishByCourse(ctx context.Context, courseID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE grades SET status = 'published', updated_at = CURRENT_TIMESTAMP
		 WHERE course_id = $1 AND status = 'draft'
		 RETURNING student_id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[int]bool)
	var studentIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			studentIDs = append(studentIDs, id)
		}
	}
	return studentIDs, rows.Err()
}

// CountDraftByProfessor returns the number of draft grades across all of a
// professor's courses.
func (r *GradeRepository) CountDraftByProfessor(ctx context.Context, professorID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM grades g
		 JOIN courses c ON c.id = g.course_id
		 WHERE c.professor_id = $1 AND g.status = 'draft'`, professorID,
	).Scan(&count)
	return count, err
}

// InsertModification appends an audit row for a grade change.
func (r *GradeRepository) InsertModification(ctx context.Context, m *model.GradeModification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO grade_modifications (grade_id, modified_by, old_points_earned, new_points_earned,
		                                  old_percentage, new_percentage, old_letter_grade, new_letter_grade, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		m.GradeID, m.ModifiedBy, m.OldPointsEarned, m.NewPointsEarned,
		m.OldPercentage, m.NewPercentage, m.OldLetterGrade, m.NewLetterGrade, m.Reason,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListModifications retrieves a grade's audit trail, newest first.
func (r *GradeRepository) ListModifications(ctx context.Context, gradeID int) ([]model.GradeModification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, grade_id, modified_by, old_points_earned, new_points_earned,
		        old_percentage, new_percentage, old_letter_grade, new_letter_grade, reason, created_at
		 FROM grade_modifications WHERE grade_id = $1 ORDER BY created_at DESC`, gradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []model.GradeModification
	for rows.Next() {
		var m model.GradeModification
		if err := rows.Scan(&m.ID, &m.GradeID, &m.ModifiedBy, &m.OldPointsEarned, &m.NewPointsEarned,
			&m.OldPercentage, &m.NewPercentage, &m.OldLetterGrade, &m.NewLetterGrade, &m.Reason, &m.CreatedAt); err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, rows.Err()
}
