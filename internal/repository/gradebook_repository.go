package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

// GradebookRepository handles gradebook configuration and entry snapshots.
type GradebookRepository struct {
	pool *pgxpool.Pool
}

// NewGradebookRepository creates a new GradebookRepository.
func NewGradebookRepository(pool *pgxpool.Pool) *GradebookRepository {
	return &GradebookRepository{pool: pool}
}

// GetByCourse retrieves a course's gradebook configuration.
func (r *GradebookRepository) GetByCourse(ctx context.Context, courseID int) (*model.Gradebook, error) {
	g := &model.Gradebook{}
	var scaleJSON []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, assignment_weight_pct, exam_weight_pct, participation_weight_pct,
		        drop_lowest_assignments, drop_lowest_exams, curve_enabled, curve_pct, scale, created_at, updated_at
		 FROM gradebooks WHERE course_id = $1`, courseID,
	).Scan(&g.ID, &g.CourseID, &g.AssignmentWeightPct, &g.ExamWeightPct, &g.ParticipationWeightPct,
		&g.DropLowestAssignments, &g.DropLowestExams, &g.CurveEnabled, &g.CurvePct, &scaleJSON, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(scaleJSON) > 0 {
		if err := json.Unmarshal(scaleJSON, &g.Scale); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Upsert creates or replaces a course's gradebook configuration.
func (r *GradebookRepository) Upsert(ctx context.Context, g *model.Gradebook) error {
	var scaleJSON []byte
	if len(g.Scale) > 0 {
		var err error
		scaleJSON, err = json.Marshal(g.Scale)
		if err != nil {
			return err
		}
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO gradebooks (course_id, assignment_weight_pct, exam_weight_pct, participation_weight_pct,
		                         drop_lowest_assignments, drop_lowest_exams, curve_enabled, curve_pct, scale)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (course_id) DO UPDATE
		 SET assignment_weight_pct = EXCLUDED.assignment_weight_pct,
		     exam_weight_pct = EXCLUDED.exam_weight_pct,
		     participation_weight_pct = EXCLUDED.participation_weight_pct,
		     drop_lowest_assignments = EXCLUDED.drop_lowest_assignments,
		     drop_lowest_exams = EXCLUDED.drop_lowest_exams,
		     curve_enabled = EXCLUDED.curve_enabled,
		     curve_pct = EXCLUDED.curve_pct,
		     scale = EXCLUDED.scale,
		     updated_at = CURRENT_TIMESTAMP
		 RETURNING id, created_at, updated_at`,
		g.CourseID, g.AssignmentWeightPct, g.ExamWeightPct, g.ParticipationWeightPct,
		g.DropLowestAssignments, g.DropLowestExams, g.CurveEnabled, g.CurvePct, scaleJSON,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

const entryColumns = `ge.id, ge.course_id, ge.student_id, ge.overall_percentage, ge.letter_grade,
	ge.assignment_average, ge.exam_average, ge.participation_average,
	ge.assignments_graded, ge.assignments_total, ge.exams_graded, ge.exams_total,
	ge.is_at_risk, ge.risk_factors, ge.last_calculated`

func scanEntry(row interface{ Scan(...interface{}) error }, withName bool) (*model.GradebookEntry, error) {
	e := &model.GradebookEntry{}
	var factorsJSON []byte
	dest := []interface{}{&e.ID, &e.CourseID, &e.StudentID, &e.OverallPercentage, &e.LetterGrade,
		&e.AssignmentAverage, &e.ExamAverage, &e.ParticipationAverage,
		&e.AssignmentsGraded, &e.AssignmentsTotal, &e.ExamsGraded, &e.ExamsTotal,
		&e.IsAtRisk, &factorsJSON, &e.LastCalculated}
	if withName {
		dest = append(dest, &e.StudentName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(factorsJSON) > 0 {
		if err := json.Unmarshal(factorsJSON, &e.RiskFactors); err != nil {
			return nil, err
		}
	}
	if e.RiskFactors == nil {
		e.RiskFactors = []string{}
	}
	return e, nil
}

// GetEntry retrieves one student's snapshot in a course.
func (r *GradebookRepository) GetEntry(ctx context.Context, courseID, studentID int) (*model.GradebookEntry, error) {
	return scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM gradebook_entries ge WHERE ge.course_id = $1 AND ge.student_id = $2`,
		courseID, studentID), false)
}

// UpsertEntry writes a single recomputed snapshot.
func (r *GradebookRepository) UpsertEntry(ctx context.Context, e *model.GradebookEntry) error {
	factorsJSON, err := json.Marshal(e.RiskFactors)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO gradebook_entries (course_id, student_id, overall_percentage, letter_grade,
		                                assignment_average, exam_average, participation_average,
		                                assignments_graded, assignments_total, exams_graded, exams_total,
		                                is_at_risk, risk_factors, last_calculated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP)
		 ON CONFLICT (course_id, student_id) DO UPDATE
		 SET overall_percentage = EXCLUDED.overall_percentage,
		     letter_grade = EXCLUDED.letter_grade,
		     assignment_average = EXCLUDED.assignment_average,
		     exam_average = EXCLUDED.exam_average,
		     participation_average = EXCLUDED.participation_average,
		     assignments_graded = EXCLUDED.assignments_graded,
		     assignments_total = EXCLUDED.assignments_total,
		     exams_graded = EXCLUDED.exams_graded,
		     exams_total = EXCLUDED.exams_total,
		     is_at_risk = EXCLUDED.is_at_risk,
		     risk_factors = EXCLUDED.risk_factors,
		     last_calculated = CURRENT_TIMESTAMP
		 RETURNING id, last_calculated`,
		e.CourseID, e.StudentID, e.OverallPercentage, e.LetterGrade,
		e.AssignmentAverage, e.ExamAverage, e.ParticipationAverage,
		e.AssignmentsGraded, e.AssignmentsTotal, e.ExamsGraded, e.ExamsTotal,
		e.IsAtRisk, factorsJSON,
	).Scan(&e.ID, &e.LastCalculated)
}

// BulkUpsertEntries writes a batch of recomputed snapshots with a single
// UNNEST statement.
func (r *GradebookRepository) BulkUpsertEntries(ctx context.Context, entries []*model.GradebookEntry) error {
	n := len(entries)
	if n == 0 {
		return nil
	}

	courseIDs := make([]int, n)
	studentIDs := make([]int, n)
	overalls := make([]float64, n)
	letters := make([]string, n)
	assignAvgs := make([]float64, n)
	examAvgs := make([]float64, n)
	partAvgs := make([]float64, n)
	assignGraded := make([]int, n)
	assignTotals := make([]int, n)
	examsGraded := make([]int, n)
	examsTotals := make([]int, n)
	atRisk := make([]bool, n)
	factors := make([]string, n)

	for i, e := range entries {
		courseIDs[i] = e.CourseID
		studentIDs[i] = e.StudentID
		overalls[i] = e.OverallPercentage
		letters[i] = e.LetterGrade
		assignAvgs[i] = e.AssignmentAverage
		examAvgs[i] = e.ExamAverage
		partAvgs[i] = e.ParticipationAverage
		assignGraded[i] = e.AssignmentsGraded
		assignTotals[i] = e.AssignmentsTotal
		examsGraded[i] = e.ExamsGraded
		examsTotals[i] = e.ExamsTotal
		atRisk[i] = e.IsAtRisk
		raw, err := json.Marshal(e.RiskFactors)
		if err != nil {
			return err
		}
		factors[i] = string(raw)
	}

	query := `
		INSERT INTO gradebook_entries (course_id, student_id, overall_percentage, letter_grade,
		                               assignment_average, exam_average, participation_average,
		                               assignments_graded, assignments_total, exams_graded, exams_total,
		                               is_at_risk, risk_factors, last_calculated)
		SELECT u.course_id, u.student_id, u.overall_percentage, u.letter_grade,
		       u.assignment_average, u.exam_average, u.participation_average,
		       u.assignments_graded, u.assignments_total, u.exams_graded, u.exams_total,
		       u.is_at_risk, u.risk_factors::jsonb, CURRENT_TIMESTAMP
		FROM UNNEST(
			$1::int[], $2::int[], $3::float8[], $4::text[],
			$5::float8[], $6::float8[], $7::float8[],
			$8::int[], $9::int[], $10::int[], $11::int[],
			$12::bool[], $13::text[]
		) AS u (course_id, student_id, overall_percentage, letter_grade,
		        assignment_average, exam_average, participation_average,
		        assignments_graded, assignments_total, exams_graded, exams_total,
		        is_at_risk, risk_factors)
		ON CONFLICT (course_id, student_id) DO UPDATE
		SET overall_percentage = EXCLUDED.overall_percentage,
		    letter_grade = EXCLUDED.letter_grade,
		    assignment_average = EXCLUDED.assignment_average,
		    exam_average = EXCLUDED.exam_average,
		    participation_average = EXCLUDED.participation_average,
		    assignments_graded = EXCLUDED.assignments_graded,
		    assignments_total = EXCLUDED.assignments_total,
		    exams_graded = EXCLUDED.exams_graded,
		    exams_total = EXCLUDED.exams_total,
		    is_at_risk = EXCLUDED.is_at_risk,
		    risk_factors = EXCLUDED.risk_factors,
		    last_calculated = CURRENT_TIMESTAMP
	`

	_, err := r.pool.Exec(ctx, query,
		courseIDs, studentIDs, overalls, letters,
		assignAvgs, examAvgs, partAvgs,
		assignGraded, assignTotals, examsGraded, examsTotals,
		atRisk, factors,
	)
	return err
}

// ListEntriesPaginated retrieves a course's snapshots with student names.
func (r *GradebookRepository) ListEntriesPaginated(ctx context.Context, courseID int, atRiskOnly bool, limit, offset int) ([]model.GradebookEntry, int, error) {
	where := ` WHERE ge.course_id = $1`
	if atRiskOnly {
		where += ` AND ge.is_at_risk = TRUE`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM gradebook_entries ge`+where, courseID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+`, s.name
		 FROM gradebook_entries ge
		 JOIN students s ON s.id = ge.student_id`+where+`
		 ORDER BY s.name LIMIT $2 OFFSET $3`,
		courseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []model.GradebookEntry
	for rows.Next() {
		e, err := scanEntry(rows, true)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *e)
	}
	return entries, total, rows.Err()
}

// ListEntryPercentages retrieves the overall percentages of all snapshots
// in a course, the input to course statistics.
func (r *GradebookRepository) ListEntryPercentages(ctx context.Context, courseID int) ([]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT overall_percentage FROM gradebook_entries WHERE course_id = $1`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var percentages []float64
	for rows.Next() {
		var pct float64
		if err := rows.Scan(&pct); err != nil {
			return nil, err
		}
		percentages = append(percentages, pct)
	}
	return percentages, rows.Err()
}

// CountAtRiskByProfessor returns the at-risk snapshot count across a
// professor's courses.
func (r *GradebookRepository) CountAtRiskByProfessor(ctx context.Context, professorID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM gradebook_entries ge
		 JOIN courses c ON c.id = ge.course_id
		 WHERE c.professor_id = $1 AND ge.is_at_risk = TRUE`, professorID,
	).Scan(&count)
	return count, err
}

// AverageGradeByProfessor returns the mean snapshot percentage across a
// professor's courses, nil when no snapshots exist.
func (r *GradebookRepository) AverageGradeByProfessor(ctx context.Context, professorID int) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx,
		`SELECT AVG(ge.overall_percentage) FROM gradebook_entries ge
		 JOIN courses c ON c.id = ge.course_id
		 WHERE c.professor_id = $1`, professorID,
	).Scan(&avg)
	return avg, err
}
