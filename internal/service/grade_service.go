package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
)

// Grade entry errors.
var (
	ErrGradeTargetRequired = errors.New("assignment or exam reference required for this category")
	ErrGradeTargetMismatch = errors.New("referenced item does not belong to this course")
	ErrStudentNotEnrolled  = errors.New("student is not registered for this course")
)

// GradeService handles grade entry, correction auditing and publication.
type GradeService struct {
	gradeRepo      *repository.GradeRepository
	assignmentRepo *repository.AssignmentRepository
	examRepo       *repository.ExamRepository
	enrollmentRepo *repository.EnrollmentRepository
	gradebook      *GradebookService
	log            zerolog.Logger
}

// NewGradeService creates a new GradeService.
func NewGradeService(
	gradeRepo *repository.GradeRepository,
	assignmentRepo *repository.AssignmentRepository,
	examRepo *repository.ExamRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	gradebook *GradebookService,
	log zerolog.Logger,
) *GradeService {
	return &GradeService{
		gradeRepo:      gradeRepo,
		assignmentRepo: assignmentRepo,
		examRepo:       examRepo,
		enrollmentRepo: enrollmentRepo,
		gradebook:      gradebook,
		log:            log.With().Str("component", "grade_service").Logger(),
	}
}

// Create records a draft grade. The percentage and letter are computed
// through the normalization rules against the course scale, then stored
// denormalized alongside the raw score.
func (s *GradeService) Create(ctx context.Context, courseID, professorID int, req *model.CreateGradeRequest) (*model.Grade, error) {
	g, err := s.buildGrade(ctx, courseID, professorID, req)
	if err != nil {
		return nil, err
	}

	if err := s.gradeRepo.Create(ctx, g); err != nil {
		return nil, err
	}

	s.enqueueRecompute(ctx, courseID, g.StudentID)
	return g, nil
}

// buildGrade validates a grade request against the enrollment and its
// target item, then normalizes the score. Nothing is persisted.
func (s *GradeService) buildGrade(ctx context.Context, courseID, professorID int, req *model.CreateGradeRequest) (*model.Grade, error) {
	registered, err := s.enrollmentRepo.IsRegistered(ctx, req.StudentID, courseID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrStudentNotEnrolled
	}

	g := &model.Grade{
		StudentID:       req.StudentID,
		CourseID:        courseID,
		Category:        grading.Category(req.Category),
		PointsEarned:    req.PointsEarned,
		PointsPossible:  req.PointsPossible,
		Status:          model.GradeDraft,
		IsLate:          req.IsLate,
		ExtraCredit:     req.ExtraCredit,
		CurveAdjustment: req.CurveAdjustment,
		GradedBy:        professorID,
		DueDate:         time.Now(),
	}

	switch g.Category {
	case grading.CategoryAssignment:
		if req.AssignmentID == nil {
			return nil, ErrGradeTargetRequired
		}
		a, err := s.assignmentRepo.GetByID(ctx, *req.AssignmentID)
		if err != nil {
			return nil, err
		}
		if a.CourseID != courseID {
			return nil, ErrGradeTargetMismatch
		}
		g.AssignmentID = req.AssignmentID
		g.PointsPossible = a.TotalPoints
		g.DueDate = a.DueDate
		if req.IsLate && a.AllowLate {
			g.LatePenaltyPct = a.LatePenaltyPct
		}

	case grading.CategoryExam:
		if req.ExamID == nil {
			return nil, ErrGradeTargetRequired
		}
		e, err := s.examRepo.GetByID(ctx, *req.ExamID)
		if err != nil {
			return nil, err
		}
		if e.CourseID != courseID {
			return nil, ErrGradeTargetMismatch
		}
		g.ExamID = req.ExamID
		g.PointsPossible = e.TotalPoints
		g.DueDate = e.ExamDate

	case grading.CategoryParticipation:
		if req.PointsPossible <= 0 {
			return nil, grading.ErrInvalidGradeInput
		}
	}

	if err := s.normalize(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// BulkCreate records many draft grades with a single insert. Every row is
// validated and normalized first; any bad row rejects the whole batch.
func (s *GradeService) BulkCreate(ctx context.Context, courseID, professorID int, req *model.BulkGradeRequest) ([]model.Grade, error) {
	grades := make([]*model.Grade, 0, len(req.Grades))
	for i := range req.Grades {
		g, err := s.buildGrade(ctx, courseID, professorID, &req.Grades[i])
		if err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}

	if err := s.gradeRepo.BulkCreate(ctx, grades); err != nil {
		return nil, err
	}

	out := make([]model.Grade, 0, len(grades))
	studentIDs := make([]int, 0, len(grades))
	seen := make(map[int]bool, len(grades))
	for _, g := range grades {
		out = append(out, *g)
		if !seen[g.StudentID] {
			seen[g.StudentID] = true
			studentIDs = append(studentIDs, g.StudentID)
		}
	}

	if err := s.gradebook.EnqueueRecompute(ctx, courseID, studentIDs...); err != nil {
		s.log.Error().Err(err).Int("course_id", courseID).Msg("recompute enqueue failed after bulk insert")
	}
	return out, nil
}

// Update corrects a grade and appends an audit row capturing the change
// and its reason.
func (s *GradeService) Update(ctx context.Context, gradeID, professorID int, req *model.UpdateGradeRequest) (*model.Grade, error) {
	g, err := s.gradeRepo.GetByID(ctx, gradeID)
	if err != nil {
		return nil, err
	}

	mod := &model.GradeModification{
		GradeID:         g.ID,
		ModifiedBy:      professorID,
		OldPointsEarned: g.PointsEarned,
		OldPercentage:   g.Percentage,
		OldLetterGrade:  g.LetterGrade,
		Reason:          req.Reason,
	}

	g.PointsEarned = req.PointsEarned
	g.IsLate = req.IsLate
	g.ExtraCredit = req.ExtraCredit
	g.CurveAdjustment = req.CurveAdjustment

	// The stored penalty reflects the late status at entry time, so a
	// correction that flips IsLate must re-resolve it from the assignment.
	g.LatePenaltyPct = 0
	if g.AssignmentID != nil {
		a, err := s.assignmentRepo.GetByID(ctx, *g.AssignmentID)
		if err != nil {
			return nil, err
		}
		if g.IsLate && a.AllowLate {
			g.LatePenaltyPct = a.LatePenaltyPct
		}
	}

	if err := s.normalize(ctx, g); err != nil {
		return nil, err
	}

	mod.NewPointsEarned = g.PointsEarned
	mod.NewPercentage = g.Percentage
	mod.NewLetterGrade = g.LetterGrade

	if err := s.gradeRepo.Update(ctx, g); err != nil {
		return nil, err
	}
	if err := s.gradeRepo.InsertModification(ctx, mod); err != nil {
		return nil, err
	}

	s.enqueueRecompute(ctx, g.CourseID, g.StudentID)
	return g, nil
}

// GetByID retrieves a grade.
func (s *GradeService) GetByID(ctx context.Context, gradeID int) (*model.Grade, error) {
	return s.gradeRepo.GetByID(ctx, gradeID)
}

// Delete removes a grade and queues a recompute for its owner.
func (s *GradeService) Delete(ctx context.Context, gradeID int) error {
	g, err := s.gradeRepo.GetByID(ctx, gradeID)
	if err != nil {
		return err
	}
	if err := s.gradeRepo.Delete(ctx, gradeID); err != nil {
		return err
	}
	s.enqueueRecompute(ctx, g.CourseID, g.StudentID)
	return nil
}

// PublishCourse flips all draft grades in a course to published and queues
// recomputes for every affected student.
func (s *GradeService) PublishCourse(ctx context.Context, courseID int) (int, error) {
	studentIDs, err := s.gradeRepo.PublishByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if len(studentIDs) > 0 {
		if err := s.gradebook.EnqueueRecompute(ctx, courseID, studentIDs...); err != nil {
			s.log.Error().Err(err).Int("course_id", courseID).Msg("recompute enqueue failed after publish")
		}
	}
	return len(studentIDs), nil
}

// ListByCourse retrieves a course's grades with an optional student filter.
func (s *GradeService) ListByCourse(ctx context.Context, courseID int, studentID *int, page, perPage int) ([]model.Grade, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	grades, total, err := s.gradeRepo.ListByCoursePaginated(ctx, courseID, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if grades == nil {
		grades = []model.Grade{}
	}
	return grades, paginationFor(page, perPage, total), nil
}

// ListForStudent retrieves a student's published grades across courses.
func (s *GradeService) ListForStudent(ctx context.Context, studentID, page, perPage int) ([]model.Grade, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	grades, total, err := s.gradeRepo.ListByStudentPaginated(ctx, studentID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if grades == nil {
		grades = []model.Grade{}
	}
	return grades, paginationFor(page, perPage, total), nil
}

// Modifications retrieves a grade's audit trail.
func (s *GradeService) Modifications(ctx context.Context, gradeID int) ([]model.GradeModification, error) {
	mods, err := s.gradeRepo.ListModifications(ctx, gradeID)
	if err != nil {
		return nil, err
	}
	if mods == nil {
		mods = []model.GradeModification{}
	}
	return mods, nil
}

// normalize recomputes the stored percentage and letter through the course
// scale.
func (s *GradeService) normalize(ctx context.Context, g *model.Grade) error {
	scale, err := s.gradebook.CourseScale(ctx, g.CourseID)
	if err != nil {
		return err
	}

	norm, err := grading.Normalize(gradeToItem(g), scale)
	if err != nil {
		return err
	}
	g.Percentage = norm.Percentage
	g.LetterGrade = norm.LetterGrade
	return nil
}

func (s *GradeService) enqueueRecompute(ctx context.Context, courseID, studentID int) {
	if err := s.gradebook.EnqueueRecompute(ctx, courseID, studentID); err != nil {
		s.log.Error().Err(err).Int("course_id", courseID).Int("student_id", studentID).
			Msg("recompute enqueue failed")
	}
}
