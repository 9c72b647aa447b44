package service

import (
	"context"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
)

// DashboardService composes the professor landing-page summary.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	gradeRepo     *repository.GradeRepository
	gradebookRepo *repository.GradebookRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardRepo *repository.DashboardRepository,
	gradeRepo *repository.GradeRepository,
	gradebookRepo *repository.GradebookRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		gradeRepo:     gradeRepo,
		gradebookRepo: gradebookRepo,
	}
}

// Summary aggregates counts across all of a professor's courses.
func (s *DashboardService) Summary(ctx context.Context, professorID int) (*model.DashboardSummary, error) {
	courses, students, assignments, exams, err := s.dashboardRepo.Counts(ctx, professorID)
	if err != nil {
		return nil, err
	}

	draftGrades, err := s.gradeRepo.CountDraftByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	atRisk, err := s.gradebookRepo.CountAtRiskByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	avg, err := s.gradebookRepo.AverageGradeByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}

	return &model.DashboardSummary{
		CourseCount:     courses,
		StudentCount:    students,
		AssignmentCount: assignments,
		ExamCount:       exams,
		DraftGrades:     draftGrades,
		StudentsAtRisk:  atRisk,
		AverageGrade:    avg,
	}, nil
}
