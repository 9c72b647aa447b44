package service

import (
	"context"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
)

// ExamService handles exam business logic.
type ExamService struct {
	examRepo *repository.ExamRepository
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository) *ExamService {
	return &ExamService{examRepo: examRepo}
}

// GetByID retrieves an exam.
func (s *ExamService) GetByID(ctx context.Context, id int) (*model.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

// ListByCourse retrieves a course's exams.
func (s *ExamService) ListByCourse(ctx context.Context, courseID int, publishedOnly bool) ([]model.Exam, error) {
	exams, err := s.examRepo.ListByCourse(ctx, courseID, publishedOnly)
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// Create inserts a new exam.
func (s *ExamService) Create(ctx context.Context, e *model.Exam) error {
	return s.examRepo.Create(ctx, e)
}

// Update modifies an exam.
func (s *ExamService) Update(ctx context.Context, e *model.Exam) error {
	return s.examRepo.Update(ctx, e)
}

// Publish makes an exam visible to students.
func (s *ExamService) Publish(ctx context.Context, id int) error {
	return s.examRepo.Publish(ctx, id)
}

// Delete removes an exam without recorded grades.
func (s *ExamService) Delete(ctx context.Context, id int) error {
	return s.examRepo.Delete(ctx, id)
}
