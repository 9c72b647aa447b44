package service

import (
	"context"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
)

// AssignmentService handles assignment business logic.
type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignmentRepo *repository.AssignmentRepository) *AssignmentService {
	return &AssignmentService{assignmentRepo: assignmentRepo}
}

// GetByID retrieves an assignment.
func (s *AssignmentService) GetByID(ctx context.Context, id int) (*model.Assignment, error) {
	return s.assignmentRepo.GetByID(ctx, id)
}

// ListByCourse retrieves a course's assignments.
func (s *AssignmentService) ListByCourse(ctx context.Context, courseID int, publishedOnly bool) ([]model.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByCourse(ctx, courseID, publishedOnly)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	return assignments, nil
}

// Create inserts a new assignment.
func (s *AssignmentService) Create(ctx context.Context, a *model.Assignment) error {
	return s.assignmentRepo.Create(ctx, a)
}

// Update modifies an assignment.
func (s *AssignmentService) Update(ctx context.Context, a *model.Assignment) error {
	return s.assignmentRepo.Update(ctx, a)
}

// Publish makes an assignment visible to students.
func (s *AssignmentService) Publish(ctx context.Context, id int) error {
	return s.assignmentRepo.Publish(ctx, id)
}

// Delete removes an assignment without recorded grades.
func (s *AssignmentService) Delete(ctx context.Context, id int) error {
	return s.assignmentRepo.Delete(ctx, id)
}
