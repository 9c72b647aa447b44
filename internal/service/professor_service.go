package service

import (
	"context"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
)

// ProfessorService handles professor business logic.
type ProfessorService struct {
	professorRepo *repository.ProfessorRepository
}

// NewProfessorService creates a new ProfessorService.
func NewProfessorService(professorRepo *repository.ProfessorRepository) *ProfessorService {
	return &ProfessorService{professorRepo: professorRepo}
}

// GetByID retrieves a professor by ID.
func (s *ProfessorService) GetByID(ctx context.Context, id int) (*model.Professor, error) {
	return s.professorRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a professor by email.
func (s *ProfessorService) GetByEmail(ctx context.Context, email string) (*model.Professor, error) {
	return s.professorRepo.GetByEmail(ctx, email)
}

// Create inserts a new professor. The password hash must already be set.
func (s *ProfessorService) Create(ctx context.Context, p *model.Professor) error {
	return s.professorRepo.Create(ctx, p)
}
