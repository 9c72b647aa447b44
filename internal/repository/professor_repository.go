package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/academica/academica-backend/internal/model"
)

var ErrDuplicateProfessorEmail = errors.New("professor with this email already exists")

// ProfessorRepository handles professor data access.
type ProfessorRepository struct {
	pool *pgxpool.Pool
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(pool *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{pool: pool}
}

// GetByID retrieves a professor by ID.
func (r *ProfessorRepository) GetByID(ctx context.Context, id int) (*model.Professor, error) {
	p := &model.Professor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, department, password_hash, created_at, updated_at
		 FROM professors WHERE id = $1`, id,
	).Scan(&p.ID, &p.Email, &p.Name, &p.Department, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail retrieves a professor by their unique email.
func (r *ProfessorRepository) GetByEmail(ctx context.Context, email string) (*model.Professor, error) {
	p := &model.Professor{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, department, password_hash, created_at, updated_at
		 FROM professors WHERE email = $1`, email,
	).Scan(&p.ID, &p.Email, &p.Name, &p.Department, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new professor.
func (r *ProfessorRepository) Create(ctx context.Context, p *model.Professor) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO professors (email, name, department, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.Email, p.Name, p.Department, p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProfessorEmail
		}
		return err
	}
	return nil
}
