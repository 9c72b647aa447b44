package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
)

// ErrLetterGradeRequired is returned when a record is finalized as graded
// without a letter grade.
var ErrLetterGradeRequired = errors.New("graded records require a letter grade")

// AcademicRecordService handles academic records and GPA computation.
// GPA always uses the institutional default scale: transcripts are
// comparable across courses regardless of per-course gradebook scales.
type AcademicRecordService struct {
	cfg        *config.Config
	recordRepo *repository.AcademicRecordRepository
}

// NewAcademicRecordService creates a new AcademicRecordService.
func NewAcademicRecordService(cfg *config.Config, recordRepo *repository.AcademicRecordRepository) *AcademicRecordService {
	return &AcademicRecordService{cfg: cfg, recordRepo: recordRepo}
}

// Upsert creates or finalizes an academic record. Graded records must carry
// a letter known to the institutional scale.
func (s *AcademicRecordService) Upsert(ctx context.Context, rec *model.AcademicRecord) error {
	if rec.Status == grading.StatusGraded {
		if rec.LetterGrade == "" {
			return ErrLetterGradeRequired
		}
		if _, ok := grading.DefaultScale().QualityPoints(rec.LetterGrade); !ok {
			return fmt.Errorf("%w: unknown letter grade %q", grading.ErrInvalidGradeInput, rec.LetterGrade)
		}
	}
	return s.recordRepo.Upsert(ctx, rec)
}

// ListByStudent retrieves a student's academic records.
func (s *AcademicRecordService) ListByStudent(ctx context.Context, studentID int) ([]model.AcademicRecord, error) {
	records, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.AcademicRecord{}
	}
	return records, nil
}

// ListByCourse retrieves a course's academic records with pagination.
func (s *AcademicRecordService) ListByCourse(ctx context.Context, courseID, page, perPage int) ([]model.AcademicRecord, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	records, total, err := s.recordRepo.ListByCoursePaginated(ctx, courseID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if records == nil {
		records = []model.AcademicRecord{}
	}
	return records, paginationFor(page, perPage, total), nil
}

// ComputeGPA computes a student's GPA for the given scope.
func (s *AcademicRecordService) ComputeGPA(ctx context.Context, studentID int, scope grading.Scope) (grading.GPAResult, error) {
	records, err := s.gradingRecords(ctx, studentID)
	if err != nil {
		return grading.GPAResult{}, err
	}
	return grading.ComputeGPA(records, grading.DefaultScale(), scope)
}

// SemesterBreakdown computes a student's per-term GPA history in
// chronological order.
func (s *AcademicRecordService) SemesterBreakdown(ctx context.Context, studentID int) ([]grading.SemesterGPA, error) {
	records, err := s.gradingRecords(ctx, studentID)
	if err != nil {
		return nil, err
	}
	breakdown, err := grading.SemesterBreakdown(records, grading.DefaultScale(), s.cfg.SemesterOrder)
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		breakdown = []grading.SemesterGPA{}
	}
	return breakdown, nil
}

func (s *AcademicRecordService) gradingRecords(ctx context.Context, studentID int) ([]grading.AcademicRecord, error) {
	rows, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	records := make([]grading.AcademicRecord, 0, len(rows))
	for _, rec := range rows {
		records = append(records, grading.AcademicRecord{
			CourseID:         rec.CourseID,
			Semester:         rec.Semester,
			Year:             rec.Year,
			LetterGrade:      rec.LetterGrade,
			CreditsAttempted: rec.CreditsAttempted,
			CreditsEarned:    rec.CreditsEarned,
			Status:           rec.Status,
			MajorCourse:      rec.MajorCourse,
		})
	}
	return records, nil
}
