package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
)

// ErrNotCourseOwner is returned when a professor operates on a course they
// do not teach.
var ErrNotCourseOwner = errors.New("course belongs to another professor")

// CourseService handles course catalog and registration business logic.
type CourseService struct {
	courseRepo     *repository.CourseRepository
	enrollmentRepo *repository.EnrollmentRepository
	recordRepo     *repository.AcademicRecordRepository
	log            zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	recordRepo *repository.AcademicRecordRepository,
	log zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		recordRepo:     recordRepo,
		log:            log.With().Str("component", "course_service").Logger(),
	}
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetOwned retrieves a course and verifies the professor teaches it.
func (s *CourseService) GetOwned(ctx context.Context, courseID, professorID int) (*model.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.ProfessorID != professorID {
		return nil, ErrNotCourseOwner
	}
	return course, nil
}

// ListCatalog retrieves courses with pagination and optional term filters.
func (s *CourseService) ListCatalog(ctx context.Context, professorID *int, semester *string, year *int, page, perPage int) ([]model.Course, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)

	courses, total, err := s.courseRepo.ListPaginated(ctx, professorID, semester, year, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}

	return courses, paginationFor(page, perPage, total), nil
}

// Create inserts a new course owned by the professor.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Create(ctx, course)
}

// Update modifies a course after an ownership check.
func (s *CourseService) Update(ctx context.Context, course *model.Course, professorID int) error {
	if _, err := s.GetOwned(ctx, course.ID, professorID); err != nil {
		return err
	}
	return s.courseRepo.Update(ctx, course)
}

// Delete removes a course after an ownership check.
func (s *CourseService) Delete(ctx context.Context, courseID, professorID int) error {
	if _, err := s.GetOwned(ctx, courseID, professorID); err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, courseID)
}

// Register enrolls a student and opens a pending academic record carrying
// the course's credit load.
func (s *CourseService) Register(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollmentRepo.Register(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	rec := &model.AcademicRecord{
		StudentID:        studentID,
		CourseID:         courseID,
		CreditsAttempted: course.Credits,
		Status:           grading.StatusPending,
		MajorCourse:      course.MajorCode != "",
	}
	if err := s.recordRepo.Upsert(ctx, rec); err != nil {
		// Registration stands; the record can be opened later by grading.
		s.log.Error().Err(err).Int("student_id", studentID).Int("course_id", courseID).
			Msg("failed to open pending academic record")
	}

	return enrollment, nil
}

// Drop withdraws a student from a course and marks the academic record
// withdrawn.
func (s *CourseService) Drop(ctx context.Context, studentID, courseID int) error {
	if err := s.enrollmentRepo.Drop(ctx, studentID, courseID); err != nil {
		return err
	}

	rec, err := s.recordRepo.GetByStudentCourse(ctx, studentID, courseID)
	if err != nil {
		// No record yet: nothing to mark.
		return nil
	}
	rec.Status = grading.StatusWithdrawn
	return s.recordRepo.Upsert(ctx, rec)
}

// ListStudentCourses retrieves the courses a student is registered in.
func (s *CourseService) ListStudentCourses(ctx context.Context, studentID int) ([]model.Course, error) {
	courses, err := s.courseRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Roster retrieves the course roster after an ownership check.
func (s *CourseService) Roster(ctx context.Context, courseID, professorID, page, perPage int) ([]model.EnrolledStudent, *response.Pagination, error) {
	if _, err := s.GetOwned(ctx, courseID, professorID); err != nil {
		return nil, nil, err
	}

	page, perPage = clampPage(page, perPage)
	roster, total, err := s.enrollmentRepo.ListRosterPaginated(ctx, courseID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if roster == nil {
		roster = []model.EnrolledStudent{}
	}

	return roster, paginationFor(page, perPage, total), nil
}

func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func paginationFor(page, perPage, total int) *response.Pagination {
	return &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}
