package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
)

// AttendanceService handles attendance recording and summaries.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	enrollmentRepo *repository.EnrollmentRepository
	gradebook      *GradebookService
	log            zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	gradebook *GradebookService,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		enrollmentRepo: enrollmentRepo,
		gradebook:      gradebook,
		log:            log.With().Str("component", "attendance_service").Logger(),
	}
}

// Record marks a single student for a class date. Attendance feeds the
// risk rules, so a recompute is queued for the student.
func (s *AttendanceService) Record(ctx context.Context, courseID, recordedBy int, req *model.RecordAttendanceRequest) (*model.Attendance, error) {
	registered, err := s.enrollmentRepo.IsRegistered(ctx, req.StudentID, courseID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrStudentNotEnrolled
	}

	classDate, err := time.Parse("2006-01-02", req.ClassDate)
	if err != nil {
		return nil, err
	}

	a := &model.Attendance{
		StudentID:   req.StudentID,
		CourseID:    courseID,
		ClassDate:   classDate,
		Status:      model.AttendanceStatus(req.Status),
		LateMinutes: req.LateMinutes,
		Notes:       req.Notes,
		RecordedBy:  recordedBy,
	}
	if err := s.attendanceRepo.Upsert(ctx, a); err != nil {
		return nil, err
	}

	if err := s.gradebook.EnqueueRecompute(ctx, courseID, req.StudentID); err != nil {
		s.log.Error().Err(err).Int("course_id", courseID).Msg("recompute enqueue failed")
	}
	return a, nil
}

// BulkRecord marks a whole roster for one class date and queues recomputes
// for every marked student.
func (s *AttendanceService) BulkRecord(ctx context.Context, courseID, recordedBy int, req *model.BulkAttendanceRequest) (int, error) {
	classDate, err := time.Parse("2006-01-02", req.ClassDate)
	if err != nil {
		return 0, err
	}

	if err := s.attendanceRepo.BulkUpsert(ctx, courseID, classDate, recordedBy, req.Marks); err != nil {
		return 0, err
	}

	studentIDs := make([]int, 0, len(req.Marks))
	for _, m := range req.Marks {
		studentIDs = append(studentIDs, m.StudentID)
	}
	if err := s.gradebook.EnqueueRecompute(ctx, courseID, studentIDs...); err != nil {
		s.log.Error().Err(err).Int("course_id", courseID).Msg("recompute enqueue failed")
	}
	return len(req.Marks), nil
}

// Summary aggregates one student's marks for one course.
func (s *AttendanceService) Summary(ctx context.Context, studentID, courseID int) (*model.AttendanceSummary, error) {
	return s.attendanceRepo.Summary(ctx, studentID, courseID)
}

// CourseReport aggregates marks per student for a whole course.
func (s *AttendanceService) CourseReport(ctx context.Context, courseID int) ([]model.AttendanceSummary, error) {
	summaries, err := s.attendanceRepo.SummariesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []model.AttendanceSummary{}
	}
	return summaries, nil
}

// ListByDate retrieves a course's marks for one class date.
func (s *AttendanceService) ListByDate(ctx context.Context, courseID int, classDate string) ([]model.Attendance, error) {
	parsed, err := time.Parse("2006-01-02", classDate)
	if err != nil {
		return nil, err
	}
	marks, err := s.attendanceRepo.ListByCourseDate(ctx, courseID, parsed)
	if err != nil {
		return nil, err
	}
	if marks == nil {
		marks = []model.Attendance{}
	}
	return marks, nil
}
