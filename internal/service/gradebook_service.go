package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
)

const (
	statsCacheTTL = 5 * time.Minute
	scaleCacheTTL = time.Hour
)

// RecomputeTask is one unit of work on the gradebook recompute queue.
type RecomputeTask struct {
	CourseID  int `json:"course_id"`
	StudentID int `json:"student_id"`
}

// GradebookService computes and serves per-student course standings.
type GradebookService struct {
	cfg            *config.Config
	gradebookRepo  *repository.GradebookRepository
	gradeRepo      *repository.GradeRepository
	assignmentRepo *repository.AssignmentRepository
	examRepo       *repository.ExamRepository
	attendanceRepo *repository.AttendanceRepository
	recordRepo     *repository.AcademicRecordRepository
	enrollmentRepo *repository.EnrollmentRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewGradebookService creates a new GradebookService.
func NewGradebookService(
	cfg *config.Config,
	gradebookRepo *repository.GradebookRepository,
	gradeRepo *repository.GradeRepository,
	assignmentRepo *repository.AssignmentRepository,
	examRepo *repository.ExamRepository,
	attendanceRepo *repository.AttendanceRepository,
	recordRepo *repository.AcademicRecordRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *GradebookService {
	return &GradebookService{
		cfg:            cfg,
		gradebookRepo:  gradebookRepo,
		gradeRepo:      gradeRepo,
		assignmentRepo: assignmentRepo,
		examRepo:       examRepo,
		attendanceRepo: attendanceRepo,
		recordRepo:     recordRepo,
		enrollmentRepo: enrollmentRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "gradebook_service").Logger(),
	}
}

// GetConfig retrieves a course's gradebook configuration, falling back to
// the institutional defaults when none has been saved yet.
func (s *GradebookService) GetConfig(ctx context.Context, courseID int) (*model.Gradebook, error) {
	gb, err := s.gradebookRepo.GetByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultGradebook(courseID), nil
		}
		return nil, err
	}
	return gb, nil
}

// UpdateConfig validates and saves a gradebook configuration, then queues a
// course-wide recompute so every snapshot reflects the new rules.
func (s *GradebookService) UpdateConfig(ctx context.Context, gb *model.Gradebook) error {
	if err := gb.Config().Validate(); err != nil {
		return err
	}
	if _, err := scaleFor(gb); err != nil {
		return err
	}

	if err := s.gradebookRepo.Upsert(ctx, gb); err != nil {
		return err
	}
	if err := s.rdb.Del(ctx, config.CacheKey.CourseScaleKey(gb.CourseID)).Err(); err != nil {
		s.log.Warn().Err(err).Int("course_id", gb.CourseID).Msg("scale cache invalidation failed")
	}
	return s.EnqueueCourseRecompute(ctx, gb.CourseID)
}

// CourseScale resolves a course's grading scale, caching the stored scale
// payload so per-grade normalization skips the gradebook lookup.
func (s *GradebookService) CourseScale(ctx context.Context, courseID int) (*grading.Scale, error) {
	cacheKey := config.CacheKey.CourseScaleKey(courseID)

	if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var entries []grading.ScaleEntry
		if json.Unmarshal([]byte(raw), &entries) == nil {
			if scale, err := scaleFor(&model.Gradebook{CourseID: courseID, Scale: entries}); err == nil {
				return scale, nil
			}
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Int("course_id", courseID).Msg("scale cache read failed")
	}

	gb, err := s.GetConfig(ctx, courseID)
	if err != nil {
		return nil, err
	}
	scale, err := scaleFor(gb)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(gb.Scale); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, scaleCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Int("course_id", courseID).Msg("scale cache write failed")
		}
	}
	return scale, nil
}

// ComputeEntry recomputes one student's snapshot from published grades,
// attendance and academic records. It does not persist the result.
func (s *GradebookService) ComputeEntry(ctx context.Context, courseID, studentID int) (*model.GradebookEntry, error) {
	gb, err := s.GetConfig(ctx, courseID)
	if err != nil {
		return nil, err
	}
	scale, err := scaleFor(gb)
	if err != nil {
		return nil, err
	}

	grades, err := s.gradeRepo.ListByStudentCourse(ctx, studentID, courseID, true)
	if err != nil {
		return nil, err
	}

	items := make([]grading.GradeItem, 0, len(grades))
	for _, g := range grades {
		items = append(items, gradeToItem(&g))
	}

	agg, err := grading.Aggregate(items, gb.Config(), scale)
	if err != nil {
		return nil, err
	}

	assignmentsTotal, err := s.assignmentRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	examsTotal, err := s.examRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	attendance, err := s.attendanceRepo.Summary(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	gpa, err := s.studentGPA(ctx, studentID)
	if err != nil {
		return nil, err
	}

	completionPct := 100.0
	if assignmentsTotal > 0 {
		completionPct = float64(agg.CategoryCounts[grading.CategoryAssignment]) / float64(assignmentsTotal) * 100
	}

	risk := grading.AssessRisk(grading.RiskInput{
		StudentID:     studentID,
		CourseID:      courseID,
		GPA:           gpa,
		AttendancePct: attendance.AttendancePct,
		CompletionPct: completionPct,
	}, grading.RiskThresholds{
		MinGPA:           s.cfg.RiskMinGPA,
		MinAttendancePct: s.cfg.RiskMinAttendance,
		MinCompletionPct: s.cfg.RiskMinCompletion,
	})

	factors := make([]string, 0, len(risk.RiskFactors))
	for _, f := range risk.RiskFactors {
		factors = append(factors, string(f))
	}

	return &model.GradebookEntry{
		CourseID:             courseID,
		StudentID:            studentID,
		OverallPercentage:    agg.OverallPercentage,
		LetterGrade:          agg.LetterGrade,
		AssignmentAverage:    agg.CategoryAverages[grading.CategoryAssignment],
		ExamAverage:          agg.CategoryAverages[grading.CategoryExam],
		ParticipationAverage: agg.CategoryAverages[grading.CategoryParticipation],
		AssignmentsGraded:    agg.CategoryCounts[grading.CategoryAssignment],
		AssignmentsTotal:     assignmentsTotal,
		ExamsGraded:          agg.CategoryCounts[grading.CategoryExam],
		ExamsTotal:           examsTotal,
		IsAtRisk:             risk.IsAtRisk,
		RiskFactors:          factors,
	}, nil
}

// StudentEntry serves one student's snapshot, computing and persisting it
// on first access. Only registered students have a standing; anyone else
// gets ErrStudentNotEnrolled rather than a fabricated row.
func (s *GradebookService) StudentEntry(ctx context.Context, courseID, studentID int) (*model.GradebookEntry, error) {
	registered, err := s.enrollmentRepo.IsRegistered(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !registered {
		return nil, ErrStudentNotEnrolled
	}

	entry, err := s.gradebookRepo.GetEntry(ctx, courseID, studentID)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	entry, err = s.ComputeEntry(ctx, courseID, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.gradebookRepo.UpsertEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Entries retrieves a course's snapshots with pagination. atRiskOnly
// restricts to flagged students.
func (s *GradebookService) Entries(ctx context.Context, courseID int, atRiskOnly bool, page, perPage int) ([]model.GradebookEntry, *response.Pagination, error) {
	page, perPage = clampPage(page, perPage)
	entries, total, err := s.gradebookRepo.ListEntriesPaginated(ctx, courseID, atRiskOnly, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if entries == nil {
		entries = []model.GradebookEntry{}
	}
	return entries, paginationFor(page, perPage, total), nil
}

// Statistics serves course-level descriptive statistics over snapshot
// percentages, cached in Redis for a short window.
func (s *GradebookService) Statistics(ctx context.Context, courseID int) (grading.Statistics, error) {
	cacheKey := config.CacheKey.CourseStatsKey(courseID)

	if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var cached grading.Statistics
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Int("course_id", courseID).Msg("stats cache read failed")
	}

	gb, err := s.GetConfig(ctx, courseID)
	if err != nil {
		return grading.Statistics{}, err
	}
	scale, err := scaleFor(gb)
	if err != nil {
		return grading.Statistics{}, err
	}

	percentages, err := s.gradebookRepo.ListEntryPercentages(ctx, courseID)
	if err != nil {
		return grading.Statistics{}, err
	}

	stats := grading.ComputeStatistics(percentages, scale)

	if raw, err := json.Marshal(stats); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, statsCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Int("course_id", courseID).Msg("stats cache write failed")
		}
	}
	return stats, nil
}

// EnqueueRecompute pushes recompute tasks for specific students onto the
// worker queue and drops the stale statistics cache.
func (s *GradebookService) EnqueueRecompute(ctx context.Context, courseID int, studentIDs ...int) error {
	if len(studentIDs) == 0 {
		return nil
	}

	payloads := make([]interface{}, 0, len(studentIDs))
	for _, id := range studentIDs {
		raw, err := json.Marshal(RecomputeTask{CourseID: courseID, StudentID: id})
		if err != nil {
			return err
		}
		payloads = append(payloads, raw)
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.GradebookRecomputeQueue, payloads...).Err(); err != nil {
		return err
	}
	return s.rdb.Del(ctx, config.CacheKey.CourseStatsKey(courseID)).Err()
}

// EnqueueCourseRecompute queues every actively registered student of a
// course for recompute.
func (s *GradebookService) EnqueueCourseRecompute(ctx context.Context, courseID int) error {
	studentIDs, err := s.enrollmentRepo.ListRegisteredStudentIDs(ctx, courseID)
	if err != nil {
		return err
	}
	return s.EnqueueRecompute(ctx, courseID, studentIDs...)
}

func (s *GradebookService) studentGPA(ctx context.Context, studentID int) (float64, error) {
	rows, err := s.recordRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return 0, err
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

	res, err := grading.ComputeGPA(records, grading.DefaultScale(), grading.Scope{Kind: grading.ScopeCumulative})
	if err != nil {
		return 0, err
	}
	return res.GPA, nil
}

// scaleFor resolves the course scale, falling back to the institutional
// default when the gradebook stores none.
func scaleFor(gb *model.Gradebook) (*grading.Scale, error) {
	if len(gb.Scale) == 0 {
		return grading.DefaultScale(), nil
	}
	return grading.NewScale(gb.Scale)
}

// gradeToItem maps a stored grade row to the pure computation input.
func gradeToItem(g *model.Grade) grading.GradeItem {
	return grading.GradeItem{
		PointsEarned:       g.PointsEarned,
		PointsPossible:     g.PointsPossible,
		DueDate:            g.DueDate,
		IsLate:             g.IsLate,
		LatePenaltyPct:     g.LatePenaltyPct,
		ExtraCreditPts:     g.ExtraCredit,
		CurveAdjustmentPts: g.CurveAdjustment,
		Category:           g.Category,
	}
}

func defaultGradebook(courseID int) *model.Gradebook {
	return &model.Gradebook{
		CourseID:               courseID,
		AssignmentWeightPct:    40,
		ExamWeightPct:          50,
		ParticipationWeightPct: 10,
	}
}
