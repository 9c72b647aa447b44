package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/database"
	"github.com/academica/academica-backend/internal/handler"
	"github.com/academica/academica-backend/internal/logger"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/router"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
	"github.com/academica/academica-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Academica Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	professorRepo := repository.NewProfessorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	recordRepo := repository.NewAcademicRecordRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	examRepo := repository.NewExamRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	gradebookRepo := repository.NewGradebookRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	studentService := service.NewStudentService(studentRepo)
	professorService := service.NewProfessorService(professorRepo)
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, recordRepo, log)
	recordService := service.NewAcademicRecordService(cfg, recordRepo)
	assignmentService := service.NewAssignmentService(assignmentRepo)
	examService := service.NewExamService(examRepo)
	gradebookService := service.NewGradebookService(
		cfg, gradebookRepo, gradeRepo, assignmentRepo, examRepo,
		attendanceRepo, recordRepo, enrollmentRepo, rdb, log,
	)
	gradeService := service.NewGradeService(gradeRepo, assignmentRepo, examRepo, enrollmentRepo, gradebookService, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, enrollmentRepo, gradebookService, log)
	messageService := service.NewMessageService(messageRepo)
	dashboardService := service.NewDashboardService(dashboardRepo, gradeRepo, gradebookRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth: handler.NewAuthHandler(authService, studentService, professorService),
		StudentPortal: handler.NewStudentPortalHandler(
			courseService, gradeService, recordService,
			gradebookService, attendanceService, messageService,
		),
		Course:         handler.NewCourseHandler(courseService),
		Assignment:     handler.NewAssignmentHandler(assignmentService, courseService),
		Exam:           handler.NewExamHandler(examService, courseService),
		Grade:          handler.NewGradeHandler(gradeService, courseService),
		Gradebook:      handler.NewGradebookHandler(gradebookService, courseService),
		AcademicRecord: handler.NewAcademicRecordHandler(recordService, courseService),
		Attendance:     handler.NewAttendanceHandler(attendanceService, courseService),
		Message:        handler.NewMessageHandler(messageService),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	recomputeWorker := worker.NewRecomputeWorker(gradebookService, gradebookRepo, rdb, log)
	go recomputeWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the recompute worker and wait for the queue to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
