package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/handler"
	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth           *handler.AuthHandler
	StudentPortal  *handler.StudentPortalHandler
	Course         *handler.CourseHandler
	Assignment     *handler.AssignmentHandler
	Exam           *handler.ExamHandler
	Grade          *handler.GradeHandler
	Gradebook      *handler.GradebookHandler
	AcademicRecord *handler.AcademicRecordHandler
	Attendance     *handler.AttendanceHandler
	Message        *handler.MessageHandler
	Dashboard      *handler.DashboardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/student/login", handlers.Auth.StudentLogin)
		auth.POST("/professor/login", handlers.Auth.ProfessorLogin)

		// Authenticated profile routes
		auth.POST("/student/logout", middleware.RequireStudentJWT(authService), handlers.Auth.StudentLogout)
		auth.GET("/student/me", middleware.RequireStudentJWT(authService), handlers.Auth.GetStudentProfile)
		auth.GET("/professor/me", middleware.RequireProfessorJWT(authService), handlers.Auth.GetProfessorProfile)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		studentAPI.GET("/courses", handlers.StudentPortal.Catalog)
		studentAPI.POST("/courses/:id/register", handlers.StudentPortal.Register)
		studentAPI.POST("/courses/:id/drop", handlers.StudentPortal.Drop)
		studentAPI.GET("/registrations", handlers.StudentPortal.MyCourses)

		studentAPI.GET("/grades", handlers.StudentPortal.MyGrades)
		studentAPI.GET("/gpa", handlers.StudentPortal.MyGPA)
		studentAPI.GET("/records", handlers.StudentPortal.MyRecords)
		studentAPI.GET("/attendance/summary", handlers.StudentPortal.MyAttendance)
		studentAPI.GET("/gradebook/:course_id", handlers.StudentPortal.MyGradebook)

		studentAPI.GET("/messages", handlers.StudentPortal.Inbox)
		studentAPI.POST("/messages/:id/read", handlers.StudentPortal.MarkMessageRead)
	}

	// ─── 3. Professor Group (JWT) ──────────────────────────────────────
	professorAPI := router.Group("/api/v1/professor")
	professorAPI.Use(middleware.RequireProfessorJWT(authService))
	{
		// Course management
		professorAPI.GET("/courses", handlers.Course.ListMine)
		professorAPI.POST("/courses", handlers.Course.Create)
		professorAPI.GET("/courses/:id", handlers.Course.Get)
		professorAPI.PUT("/courses/:id", handlers.Course.Update)
		professorAPI.DELETE("/courses/:id", handlers.Course.Delete)
		professorAPI.GET("/courses/:id/roster", handlers.Course.Roster)

		// Assignments
		professorAPI.GET("/courses/:id/assignments", handlers.Assignment.ListByCourse)
		professorAPI.POST("/courses/:id/assignments", handlers.Assignment.Create)
		professorAPI.PUT("/assignments/:id", handlers.Assignment.Update)
		professorAPI.POST("/assignments/:id/publish", handlers.Assignment.Publish)
		professorAPI.DELETE("/assignments/:id", handlers.Assignment.Delete)

		// Exams
		professorAPI.GET("/courses/:id/exams", handlers.Exam.ListByCourse)
		professorAPI.POST("/courses/:id/exams", handlers.Exam.Create)
		professorAPI.PUT("/exams/:id", handlers.Exam.Update)
		professorAPI.POST("/exams/:id/publish", handlers.Exam.Publish)
		professorAPI.DELETE("/exams/:id", handlers.Exam.Delete)

		// Grade entry and publication
		professorAPI.GET("/courses/:id/grades", handlers.Grade.ListByCourse)
		professorAPI.POST("/courses/:id/grades", handlers.Grade.Create)
		professorAPI.POST("/courses/:id/grades/bulk", handlers.Grade.BulkCreate)
		professorAPI.POST("/courses/:id/grades/publish", handlers.Grade.Publish)
		professorAPI.PUT("/grades/:id", handlers.Grade.Update)
		professorAPI.DELETE("/grades/:id", handlers.Grade.Delete)
		professorAPI.GET("/grades/:id/modifications", handlers.Grade.Modifications)

		// Gradebook
		professorAPI.GET("/courses/:id/gradebook", handlers.Gradebook.GetConfig)
		professorAPI.PUT("/courses/:id/gradebook", handlers.Gradebook.UpdateConfig)
		professorAPI.GET("/courses/:id/gradebook/entries", handlers.Gradebook.Entries)
		professorAPI.GET("/courses/:id/gradebook/statistics", handlers.Gradebook.Statistics)
		professorAPI.GET("/courses/:id/gradebook/students/:student_id", handlers.Gradebook.StudentEntry)

		// Academic records and GPA
		professorAPI.GET("/courses/:id/records", handlers.AcademicRecord.ListByCourse)
		professorAPI.PUT("/courses/:id/records", handlers.AcademicRecord.Upsert)
		professorAPI.GET("/students/:id/gpa", handlers.AcademicRecord.StudentGPA)

		// Attendance
		professorAPI.GET("/courses/:id/attendance", handlers.Attendance.ListByDate)
		professorAPI.POST("/courses/:id/attendance", handlers.Attendance.Record)
		professorAPI.POST("/courses/:id/attendance/bulk", handlers.Attendance.BulkRecord)
		professorAPI.GET("/courses/:id/attendance/report", handlers.Attendance.Report)

		// Messaging
		professorAPI.GET("/messages", handlers.Message.ListSent)
		professorAPI.POST("/messages", handlers.Message.Send)

		// Dashboard
		professorAPI.GET("/dashboard", handlers.Dashboard.Summary)
	}

	return router
}
