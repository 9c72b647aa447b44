package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
)

// StudentPortalHandler handles the student-facing surface: catalog,
// registration, grades, GPA, attendance, messages and the gradebook view.
type StudentPortalHandler struct {
	courseService     *service.CourseService
	gradeService      *service.GradeService
	recordService     *service.AcademicRecordService
	gradebookService  *service.GradebookService
	attendanceService *service.AttendanceService
	messageService    *service.MessageService
}

// NewStudentPortalHandler creates a new StudentPortalHandler.
func NewStudentPortalHandler(
	courseService *service.CourseService,
	gradeService *service.GradeService,
	recordService *service.AcademicRecordService,
	gradebookService *service.GradebookService,
	attendanceService *service.AttendanceService,
	messageService *service.MessageService,
) *StudentPortalHandler {
	return &StudentPortalHandler{
		courseService:     courseService,
		gradeService:      gradeService,
		recordService:     recordService,
		gradebookService:  gradebookService,
		attendanceService: attendanceService,
		messageService:    messageService,
	}
}

// Catalog godoc
// GET /api/v1/student/courses
// Lists the course catalog with pagination and optional term filters.
func (h *StudentPortalHandler) Catalog(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	semester, year, ok := termFilters(c)
	if !ok {
		return
	}

	courses, pagination, err := h.courseService.ListCatalog(c.Request.Context(), nil, semester, year, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// Register godoc
// POST /api/v1/student/courses/:id/register
// Registers the student, enforcing capacity and duplicate checks.
func (h *StudentPortalHandler) Register(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	enrollment, err := h.courseService.Register(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, repository.ErrAlreadyRegistered):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyRegistered)
		case errors.Is(err, repository.ErrCourseFull):
			response.Fail(c, http.StatusConflict, response.ErrCourseFull)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// Drop godoc
// POST /api/v1/student/courses/:id/drop
func (h *StudentPortalHandler) Drop(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Drop(c.Request.Context(), claims.UserID, courseID); err != nil {
		if errors.Is(err, repository.ErrNotRegistered) {
			response.Fail(c, http.StatusConflict, response.ErrNotRegistered)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course dropped successfully"})
}

// MyCourses godoc
// GET /api/v1/student/registrations
// Lists the courses the student is currently registered in.
func (h *StudentPortalHandler) MyCourses(c *gin.Context) {
	claims := middleware.GetClaims(c)

	courses, err := h.courseService.ListStudentCourses(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// MyGrades godoc
// GET /api/v1/student/grades
// Lists the student's published grades across courses.
func (h *StudentPortalHandler) MyGrades(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	grades, pagination, err := h.gradeService.ListForStudent(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"grades": grades}, pagination)
}

// MyGPA godoc
// GET /api/v1/student/gpa?scope=cumulative|major|semester&semester=Fall&year=2025
// Returns the scoped GPA plus the chronological per-term breakdown.
func (h *StudentPortalHandler) MyGPA(c *gin.Context) {
	claims := middleware.GetClaims(c)

	scope := grading.Scope{Kind: grading.ScopeKind(c.DefaultQuery("scope", string(grading.ScopeCumulative)))}
	switch scope.Kind {
	case grading.ScopeCumulative, grading.ScopeMajor:
	case grading.ScopeSemester:
		scope.Semester = c.Query("semester")
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil || scope.Semester == "" {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		scope.Year = year
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	gpa, err := h.recordService.ComputeGPA(c.Request.Context(), claims.UserID, scope)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	breakdown, err := h.recordService.SemesterBreakdown(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"gpa":       gpa,
		"semesters": breakdown,
	})
}

// MyRecords godoc
// GET /api/v1/student/records
// Lists the student's academic records (transcript rows).
func (h *StudentPortalHandler) MyRecords(c *gin.Context) {
	claims := middleware.GetClaims(c)

	records, err := h.recordService.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"records": records})
}

// MyAttendance godoc
// GET /api/v1/student/attendance/summary?course_id=N
func (h *StudentPortalHandler) MyAttendance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Query("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	summary, err := h.attendanceService.Summary(c.Request.Context(), claims.UserID, courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// MyGradebook godoc
// GET /api/v1/student/gradebook/:course_id
// Returns the student's computed standing in one course. Only published
// grades feed the snapshot.
func (h *StudentPortalHandler) MyGradebook(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("course_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entry, err := h.gradebookService.StudentEntry(c.Request.Context(), courseID, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotEnrolled) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// Inbox godoc
// GET /api/v1/student/messages
func (h *StudentPortalHandler) Inbox(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	messages, pagination, err := h.messageService.Inbox(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	unread, err := h.messageService.UnreadCount(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{
		"messages":     messages,
		"unread_count": unread,
	}, pagination)
}

// MarkMessageRead godoc
// POST /api/v1/student/messages/:id/read
func (h *StudentPortalHandler) MarkMessageRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	messageID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	matched, err := h.messageService.MarkRead(c.Request.Context(), messageID, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if !matched {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "message marked as read"})
}
