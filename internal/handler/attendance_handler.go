package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
)

// AttendanceHandler handles professor-facing attendance recording and
// reporting.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
	courseService     *service.CourseService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(
	attendanceService *service.AttendanceService,
	courseService *service.CourseService,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		courseService:     courseService,
	}
}

// Record godoc
// POST /api/v1/professor/courses/:id/attendance
// Marks a single student for a class date.
func (h *AttendanceHandler) Record(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	var req model.RecordAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	mark, err := h.attendanceService.Record(c.Request.Context(), courseID, claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotEnrolled) {
			response.Fail(c, http.StatusConflict, response.ErrNotRegistered)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attendance": mark})
}

// BulkRecord godoc
// POST /api/v1/professor/courses/:id/attendance/bulk
// Marks a whole roster for one class date in a single round trip.
func (h *AttendanceHandler) BulkRecord(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	var req model.BulkAttendanceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	recorded, err := h.attendanceService.BulkRecord(c.Request.Context(), courseID, claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"recorded": recorded})
}

// Report godoc
// GET /api/v1/professor/courses/:id/attendance/report
// Aggregates marks per student for the whole course.
func (h *AttendanceHandler) Report(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	summaries, err := h.attendanceService.CourseReport(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summaries": summaries})
}

// ListByDate godoc
// GET /api/v1/professor/courses/:id/attendance?date=2026-01-15
func (h *AttendanceHandler) ListByDate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	classDate := c.Query("date")
	if classDate == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	marks, err := h.attendanceService.ListByDate(c.Request.Context(), courseID, classDate)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attendance": marks})
}

func (h *AttendanceHandler) ownedCourse(c *gin.Context, professorID int) (int, bool) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	if _, err := h.courseService.GetOwned(c.Request.Context(), courseID, professorID); err != nil {
		failCourseAccess(c, err)
		return 0, false
	}
	return courseID, true
}
