package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
)

// GradebookHandler handles professor-facing gradebook configuration,
// snapshots, statistics and risk reporting.
type GradebookHandler struct {
	gradebookService *service.GradebookService
	courseService    *service.CourseService
}

// NewGradebookHandler creates a new GradebookHandler.
func NewGradebookHandler(
	gradebookService *service.GradebookService,
	courseService *service.CourseService,
) *GradebookHandler {
	return &GradebookHandler{
		gradebookService: gradebookService,
		courseService:    courseService,
	}
}

// GetConfig godoc
// GET /api/v1/professor/courses/:id/gradebook
// Returns the course's grading configuration, falling back to the
// institutional defaults when none has been saved.
func (h *GradebookHandler) GetConfig(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	gradebook, err := h.gradebookService.GetConfig(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"gradebook": gradebook})
}

// UpdateConfig godoc
// PUT /api/v1/professor/courses/:id/gradebook
// Saves a new grading configuration and queues a course-wide recompute.
func (h *GradebookHandler) UpdateConfig(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	var req model.UpdateGradebookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	gradebook := &model.Gradebook{
		CourseID:               courseID,
		AssignmentWeightPct:    req.AssignmentWeightPct,
		ExamWeightPct:          req.ExamWeightPct,
		ParticipationWeightPct: req.ParticipationWeightPct,
		DropLowestAssignments:  req.DropLowestAssignments,
		DropLowestExams:        req.DropLowestExams,
		CurveEnabled:           req.CurveEnabled,
		CurvePct:               req.CurvePct,
		Scale:                  req.Scale,
	}
	if err := h.gradebookService.UpdateConfig(c.Request.Context(), gradebook); err != nil {
		if errors.Is(err, grading.ErrInvalidConfiguration) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidGradingConfig)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"gradebook": gradebook})
}

// Entries godoc
// GET /api/v1/professor/courses/:id/gradebook/entries?at_risk=true
// Lists per-student snapshots with pagination.
func (h *GradebookHandler) Entries(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	atRiskOnly := c.Query("at_risk") == "true"

	entries, pagination, err := h.gradebookService.Entries(c.Request.Context(), courseID, atRiskOnly, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"entries": entries}, pagination)
}

// Statistics godoc
// GET /api/v1/professor/courses/:id/gradebook/statistics
// Returns descriptive statistics over the course's snapshot percentages.
func (h *GradebookHandler) Statistics(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	stats, err := h.gradebookService.Statistics(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"statistics": stats})
}

// StudentEntry godoc
// GET /api/v1/professor/courses/:id/gradebook/students/:student_id
// Returns one student's snapshot, computing it on first access.
func (h *GradebookHandler) StudentEntry(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	studentID, err := strconv.Atoi(c.Param("student_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	entry, err := h.gradebookService.StudentEntry(c.Request.Context(), courseID, studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotEnrolled) {
			response.Fail(c, http.StatusConflict, response.ErrNotRegistered)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

func (h *GradebookHandler) ownedCourse(c *gin.Context, professorID int) (int, bool) {
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
