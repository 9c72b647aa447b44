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

// AcademicRecordHandler handles professor-facing academic records and GPA
// reporting.
type AcademicRecordHandler struct {
	recordService *service.AcademicRecordService
	courseService *service.CourseService
}

// NewAcademicRecordHandler creates a new AcademicRecordHandler.
func NewAcademicRecordHandler(
	recordService *service.AcademicRecordService,
	courseService *service.CourseService,
) *AcademicRecordHandler {
	return &AcademicRecordHandler{
		recordService: recordService,
		courseService: courseService,
	}
}

// Upsert godoc
// PUT /api/v1/professor/courses/:id/records
// Creates or finalizes a student's academic record for the course.
func (h *AcademicRecordHandler) Upsert(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.courseService.GetOwned(c.Request.Context(), courseID, claims.UserID); err != nil {
		failCourseAccess(c, err)
		return
	}

	var req model.UpsertAcademicRecordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rec := &model.AcademicRecord{
		StudentID:        req.StudentID,
		CourseID:         courseID,
		LetterGrade:      req.LetterGrade,
		CreditsAttempted: req.CreditsAttempted,
		CreditsEarned:    req.CreditsEarned,
		Status:           grading.RecordStatus(req.Status),
		MajorCourse:      req.MajorCourse,
	}
	if err := h.recordService.Upsert(c.Request.Context(), rec); err != nil {
		if errors.Is(err, service.ErrLetterGradeRequired) || errors.Is(err, grading.ErrInvalidGradeInput) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidGradeInput)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"record": rec})
}

// ListByCourse godoc
// GET /api/v1/professor/courses/:id/records
func (h *AcademicRecordHandler) ListByCourse(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.courseService.GetOwned(c.Request.Context(), courseID, claims.UserID); err != nil {
		failCourseAccess(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	records, pagination, err := h.recordService.ListByCourse(c.Request.Context(), courseID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"records": records}, pagination)
}

// StudentGPA godoc
// GET /api/v1/professor/students/:id/gpa?scope=cumulative|major
// Returns a student's GPA with the per-term breakdown.
func (h *AcademicRecordHandler) StudentGPA(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	scope := grading.Scope{Kind: grading.ScopeKind(c.DefaultQuery("scope", string(grading.ScopeCumulative)))}
	switch scope.Kind {
	case grading.ScopeCumulative, grading.ScopeMajor:
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	gpa, err := h.recordService.ComputeGPA(c.Request.Context(), studentID, scope)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	breakdown, err := h.recordService.SemesterBreakdown(c.Request.Context(), studentID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"gpa":       gpa,
		"semesters": breakdown,
	})
}
