package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/academica/academica-backend/internal/grading"
	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
)

// GradeHandler handles professor-facing grade entry, correction and
// publication.
type GradeHandler struct {
	gradeService  *service.GradeService
	courseService *service.CourseService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(gradeService *service.GradeService, courseService *service.CourseService) *GradeHandler {
	return &GradeHandler{gradeService: gradeService, courseService: courseService}
}

// Create godoc
// POST /api/v1/professor/courses/:id/grades
// Records a draft grade. The percentage and letter are computed against
// the course scale before the row is stored.
func (h *GradeHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	var req model.CreateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grade, err := h.gradeService.Create(c.Request.Context(), courseID, claims.UserID, &req)
	if err != nil {
		failGradeWrite(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"grade": grade})
}

// BulkCreate godoc
// POST /api/v1/professor/courses/:id/grades/bulk
// Records many draft grades in one insert. Any invalid row rejects the
// whole batch.
func (h *GradeHandler) BulkCreate(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	var req model.BulkGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	grades, err := h.gradeService.BulkCreate(c.Request.Context(), courseID, claims.UserID, &req)
	if err != nil {
		failGradeWrite(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"grades":   grades,
		"recorded": len(grades),
	})
}

// ListByCourse godoc
// GET /api/v1/professor/courses/:id/grades?student_id=N
func (h *GradeHandler) ListByCourse(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var studentID *int
	if sidStr := c.Query("student_id"); sidStr != "" {
		sid, err := strconv.Atoi(sidStr)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		studentID = &sid
	}

	grades, pagination, err := h.gradeService.ListByCourse(c.Request.Context(), courseID, studentID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"grades": grades}, pagination)
}

// Publish godoc
// POST /api/v1/professor/courses/:id/grades/publish
// Flips every draft grade in the course to published and queues snapshot
// recomputes for the affected students.
func (h *GradeHandler) Publish(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, ok := h.ownedCourse(c, claims.UserID)
	if !ok {
		return
	}

	affected, err := h.gradeService.PublishCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":           "grades published successfully",
		"students_affected": affected,
	})
}

// Update godoc
// PUT /api/v1/professor/grades/:id
// Corrects a grade. The change and its reason are recorded in the
// modification audit trail.
func (h *GradeHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	grade, ok := h.owned(c, claims.UserID)
	if !ok {
		return
	}

	var req model.UpdateGradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	updated, err := h.gradeService.Update(c.Request.Context(), grade.ID, claims.UserID, &req)
	if err != nil {
		failGradeWrite(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"grade": updated})
}

// Delete godoc
// DELETE /api/v1/professor/grades/:id
func (h *GradeHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	grade, ok := h.owned(c, claims.UserID)
	if !ok {
		return
	}

	if err := h.gradeService.Delete(c.Request.Context(), grade.ID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "grade deleted successfully"})
}

// Modifications godoc
// GET /api/v1/professor/grades/:id/modifications
// Lists the grade's audit trail, newest first.
func (h *GradeHandler) Modifications(c *gin.Context) {
	claims := middleware.GetClaims(c)
	grade, ok := h.owned(c, claims.UserID)
	if !ok {
		return
	}

	mods, err := h.gradeService.Modifications(c.Request.Context(), grade.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"modifications": mods})
}

// ownedCourse parses the :id course param and verifies ownership.
func (h *GradeHandler) ownedCourse(c *gin.Context, professorID int) (int, bool) {
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

// owned resolves the :id grade and verifies the caller teaches its course.
func (h *GradeHandler) owned(c *gin.Context, professorID int) (*model.Grade, bool) {
	gradeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	grade, err := h.gradeService.GetByID(c.Request.Context(), gradeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return nil, false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}

	if _, err := h.courseService.GetOwned(c.Request.Context(), grade.CourseID, professorID); err != nil {
		failCourseAccess(c, err)
		return nil, false
	}
	return grade, true
}

// failGradeWrite maps grade entry errors onto API errors.
func failGradeWrite(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrStudentNotEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrNotRegistered)
	case errors.Is(err, service.ErrGradeTargetRequired),
		errors.Is(err, service.ErrGradeTargetMismatch),
		errors.Is(err, grading.ErrInvalidGradeInput):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidGradeInput)
	case errors.Is(err, repository.ErrDuplicateGrade):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
