package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
)

// AssignmentHandler handles professor-facing assignment management.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	courseService     *service.CourseService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(
	assignmentService *service.AssignmentService,
	courseService *service.CourseService,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		courseService:     courseService,
	}
}

// ListByCourse godoc
// GET /api/v1/professor/courses/:id/assignments
func (h *AssignmentHandler) ListByCourse(c *gin.Context) {
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

	assignments, err := h.assignmentService.ListByCourse(c.Request.Context(), courseID, false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignments": assignments})
}

// Create godoc
// POST /api/v1/professor/courses/:id/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
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

	var req model.CreateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment := &model.Assignment{
		CourseID:       courseID,
		Title:          req.Title,
		Description:    req.Description,
		TotalPoints:    req.TotalPoints,
		DueDate:        req.DueDate,
		AllowLate:      req.AllowLate,
		LatePenaltyPct: req.LatePenaltyPct,
	}
	if err := h.assignmentService.Create(c.Request.Context(), assignment); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"assignment": assignment})
}

// Update godoc
// PUT /api/v1/professor/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	assignment, ok := h.owned(c)
	if !ok {
		return
	}

	var req model.UpdateAssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.TotalPoints = req.TotalPoints
	assignment.DueDate = req.DueDate
	assignment.AllowLate = req.AllowLate
	assignment.LatePenaltyPct = req.LatePenaltyPct

	if err := h.assignmentService.Update(c.Request.Context(), assignment); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"assignment": assignment})
}

// Publish godoc
// POST /api/v1/professor/assignments/:id/publish
// Makes the assignment visible to students.
func (h *AssignmentHandler) Publish(c *gin.Context) {
	assignment, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Publish(c.Request.Context(), assignment.ID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "assignment published successfully"})
}

// Delete godoc
// DELETE /api/v1/professor/assignments/:id
// Assignments with recorded grades cannot be deleted.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	assignment, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), assignment.ID); err != nil {
		if errors.Is(err, repository.ErrAssignmentHasGrades) {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "assignment deleted successfully"})
}

// owned resolves the :id assignment and verifies the caller teaches its
// course. Writes the error response itself and reports false on failure.
func (h *AssignmentHandler) owned(c *gin.Context) (*model.Assignment, bool) {
	claims := middleware.GetClaims(c)
	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return nil, false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}

	if _, err := h.courseService.GetOwned(c.Request.Context(), assignment.CourseID, claims.UserID); err != nil {
		failCourseAccess(c, err)
		return nil, false
	}
	return assignment, true
}
