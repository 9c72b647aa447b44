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

// ExamHandler handles professor-facing exam management.
type ExamHandler struct {
	examService   *service.ExamService
	courseService *service.CourseService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, courseService *service.CourseService) *ExamHandler {
	return &ExamHandler{examService: examService, courseService: courseService}
}

// ListByCourse godoc
// GET /api/v1/professor/courses/:id/exams
func (h *ExamHandler) ListByCourse(c *gin.Context) {
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

	exams, err := h.examService.ListByCourse(c.Request.Context(), courseID, false)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exams": exams})
}

// Create godoc
// POST /api/v1/professor/courses/:id/exams
func (h *ExamHandler) Create(c *gin.Context) {
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

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam := &model.Exam{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		TotalPoints: req.TotalPoints,
		ExamDate:    req.ExamDate,
	}
	if err := h.examService.Create(c.Request.Context(), exam); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update godoc
// PUT /api/v1/professor/exams/:id
func (h *ExamHandler) Update(c *gin.Context) {
	exam, ok := h.owned(c)
	if !ok {
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam.Title = req.Title
	exam.Description = req.Description
	exam.TotalPoints = req.TotalPoints
	exam.ExamDate = req.ExamDate

	if err := h.examService.Update(c.Request.Context(), exam); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Publish godoc
// POST /api/v1/professor/exams/:id/publish
func (h *ExamHandler) Publish(c *gin.Context) {
	exam, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.examService.Publish(c.Request.Context(), exam.ID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "exam published successfully"})
}

// Delete godoc
// DELETE /api/v1/professor/exams/:id
// Exams with recorded grades cannot be deleted.
func (h *ExamHandler) Delete(c *gin.Context) {
	exam, ok := h.owned(c)
	if !ok {
		return
	}

	if err := h.examService.Delete(c.Request.Context(), exam.ID); err != nil {
		if errors.Is(err, repository.ErrExamHasGrades) {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "exam deleted successfully"})
}

func (h *ExamHandler) owned(c *gin.Context) (*model.Exam, bool) {
	claims := middleware.GetClaims(c)
	examID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return nil, false
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return nil, false
	}

	if _, err := h.courseService.GetOwned(c.Request.Context(), exam.CourseID, claims.UserID); err != nil {
		failCourseAccess(c, err)
		return nil, false
	}
	return exam, true
}
