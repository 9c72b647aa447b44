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

// CourseHandler handles professor-facing course management.
type CourseHandler struct {
	courseService *service.CourseService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListMine godoc
// GET /api/v1/professor/courses
// Lists the professor's courses with pagination and optional term filters.
func (h *CourseHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	semester, year, ok := termFilters(c)
	if !ok {
		return
	}

	courses, pagination, err := h.courseService.ListCatalog(c.Request.Context(), &claims.UserID, semester, year, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"courses": courses}, pagination)
}

// Get godoc
// GET /api/v1/professor/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetOwned(c.Request.Context(), courseID, claims.UserID)
	if err != nil {
		failCourseAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course})
}

// Create godoc
// POST /api/v1/professor/courses
func (h *CourseHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		ProfessorID: claims.UserID,
		Credits:     req.Credits,
		MaxCapacity: req.MaxCapacity,
		Semester:    req.Semester,
		Year:        req.Year,
		MajorCode:   req.MajorCode,
	}
	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		if errors.Is(err, repository.ErrDuplicateCourseCode) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// Update godoc
// PUT /api/v1/professor/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		ID:          courseID,
		Title:       req.Title,
		Description: req.Description,
		Credits:     req.Credits,
		MaxCapacity: req.MaxCapacity,
		Semester:    req.Semester,
		Year:        req.Year,
		MajorCode:   req.MajorCode,
	}
	if err := h.courseService.Update(c.Request.Context(), course, claims.UserID); err != nil {
		failCourseAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course updated successfully"})
}

// Delete godoc
// DELETE /api/v1/professor/courses/:id
// Courses with recorded grades cannot be deleted.
func (h *CourseHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), courseID, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrCourseHasGrades) {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		failCourseAccess(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}

// Roster godoc
// GET /api/v1/professor/courses/:id/roster
// Lists registered students with pagination.
func (h *CourseHandler) Roster(c *gin.Context) {
	claims := middleware.GetClaims(c)
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	roster, pagination, err := h.courseService.Roster(c.Request.Context(), courseID, claims.UserID, page, perPage)
	if err != nil {
		failCourseAccess(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"students": roster}, pagination)
}

// termFilters parses the optional semester and year query filters. Writes
// the error response itself and reports false on a malformed year.
func termFilters(c *gin.Context) (*string, *int, bool) {
	var semester *string
	if s := c.Query("semester"); s != "" {
		semester = &s
	}

	var year *int
	if yStr := c.Query("year"); yStr != "" {
		y, err := strconv.Atoi(yStr)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return nil, nil, false
		}
		year = &y
	}
	return semester, year, true
}

// failCourseAccess maps course lookup/ownership errors onto API errors.
func failCourseAccess(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotCourseOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotCourseOwner)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
