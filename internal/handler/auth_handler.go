package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
	"github.com/academica/academica-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService      *service.AuthService
	studentService   *service.StudentService
	professorService *service.ProfessorService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authService *service.AuthService,
	studentService *service.StudentService,
	professorService *service.ProfessorService,
) *AuthHandler {
	return &AuthHandler{
		authService:      authService,
		studentService:   studentService,
		professorService: professorService,
	}
}

// StudentLogin godoc
// POST /api/v1/auth/student/login
// Validates student number + password, checks for an existing session
// (rejects if active), returns JWT.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.GetByStudentNumber(c.Request.Context(), req.StudentNumber)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(student.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateStudentToken(c.Request.Context(), student.ID)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyActive) {
			response.Fail(c, http.StatusConflict, response.ErrSessionActive)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":   token,
		"student": studentProfile(student),
	})
}

// ProfessorLogin godoc
// POST /api/v1/auth/professor/login
// Validates email + password, returns JWT. Professor sessions are stateless.
func (h *AuthHandler) ProfessorLogin(c *gin.Context) {
	var req model.ProfessorLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	professor, err := h.professorService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(professor.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateProfessorToken(professor.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":     token,
		"professor": professorProfile(professor),
	})
}

// GetStudentProfile godoc
// GET /api/v1/auth/student/me
// Returns the profile of the currently authenticated student.
func (h *AuthHandler) GetStudentProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"student": studentProfile(student)})
}

// GetProfessorProfile godoc
// GET /api/v1/auth/professor/me
// Returns the profile of the currently authenticated professor.
func (h *AuthHandler) GetProfessorProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	professor, err := h.professorService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"professor": professorProfile(professor)})
}

// StudentLogout godoc
// POST /api/v1/auth/student/logout
// Clears the student's session, allowing a login from another device.
func (h *AuthHandler) StudentLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func studentProfile(s *model.Student) gin.H {
	return gin.H{
		"id":              s.ID,
		"student_number":  s.StudentNumber,
		"name":            s.Name,
		"email":           s.Email,
		"major_code":      s.MajorCode,
		"enrollment_year": s.EnrollmentYear,
	}
}

func professorProfile(p *model.Professor) gin.H {
	return gin.H{
		"id":         p.ID,
		"email":      p.Email,
		"name":       p.Name,
		"department": p.Department,
	}
}
