package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/academica/academica-backend/internal/middleware"
	"github.com/academica/academica-backend/internal/response"
	"github.com/academica/academica-backend/internal/service"
)

// DashboardHandler serves the professor landing-page summary.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary godoc
// GET /api/v1/professor/dashboard
// Aggregates counts across all of the professor's courses.
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := middleware.GetClaims(c)

	summary, err := h.dashboardService.Summary(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
