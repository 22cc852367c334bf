package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
	"github.com/yigit/traineehub/internal/pkg/helpers"
)

// DashboardController serves the dashboard aggregates
type DashboardController struct {
	dashboardService services.DashboardService
	recentLimit      int
}

// NewDashboardController creates a new DashboardController. recentLimit is the
// per-category size of the activity feed when the request gives none.
func NewDashboardController(dashboardService services.DashboardService, recentLimit int) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		recentLimit:      services.NormalizeActivityLimit(recentLimit, services.DefaultRecentActivitiesLimit),
	}
}

// GetStats returns trainee statistics
// @Summary Get dashboard statistics
// @Description Counts, new arrivals, average latest skill level and nationality/department breakdowns of the caller's visible trainees
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats} "Statistics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role has no dashboard scope"
// @Failure 500 {object} dto.ErrorResponse "Statistics unavailable"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	stats, err := c.dashboardService.GetStats(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// GetAlerts returns the five alert categories
// @Summary Get dashboard alerts
// @Description Visa and certificate expiries, due health checks, missing evaluations for the current quarter and overdue interviews
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardAlerts} "Alerts"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role has no dashboard scope"
// @Failure 500 {object} dto.ErrorResponse "Alerts unavailable"
// @Router /dashboard/alerts [get]
func (c *DashboardController) GetAlerts(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	alerts, err := c.dashboardService.GetAlerts(ctx.Request.Context(), scope)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(alerts, ""))
}

// GetRecentActivities returns the newest evaluations, interviews and OJT records
// @Summary Get recent activities
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Entries per category" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.APIResponse{data=models.RecentActivities} "Recent activities"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role has no dashboard scope"
// @Failure 500 {object} dto.ErrorResponse "Recent activities unavailable"
// @Router /dashboard/recent-activities [get]
func (c *DashboardController) GetRecentActivities(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	limit := helpers.ParseLimit(ctx, c.recentLimit, services.MaxRecentActivitiesLimit)
	activities, err := c.dashboardService.GetRecentActivities(ctx.Request.Context(), scope, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities, ""))
}

// GetOverview returns statistics, alerts and recent activities in one response
// @Summary Get dashboard overview
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Recent entries per category" minimum(1) maximum(100) default(10)
// @Success 200 {object} dto.APIResponse{data=models.DashboardOverview} "Overview"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role has no dashboard scope"
// @Failure 500 {object} dto.ErrorResponse "Dashboard unavailable"
// @Router /dashboard/overview [get]
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	limit := helpers.ParseLimit(ctx, c.recentLimit, services.MaxRecentActivitiesLimit)
	overview, err := c.dashboardService.GetOverview(ctx.Request.Context(), scope, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview, ""))
}
