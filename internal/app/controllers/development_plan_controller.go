package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
)

// DevelopmentPlanController handles development plans
type DevelopmentPlanController struct {
	planService services.DevelopmentPlanService
}

// NewDevelopmentPlanController creates a new DevelopmentPlanController
func NewDevelopmentPlanController(planService services.DevelopmentPlanService) *DevelopmentPlanController {
	return &DevelopmentPlanController{planService: planService}
}

// ListPlans lists development plans
// @Summary List development plans
// @Tags development-plans
// @Produce json
// @Security BearerAuth
// @Param traineeId query int false "Trainee ID"
// @Param status query string false "Plan status" Enums(ACTIVE, COMPLETED, CANCELLED)
// @Success 200 {object} dto.APIResponse{data=[]dto.DevelopmentPlanDetail} "Development plans"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /development-plans [get]
func (c *DevelopmentPlanController) ListPlans(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var query dto.RecordListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	plans, err := c.planService.ListPlans(ctx.Request.Context(), scope, query.TraineeID, query.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(plans, ""))
}

// CreatePlan creates a development plan authored by the caller
// @Summary Create a development plan
// @Tags development-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDevelopmentPlanRequest true "Development plan"
// @Success 201 {object} dto.APIResponse{data=models.DevelopmentPlan} "Development plan created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /development-plans [post]
func (c *DevelopmentPlanController) CreatePlan(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var req dto.CreateDevelopmentPlanRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	plan, err := c.planService.CreatePlan(ctx.Request.Context(), scope, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(plan, "Development plan created successfully"))
}

// UpdatePlan applies a partial update
// @Summary Update a development plan
// @Tags development-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Plan ID" Format(int64) minimum(1)
// @Param request body dto.UpdateDevelopmentPlanRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=models.DevelopmentPlan} "Development plan updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Development plan not found"
// @Router /development-plans/{id} [put]
func (c *DevelopmentPlanController) UpdatePlan(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateDevelopmentPlanRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	plan, err := c.planService.UpdatePlan(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(plan, "Development plan updated successfully"))
}
