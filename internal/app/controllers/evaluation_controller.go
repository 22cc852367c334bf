package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
)

// EvaluationController handles skill evaluations
type EvaluationController struct {
	evaluationService services.EvaluationService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService services.EvaluationService) *EvaluationController {
	return &EvaluationController{evaluationService: evaluationService}
}

// ListEvaluations lists evaluations, newest first
// @Summary List evaluations
// @Tags evaluations
// @Produce json
// @Security BearerAuth
// @Param traineeId query int false "Trainee ID"
// @Param period query string false "Quarter such as 2024-Q3"
// @Success 200 {object} dto.APIResponse{data=[]dto.EvaluationDetail} "Evaluations"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /evaluations [get]
func (c *EvaluationController) ListEvaluations(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var query dto.RecordListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	evaluations, err := c.evaluationService.ListEvaluations(ctx.Request.Context(), scope, query.TraineeID, query.Period)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(evaluations, ""))
}

// CreateEvaluation records a skill evaluation by the caller
// @Summary Create an evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEvaluationRequest true "Evaluation"
// @Success 201 {object} dto.APIResponse{data=models.Evaluation} "Evaluation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or inactive skill"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /evaluations [post]
func (c *EvaluationController) CreateEvaluation(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var req dto.CreateEvaluationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.CreateEvaluation(ctx.Request.Context(), scope, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(evaluation, "Evaluation created successfully"))
}

// UpdateEvaluation applies a partial update
// @Summary Update an evaluation
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Evaluation ID" Format(int64) minimum(1)
// @Param request body dto.UpdateEvaluationRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=models.Evaluation} "Evaluation updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Evaluation not found"
// @Router /evaluations/{id} [put]
func (c *EvaluationController) UpdateEvaluation(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEvaluationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	evaluation, err := c.evaluationService.UpdateEvaluation(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(evaluation, "Evaluation updated successfully"))
}
