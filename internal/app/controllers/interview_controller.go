package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
)

// InterviewController handles trainee interviews
type InterviewController struct {
	interviewService services.InterviewService
}

// NewInterviewController creates a new InterviewController
func NewInterviewController(interviewService services.InterviewService) *InterviewController {
	return &InterviewController{interviewService: interviewService}
}

// ListInterviews lists interviews, newest first
// @Summary List interviews
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param traineeId query int false "Trainee ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.InterviewDetail} "Interviews"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /interviews [get]
func (c *InterviewController) ListInterviews(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var query dto.RecordListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	interviews, err := c.interviewService.ListInterviews(ctx.Request.Context(), scope, query.TraineeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(interviews, ""))
}

// CreateInterview records an interview held by the caller
// @Summary Create an interview
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInterviewRequest true "Interview"
// @Success 201 {object} dto.APIResponse{data=models.Interview} "Interview created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /interviews [post]
func (c *InterviewController) CreateInterview(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var req dto.CreateInterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.CreateInterview(ctx.Request.Context(), scope, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(interview, "Interview created successfully"))
}

// UpdateInterview applies a partial update
// @Summary Update an interview
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Interview ID" Format(int64) minimum(1)
// @Param request body dto.UpdateInterviewRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=models.Interview} "Interview updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /interviews/{id} [put]
func (c *InterviewController) UpdateInterview(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateInterviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	interview, err := c.interviewService.UpdateInterview(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(interview, "Interview updated successfully"))
}
