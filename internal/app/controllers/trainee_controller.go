package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
	"github.com/yigit/traineehub/internal/pkg/csvexport"
	"github.com/yigit/traineehub/internal/pkg/helpers"
)

// TraineeController handles trainee record operations
type TraineeController struct {
	traineeService services.TraineeService
	recordService  services.TraineeRecordService
}

// NewTraineeController creates a new TraineeController
func NewTraineeController(traineeService services.TraineeService, recordService services.TraineeRecordService) *TraineeController {
	return &TraineeController{
		traineeService: traineeService,
		recordService:  recordService,
	}
}

// ListTrainees returns one page of trainees
// @Summary List trainees
// @Description Lists active trainees visible to the caller with optional filters
// @Tags trainees
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches name, kana or trainee code"
// @Param nationality query string false "Nationality"
// @Param department query string false "Department"
// @Param visaExpiry query int false "Visa expires within this many days"
// @Param sortBy query string false "Sort column" Enums(createdAt, traineeCode, firstName, lastName, nationality, department, visaExpiryDate, entryDate)
// @Param sortOrder query string false "Sort order" Enums(asc, desc)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.TraineeListResponse} "Trainees"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees [get]
func (c *TraineeController) ListTrainees(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	var query dto.TraineeListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.traineeService.ListTrainees(ctx.Request.Context(), scope, query, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// ExportCSV downloads the visible trainees as CSV
// @Summary Export trainees as CSV
// @Description UTF-8 CSV with a byte order mark so spreadsheet tools detect the encoding
// @Tags trainees
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file "trainees.csv"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees/export/csv [get]
func (c *TraineeController) ExportCSV(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := c.traineeService.ExportCSV(ctx.Request.Context(), scope, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvexport.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// GetTrainee returns a trainee with its related records
// @Summary Get trainee details
// @Tags trainees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.TraineeDetailResponse} "Trainee"
// @Failure 400 {object} dto.ErrorResponse "Invalid trainee ID"
// @Failure 403 {object} dto.ErrorResponse "Trainee belongs to another department"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees/{id} [get]
func (c *TraineeController) GetTrainee(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	detail, err := c.traineeService.GetTraineeDetail(ctx.Request.Context(), scope, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail, ""))
}

// CreateTrainee registers a trainee
// @Summary Create a trainee
// @Tags trainees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTraineeRequest true "Trainee"
// @Success 201 {object} dto.APIResponse{data=models.Trainee} "Trainee created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Department not allowed"
// @Failure 409 {object} dto.ErrorResponse "Trainee code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees [post]
func (c *TraineeController) CreateTrainee(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}

	var req dto.CreateTraineeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	trainee, err := c.traineeService.CreateTrainee(ctx.Request.Context(), scope, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(trainee, "Trainee created successfully"))
}

// UpdateTrainee applies a partial update
// @Summary Update a trainee
// @Tags trainees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Param request body dto.UpdateTraineeRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=models.Trainee} "Trainee updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees/{id} [put]
func (c *TraineeController) UpdateTrainee(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTraineeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	trainee, err := c.traineeService.UpdateTrainee(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trainee, "Trainee updated successfully"))
}

// DeleteTrainee deactivates a trainee
// @Summary Deactivate a trainee
// @Description Trainees are never removed; the record is marked inactive and disappears from listings and the dashboard
// @Tags trainees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Trainee deactivated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /trainees/{id} [delete]
func (c *TraineeController) DeleteTrainee(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.traineeService.DeleteTrainee(ctx.Request.Context(), scope, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Trainee deactivated successfully"))
}

// ListHealthRecords returns a trainee's health records, newest first
// @Summary List health records
// @Tags trainees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.HealthRecord} "Health records"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /trainees/{id}/health-records [get]
func (c *TraineeController) ListHealthRecords(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.recordService.ListHealthRecords(ctx.Request.Context(), scope, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// CreateHealthRecord adds a health record
// @Summary Create a health record
// @Tags trainees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Param request body dto.CreateHealthRecordRequest true "Health record"
// @Success 201 {object} dto.APIResponse{data=models.HealthRecord} "Health record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /trainees/{id}/health-records [post]
func (c *TraineeController) CreateHealthRecord(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateHealthRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.recordService.CreateHealthRecord(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record, "Health record created successfully"))
}

// ListOJTRecords returns a trainee's OJT records, newest first
// @Summary List OJT records
// @Tags trainees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.OJTRecord} "OJT records"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /trainees/{id}/ojt-records [get]
func (c *TraineeController) ListOJTRecords(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.recordService.ListOJTRecords(ctx.Request.Context(), scope, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// CreateOJTRecord adds an OJT record
// @Summary Create an OJT record
// @Tags trainees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trainee ID" Format(int64) minimum(1)
// @Param request body dto.CreateOJTRecordRequest true "OJT record"
// @Success 201 {object} dto.APIResponse{data=models.OJTRecord} "OJT record created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /trainees/{id}/ojt-records [post]
func (c *TraineeController) CreateOJTRecord(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOJTRecordRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	record, err := c.recordService.CreateOJTRecord(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(record, "OJT record created successfully"))
}
