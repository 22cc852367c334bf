package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
)

// CertificateController handles trainee certificates
type CertificateController struct {
	certificateService services.CertificateService
}

// NewCertificateController creates a new CertificateController
func NewCertificateController(certificateService services.CertificateService) *CertificateController {
	return &CertificateController{certificateService: certificateService}
}

// ListCertificates lists active certificates, soonest expiry first
// @Summary List certificates
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param traineeId query int false "Only this trainee's certificates"
// @Success 200 {object} dto.APIResponse{data=[]models.Certificate} "Certificates"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /certificates [get]
func (c *CertificateController) ListCertificates(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var query dto.RecordListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}

	certificates, err := c.certificateService.ListCertificates(ctx.Request.Context(), scope, query.TraineeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificates, ""))
}

// CreateCertificate registers a certificate
// @Summary Create a certificate
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCertificateRequest true "Certificate"
// @Success 201 {object} dto.APIResponse{data=models.Certificate} "Certificate created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Trainee not found"
// @Router /certificates [post]
func (c *CertificateController) CreateCertificate(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var req dto.CreateCertificateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	certificate, err := c.certificateService.CreateCertificate(ctx.Request.Context(), scope, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(certificate, "Certificate created successfully"))
}

// UpdateCertificate applies a partial update
// @Summary Update a certificate
// @Tags certificates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID" Format(int64) minimum(1)
// @Param request body dto.UpdateCertificateRequest true "Changed fields"
// @Success 200 {object} dto.APIResponse{data=models.Certificate} "Certificate updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/{id} [put]
func (c *CertificateController) UpdateCertificate(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateCertificateRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	certificate, err := c.certificateService.UpdateCertificate(ctx.Request.Context(), scope, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(certificate, "Certificate updated successfully"))
}

// DeleteCertificate deactivates a certificate
// @Summary Deactivate a certificate
// @Tags certificates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Certificate deactivated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/{id} [delete]
func (c *CertificateController) DeleteCertificate(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.certificateService.DeactivateCertificate(ctx.Request.Context(), scope, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Certificate deactivated successfully"))
}
