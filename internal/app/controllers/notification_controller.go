package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/services"
	"github.com/yigit/traineehub/internal/middleware"
	"github.com/yigit/traineehub/internal/pkg/helpers"
)

// AlertScanQueue hands an alert scan to the background worker and returns the task id
type AlertScanQueue interface {
	EnqueueAlertScan(ctx context.Context) (string, error)
}

// NotificationController serves the notification inbox
type NotificationController struct {
	notificationService services.NotificationService
	queue               AlertScanQueue
}

// NewNotificationController creates a new NotificationController. With a nil queue a
// manual scan runs inside the request.
func NewNotificationController(notificationService services.NotificationService, queue AlertScanQueue) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		queue:               queue,
	}
}

// ListNotifications returns one page of the caller's notifications
// @Summary List notifications
// @Description Notifications about the caller's visible trainees, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unreadOnly query bool false "Only unread notifications"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	var query dto.NotificationListQuery
	if !middleware.BindQuery(ctx, &query) {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	notifications, total, unread, err := c.notificationService.ListNotifications(ctx.Request.Context(), scope, query.UnreadOnly, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NotificationListResponse{
		Notifications: notifications,
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, limit),
	}, ""))
}

// MarkAsRead flags a notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Notification marked as read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	scope, ok := requestScope(ctx)
	if !ok {
		return
	}
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkAsRead(ctx.Request.Context(), scope, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Notification marked as read"))
}

// ScanAlerts triggers an alert scan outside the schedule
// @Summary Trigger an alert scan
// @Description Queues the alert scan when the job worker is enabled, otherwise runs it immediately
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 202 {object} dto.APIResponse{data=dto.AlertScanResponse} "Scan queued"
// @Success 200 {object} dto.APIResponse{data=dto.AlertScanResponse} "Scan completed"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Alerts unavailable"
// @Router /notifications/scan [post]
func (c *NotificationController) ScanAlerts(ctx *gin.Context) {
	if c.queue != nil {
		taskID, err := c.queue.EnqueueAlertScan(ctx.Request.Context())
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusAccepted, dto.NewSuccessResponse(dto.AlertScanResponse{Queued: true, TaskID: taskID}, "Alert scan queued"))
		return
	}

	created, err := c.notificationService.ScanAlerts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AlertScanResponse{Created: created}, "Alert scan completed"))
}
