package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/helpers"
)

// urgentWithinDays is the horizon below which an upcoming expiry is HIGH priority.
const urgentWithinDays = 14

// NotificationStore persists notifications
type NotificationStore interface {
	InsertNotifications(ctx context.Context, notifications []models.Notification) (int, error)
	ListNotifications(ctx context.Context, scope auth.Scope, unreadOnly bool, offset uint64, limit int) ([]models.Notification, int64, int64, error)
	MarkAsRead(ctx context.Context, scope auth.Scope, id int64) error
}

// NotificationService turns dashboard alerts into stored notifications and serves the inbox
type NotificationService interface {
	ScanAlerts(ctx context.Context) (int, error)
	ListNotifications(ctx context.Context, scope auth.Scope, unreadOnly bool, offset uint64, limit int) ([]models.Notification, int64, int64, error)
	MarkAsRead(ctx context.Context, scope auth.Scope, id int64) error
}

type notificationServiceImpl struct {
	store     NotificationStore
	dashboard DashboardService
	logger    zerolog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(store NotificationStore, dashboard DashboardService, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{store: store, dashboard: dashboard, logger: logger}
}

// ScanAlerts computes alerts for every department and stores the ones not seen before.
// It returns how many notifications were created.
func (s *notificationServiceImpl) ScanAlerts(ctx context.Context) (int, error) {
	alerts, err := s.dashboard.GetAlerts(ctx, auth.AdminScope())
	if err != nil {
		return 0, fmt.Errorf("error computing alerts: %w", err)
	}

	notifications := NotificationsFromAlerts(alerts)
	created, err := s.store.InsertNotifications(ctx, notifications)
	if err != nil {
		return 0, fmt.Errorf("error storing notifications: %w", err)
	}

	s.logger.Info().
		Int("alerts", len(notifications)).
		Int("created", created).
		Msg("Alert scan complete")
	return created, nil
}

// ListNotifications returns one page of the caller's notifications plus total and unread counts
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, scope auth.Scope, unreadOnly bool, offset uint64, limit int) ([]models.Notification, int64, int64, error) {
	notifications, total, unread, err := s.store.ListNotifications(ctx, scope, unreadOnly, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("error retrieving notifications: %w", err)
	}
	return notifications, total, unread, nil
}

// MarkAsRead flags a notification as read
func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, scope auth.Scope, id int64) error {
	return s.store.MarkAsRead(ctx, scope, id)
}

// expiryPriority grades an alert by the days left before its due date.
func expiryPriority(daysRemaining int) models.NotificationPriority {
	switch {
	case daysRemaining <= 0:
		return models.PriorityUrgent
	case daysRemaining <= urgentWithinDays:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

func dedupeKey(t models.NotificationType, traineeID int64, ref, date string) string {
	return fmt.Sprintf("%s:%d:%s:%s", t, traineeID, ref, date)
}

func newNotification(t models.NotificationType, ref models.TraineeRef, priority models.NotificationPriority, title, message, key string) models.Notification {
	traineeID := ref.ID
	department := ref.Department
	return models.Notification{
		TraineeID:  &traineeID,
		Department: &department,
		Type:       t,
		Title:      title,
		Message:    message,
		Priority:   priority,
		DedupeKey:  key,
	}
}

// NotificationsFromAlerts builds one notification per alert. Dedupe keys identify the alert and its
// due date, so a rescheduled due date produces a fresh notification.
func NotificationsFromAlerts(alerts *models.DashboardAlerts) []models.Notification {
	var out []models.Notification

	for _, a := range alerts.VisaExpiry {
		date := a.VisaExpiryDate.Format(helpers.DateLayout)
		out = append(out, newNotification(
			models.NotificationVisaExpiry, a.TraineeRef, expiryPriority(a.DaysRemaining),
			"在留期限が近づいています",
			fmt.Sprintf("%s（%s）の在留期限は%sです（残り%d日）", a.FullName(), a.TraineeCode, date, a.DaysRemaining),
			dedupeKey(models.NotificationVisaExpiry, a.ID, "visa", date),
		))
	}

	for _, a := range alerts.CertificateExpiry {
		date := a.ExpiryDate.Format(helpers.DateLayout)
		out = append(out, newNotification(
			models.NotificationCertificateExpiry, a.Trainee, expiryPriority(a.DaysRemaining),
			"資格の有効期限が近づいています",
			fmt.Sprintf("%s（%s）の「%s」の有効期限は%sです（残り%d日）", a.Trainee.FullName(), a.Trainee.TraineeCode, a.Name, date, a.DaysRemaining),
			dedupeKey(models.NotificationCertificateExpiry, a.Trainee.ID, strconv.FormatInt(a.ID, 10), date),
		))
	}

	for _, a := range alerts.HealthCheckDue {
		priority, date := models.PriorityUrgent, "never"
		message := fmt.Sprintf("%s（%s）の健康診断記録がありません", a.FullName(), a.TraineeCode)
		if a.NextDueDate != nil && a.DaysRemaining != nil {
			priority = expiryPriority(*a.DaysRemaining)
			date = a.NextDueDate.Format(helpers.DateLayout)
			message = fmt.Sprintf("%s（%s）の次回健康診断期限は%sです", a.FullName(), a.TraineeCode, date)
		}
		out = append(out, newNotification(
			models.NotificationHealthCheckDue, a.TraineeRef, priority,
			"健康診断の時期です", message,
			dedupeKey(models.NotificationHealthCheckDue, a.ID, "health", date),
		))
	}

	for _, a := range alerts.EvaluationDue {
		ref := models.TraineeRef{ID: a.TraineeID, TraineeCode: a.TraineeCode, Department: a.Department}
		out = append(out, newNotification(
			models.NotificationEvaluationDue, ref, models.PriorityMedium,
			"評価が未実施です",
			fmt.Sprintf("%s（%s）の%sの「%s」評価が未実施です", a.TraineeName, a.TraineeCode, a.Period, a.SkillName),
			dedupeKey(models.NotificationEvaluationDue, a.TraineeID, strconv.FormatInt(a.SkillID, 10), a.Period),
		))
	}

	for _, a := range alerts.InterviewDue {
		date := "never"
		if a.LastInterview != nil {
			date = a.LastInterview.Format(helpers.DateLayout)
		}
		out = append(out, newNotification(
			models.NotificationInterviewDue, a.TraineeRef, models.PriorityMedium,
			"面談の時期です",
			fmt.Sprintf("%s（%s）の最終面談日: %s", a.FullName(), a.TraineeCode, date),
			dedupeKey(models.NotificationInterviewDue, a.ID, "interview", date),
		))
	}

	return out
}
