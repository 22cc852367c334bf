package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
)

type fakeNotificationStore struct {
	stored map[string]models.Notification
	err    error
}

func (f *fakeNotificationStore) InsertNotifications(_ context.Context, notifications []models.Notification) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.stored == nil {
		f.stored = map[string]models.Notification{}
	}
	created := 0
	for _, n := range notifications {
		if _, ok := f.stored[n.DedupeKey]; ok {
			continue
		}
		f.stored[n.DedupeKey] = n
		created++
	}
	return created, nil
}

func (f *fakeNotificationStore) ListNotifications(context.Context, auth.Scope, bool, uint64, int) ([]models.Notification, int64, int64, error) {
	return nil, 0, 0, nil
}

func (f *fakeNotificationStore) MarkAsRead(context.Context, auth.Scope, int64) error {
	return nil
}

func TestExpiryPriority(t *testing.T) {
	tests := []struct {
		days int
		want models.NotificationPriority
	}{
		{-3, models.PriorityUrgent},
		{0, models.PriorityUrgent},
		{1, models.PriorityHigh},
		{14, models.PriorityHigh},
		{15, models.PriorityMedium},
		{60, models.PriorityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, expiryPriority(tt.days), "days=%d", tt.days)
	}
}

func TestNotificationsFromAlerts(t *testing.T) {
	ref := models.TraineeRef{ID: 7, TraineeCode: "T007", FirstName: "An", LastName: "Tran", Department: "製造部"}
	days := 20
	due := day(20)
	last := day(-200)

	alerts := &models.DashboardAlerts{
		VisaExpiry:        []models.VisaExpiryAlert{{TraineeRef: ref, VisaExpiryDate: day(5), DaysRemaining: 5}},
		CertificateExpiry: []models.CertificateExpiryAlert{{ID: 3, Name: "溶接", ExpiryDate: day(-1), DaysRemaining: -1, Trainee: ref}},
		HealthCheckDue: []models.HealthCheckAlert{
			{TraineeRef: ref},
			{TraineeRef: ref, LastHealthCheck: &last, NextDueDate: &due, DaysRemaining: &days},
		},
		EvaluationDue: []models.EvaluationDueAlert{{TraineeID: 7, TraineeCode: "T007", TraineeName: "Tran An", Department: "製造部", SkillID: 2, SkillName: "機械操作", Period: "2024-Q3"}},
		InterviewDue:  []models.InterviewDueAlert{{TraineeRef: ref}},
	}

	got := NotificationsFromAlerts(alerts)
	require.Len(t, got, 6)

	assert.Equal(t, models.NotificationVisaExpiry, got[0].Type)
	assert.Equal(t, models.PriorityHigh, got[0].Priority)
	assert.Equal(t, "VISA_EXPIRY:7:visa:2024-08-20", got[0].DedupeKey)
	assert.Equal(t, "製造部", *got[0].Department)
	assert.Equal(t, int64(7), *got[0].TraineeID)

	assert.Equal(t, models.PriorityUrgent, got[1].Priority)
	assert.Equal(t, "CERTIFICATE_EXPIRY:7:3:2024-08-14", got[1].DedupeKey)

	assert.Equal(t, models.PriorityUrgent, got[2].Priority)
	assert.Equal(t, "HEALTH_CHECK_DUE:7:health:never", got[2].DedupeKey)
	assert.Equal(t, models.PriorityMedium, got[3].Priority)
	assert.Equal(t, "HEALTH_CHECK_DUE:7:health:2024-09-04", got[3].DedupeKey)

	assert.Equal(t, "EVALUATION_DUE:7:2:2024-Q3", got[4].DedupeKey)
	assert.Equal(t, "INTERVIEW_DUE:7:interview:never", got[5].DedupeKey)
	assert.Equal(t, models.PriorityMedium, got[5].Priority)
}

func TestScanAlerts_IsIdempotent(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{newTrainee(1, "T001", "製造部", "ベトナム", 10)},
		skills:   []models.SkillMaster{{ID: 1, Name: "日本語能力", IsActive: true}},
	}
	inbox := &fakeNotificationStore{}
	svc := NewNotificationService(inbox, newTestDashboard(store), zerolog.Nop())

	created, err := svc.ScanAlerts(context.Background())
	require.NoError(t, err)
	// visa, health (never), evaluation, interview (never)
	assert.Equal(t, 4, created)

	created, err = svc.ScanAlerts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Len(t, inbox.stored, 4)
}

func TestScanAlerts_Failures(t *testing.T) {
	_, err := NewNotificationService(&fakeNotificationStore{}, newTestDashboard(&fakeDashboardStore{failOn: "ListActiveSkills"}), zerolog.Nop()).
		ScanAlerts(context.Background())
	assert.Error(t, err)

	_, err = NewNotificationService(&fakeNotificationStore{err: errors.New("tx aborted")}, newTestDashboard(&fakeDashboardStore{}), zerolog.Nop()).
		ScanAlerts(context.Background())
	assert.Error(t, err)
}
