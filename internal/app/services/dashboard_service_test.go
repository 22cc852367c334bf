package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

var (
	fixedNow = time.Date(2024, time.August, 15, 10, 30, 0, 0, time.UTC)
	today    = time.Date(2024, time.August, 15, 0, 0, 0, 0, time.UTC)

	adminScope = auth.Scope{Role: models.RoleAdmin}
	mfgScope   = auth.Scope{Role: models.RoleDepartment, Department: "製造部"}
)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func datePtr(t time.Time) *time.Time {
	return &t
}

// fakeDashboardStore evaluates the store contract in memory.
type fakeDashboardStore struct {
	trainees     []models.Trainee
	certificates []models.Certificate
	health       []models.HealthRecord
	skills       []models.SkillMaster
	evaluations  []models.Evaluation
	interviews   []models.Interview
	ojt          []models.OJTRecord
	users        map[int64]string
	failOn       string
}

func (f *fakeDashboardStore) fail(name string) error {
	if f.failOn == name {
		return errors.New("connection reset by peer")
	}
	return nil
}

func (f *fakeDashboardStore) visible(scope auth.Scope) []models.Trainee {
	var out []models.Trainee
	for i := range f.trainees {
		if scope.Allows(&f.trainees[i]) {
			out = append(out, f.trainees[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TraineeCode < out[j].TraineeCode })
	return out
}

func (f *fakeDashboardStore) visibleByID(scope auth.Scope, id int64) (models.Trainee, bool) {
	for _, t := range f.visible(scope) {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trainee{}, false
}

func (f *fakeDashboardStore) CountTrainees(_ context.Context, scope auth.Scope, enteredSince *time.Time) (int64, error) {
	if err := f.fail("CountTrainees"); err != nil {
		return 0, err
	}
	var n int64
	for _, t := range f.visible(scope) {
		if enteredSince == nil || !t.EntryDate.Before(*enteredSince) {
			n++
		}
	}
	return n, nil
}

func (f *fakeDashboardStore) CountTraineesBy(_ context.Context, scope auth.Scope, group models.TraineeGroup) ([]models.GroupCount, error) {
	if err := f.fail("CountTraineesBy"); err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, t := range f.visible(scope) {
		key := t.Department
		if group == models.GroupByNationality {
			key = t.Nationality
		}
		counts[key]++
	}
	var out []models.GroupCount
	for k, c := range counts {
		out = append(out, models.GroupCount{Key: k, Count: c})
	}
	return out, nil
}

func (f *fakeDashboardStore) ListEvaluationSamples(_ context.Context, scope auth.Scope, since time.Time) ([]models.EvaluationSample, error) {
	if err := f.fail("ListEvaluationSamples"); err != nil {
		return nil, err
	}
	var out []models.EvaluationSample
	for _, e := range f.evaluations {
		if _, ok := f.visibleByID(scope, e.TraineeID); ok && !e.EvaluationDate.Before(since) {
			out = append(out, models.EvaluationSample{
				EvaluationID: e.ID, TraineeID: e.TraineeID, SkillID: e.SkillID, Level: e.Level, EvaluationDate: e.EvaluationDate,
			})
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListVisaExpiring(_ context.Context, scope auth.Scope, until time.Time) ([]models.VisaExpiryAlert, error) {
	if err := f.fail("ListVisaExpiring"); err != nil {
		return nil, err
	}
	var out []models.VisaExpiryAlert
	for _, t := range f.visible(scope) {
		if !t.VisaExpiryDate.After(until) {
			out = append(out, models.VisaExpiryAlert{TraineeRef: t.Ref(), VisaExpiryDate: t.VisaExpiryDate})
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListCertificatesExpiring(_ context.Context, scope auth.Scope, until time.Time) ([]models.CertificateExpiryAlert, error) {
	if err := f.fail("ListCertificatesExpiring"); err != nil {
		return nil, err
	}
	var out []models.CertificateExpiryAlert
	for _, c := range f.certificates {
		t, ok := f.visibleByID(scope, c.TraineeID)
		if !ok || !c.IsActive || c.ExpiryDate == nil || c.ExpiryDate.After(until) {
			continue
		}
		out = append(out, models.CertificateExpiryAlert{ID: c.ID, Name: c.Name, ExpiryDate: *c.ExpiryDate, Trainee: t.Ref()})
	}
	return out, nil
}

func (f *fakeDashboardStore) lastEvents(scope auth.Scope, dates func(traineeID int64) []time.Time) []models.TraineeLastEvent {
	out := []models.TraineeLastEvent{}
	for _, t := range f.visible(scope) {
		ev := models.TraineeLastEvent{Trainee: t.Ref()}
		for _, d := range dates(t.ID) {
			if ev.Last == nil || d.After(*ev.Last) {
				ev.Last = datePtr(d)
			}
		}
		out = append(out, ev)
	}
	return out
}

func (f *fakeDashboardStore) ListLastHealthChecks(_ context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error) {
	if err := f.fail("ListLastHealthChecks"); err != nil {
		return nil, err
	}
	return f.lastEvents(scope, func(id int64) []time.Time {
		var ds []time.Time
		for _, h := range f.health {
			if h.TraineeID == id && h.RecordType == models.HealthRecordCheck {
				ds = append(ds, h.RecordDate)
			}
		}
		return ds
	}), nil
}

func (f *fakeDashboardStore) ListLastInterviews(_ context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error) {
	if err := f.fail("ListLastInterviews"); err != nil {
		return nil, err
	}
	return f.lastEvents(scope, func(id int64) []time.Time {
		var ds []time.Time
		for _, i := range f.interviews {
			if i.TraineeID == id {
				ds = append(ds, i.InterviewDate)
			}
		}
		return ds
	}), nil
}

func (f *fakeDashboardStore) ListVisibleTrainees(_ context.Context, scope auth.Scope) ([]models.TraineeRef, error) {
	if err := f.fail("ListVisibleTrainees"); err != nil {
		return nil, err
	}
	var out []models.TraineeRef
	for _, t := range f.visible(scope) {
		out = append(out, t.Ref())
	}
	return out, nil
}

func (f *fakeDashboardStore) ListActiveSkills(_ context.Context) ([]models.SkillMaster, error) {
	if err := f.fail("ListActiveSkills"); err != nil {
		return nil, err
	}
	var out []models.SkillMaster
	for _, s := range f.skills {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListEvaluatedPairs(_ context.Context, scope auth.Scope, period string) ([]models.EvaluationPair, error) {
	if err := f.fail("ListEvaluatedPairs"); err != nil {
		return nil, err
	}
	var out []models.EvaluationPair
	for _, e := range f.evaluations {
		if _, ok := f.visibleByID(scope, e.TraineeID); ok && e.Period == period {
			out = append(out, models.EvaluationPair{TraineeID: e.TraineeID, SkillID: e.SkillID})
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListRecentEvaluations(_ context.Context, scope auth.Scope, limit int) ([]models.EvaluationActivity, error) {
	if err := f.fail("ListRecentEvaluations"); err != nil {
		return nil, err
	}
	var out []models.EvaluationActivity
	for _, e := range f.evaluations {
		if t, ok := f.visibleByID(scope, e.TraineeID); ok {
			out = append(out, models.EvaluationActivity{
				ID: e.ID, Level: e.Level, Period: e.Period, EvaluationDate: e.EvaluationDate,
				Trainee: t.Ref(), EvaluatorName: f.users[e.EvaluatorID],
			})
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListRecentInterviews(_ context.Context, scope auth.Scope, limit int) ([]models.InterviewActivity, error) {
	if err := f.fail("ListRecentInterviews"); err != nil {
		return nil, err
	}
	var out []models.InterviewActivity
	for _, i := range f.interviews {
		if t, ok := f.visibleByID(scope, i.TraineeID); ok {
			out = append(out, models.InterviewActivity{
				ID: i.ID, Type: i.Type, InterviewDate: i.InterviewDate, Content: i.Content,
				Trainee: t.Ref(), InterviewerName: f.users[i.InterviewerID],
			})
		}
	}
	return out, nil
}

func (f *fakeDashboardStore) ListRecentOJTRecords(_ context.Context, scope auth.Scope, limit int) ([]models.OJTActivity, error) {
	if err := f.fail("ListRecentOJTRecords"); err != nil {
		return nil, err
	}
	var out []models.OJTActivity
	for _, o := range f.ojt {
		if t, ok := f.visibleByID(scope, o.TraineeID); ok {
			out = append(out, models.OJTActivity{ID: o.ID, Date: o.Date, Content: o.Content, Trainee: t.Ref()})
		}
	}
	return out, nil
}

func newTrainee(id int64, code, dept, nationality string, visaIn int) models.Trainee {
	return models.Trainee{
		ID:             id,
		TraineeCode:    code,
		FirstName:      "Name" + code,
		LastName:       "Family" + code,
		Nationality:    nationality,
		Department:     dept,
		VisaExpiryDate: day(visaIn),
		EntryDate:      day(-400),
		IsActive:       true,
	}
}

func newTestDashboard(store *fakeDashboardStore) DashboardService {
	return NewDashboardService(store, DefaultDashboardSettings(), func() time.Time { return fixedNow })
}

func traineeIDs[T any](list []T, id func(T) int64) []int64 {
	ids := []int64{}
	for _, item := range list {
		ids = append(ids, id(item))
	}
	return ids
}

func TestGetAlerts_VisaExpiry(t *testing.T) {
	inactive := newTrainee(5, "T005", "製造部", "ベトナム", 10)
	inactive.IsActive = false

	store := &fakeDashboardStore{trainees: []models.Trainee{
		newTrainee(1, "T001", "製造部", "ベトナム", 30),
		newTrainee(2, "T002", "製造部", "ベトナム", 60),
		newTrainee(3, "T003", "製造部", "ベトナム", 61),
		newTrainee(4, "T004", "品質部", "フィリピン", -5),
		inactive,
	}}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	require.Len(t, alerts.VisaExpiry, 3)
	assert.Equal(t, []int64{4, 1, 2}, traineeIDs(alerts.VisaExpiry, func(a models.VisaExpiryAlert) int64 { return a.ID }))
	assert.Equal(t, -5, alerts.VisaExpiry[0].DaysRemaining)
	assert.Equal(t, 30, alerts.VisaExpiry[1].DaysRemaining)
	assert.Equal(t, 60, alerts.VisaExpiry[2].DaysRemaining)
}

func TestGetAlerts_DepartmentScope(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "T001", "製造部", "ベトナム", 10),
			newTrainee(2, "T002", "品質部", "ベトナム", 10),
		},
		certificates: []models.Certificate{
			{ID: 11, TraineeID: 1, Name: "フォークリフト", ExpiryDate: datePtr(day(5)), IsActive: true},
			{ID: 12, TraineeID: 2, Name: "玉掛け", ExpiryDate: datePtr(day(5)), IsActive: true},
		},
		skills: []models.SkillMaster{{ID: 1, Name: "日本語能力", IsActive: true}},
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), mfgScope)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, traineeIDs(alerts.VisaExpiry, func(a models.VisaExpiryAlert) int64 { return a.ID }))
	assert.Equal(t, []int64{1}, traineeIDs(alerts.CertificateExpiry, func(a models.CertificateExpiryAlert) int64 { return a.Trainee.ID }))
	assert.Equal(t, []int64{1}, traineeIDs(alerts.HealthCheckDue, func(a models.HealthCheckAlert) int64 { return a.ID }))
	assert.Equal(t, []int64{1}, traineeIDs(alerts.InterviewDue, func(a models.InterviewDueAlert) int64 { return a.ID }))
	assert.Equal(t, []int64{1}, traineeIDs(alerts.EvaluationDue, func(a models.EvaluationDueAlert) int64 { return a.TraineeID }))
}

func TestGetAlerts_CertificateExpiry(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{newTrainee(1, "T001", "製造部", "ベトナム", 365)},
		certificates: []models.Certificate{
			{ID: 1, TraineeID: 1, Name: "later", ExpiryDate: datePtr(day(30)), IsActive: true},
			{ID: 2, TraineeID: 1, Name: "sooner", ExpiryDate: datePtr(day(3)), IsActive: true},
			{ID: 3, TraineeID: 1, Name: "too far", ExpiryDate: datePtr(day(31)), IsActive: true},
			{ID: 4, TraineeID: 1, Name: "inactive", ExpiryDate: datePtr(day(1)), IsActive: false},
			{ID: 5, TraineeID: 1, Name: "no expiry", IsActive: true},
		},
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	require.Len(t, alerts.CertificateExpiry, 2)
	assert.Equal(t, "sooner", alerts.CertificateExpiry[0].Name)
	assert.Equal(t, 3, alerts.CertificateExpiry[0].DaysRemaining)
	assert.Equal(t, "later", alerts.CertificateExpiry[1].Name)
	assert.Equal(t, "T001", alerts.CertificateExpiry[1].Trainee.TraineeCode)
}

func TestGetAlerts_EvaluationDue(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "A001", "製造部", "ベトナム", 365),
			newTrainee(2, "B001", "製造部", "ベトナム", 365),
		},
		skills: []models.SkillMaster{
			{ID: 1, Name: "日本語能力", IsActive: true},
			{ID: 2, Name: "機械操作", IsActive: true},
			{ID: 3, Name: "品質管理", IsActive: true},
			{ID: 4, Name: "廃止スキル", IsActive: false},
		},
		evaluations: []models.Evaluation{
			{ID: 1, TraineeID: 1, SkillID: 1, Level: 3, Period: "2024-Q3", EvaluationDate: day(-10)},
			{ID: 2, TraineeID: 1, SkillID: 2, Level: 3, Period: "2024-Q3", EvaluationDate: day(-10)},
			{ID: 3, TraineeID: 1, SkillID: 3, Level: 3, Period: "2024-Q3", EvaluationDate: day(-10)},
			{ID: 4, TraineeID: 2, SkillID: 1, Level: 4, Period: "2024-Q2", EvaluationDate: day(-60)},
		},
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	require.Len(t, alerts.EvaluationDue, 3)
	for i, a := range alerts.EvaluationDue {
		assert.Equal(t, int64(2), a.TraineeID)
		assert.Equal(t, int64(i+1), a.SkillID)
		assert.Equal(t, "2024-Q3", a.Period)
		assert.Equal(t, "FamilyB001 NameB001", a.TraineeName)
	}
}

func TestGetAlerts_HealthCheckDue(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "T001", "製造部", "ベトナム", 365),
			newTrainee(2, "T002", "製造部", "ベトナム", 365),
			newTrainee(3, "T003", "製造部", "ベトナム", 365),
		},
		health: []models.HealthRecord{
			{ID: 1, TraineeID: 2, RecordType: models.HealthRecordCheck, RecordDate: day(-280)},
			{ID: 2, TraineeID: 2, RecordType: models.HealthRecordCheck, RecordDate: day(-400)},
			{ID: 3, TraineeID: 3, RecordType: models.HealthRecordCheck, RecordDate: day(-100)},
			{ID: 4, TraineeID: 1, RecordType: models.HealthRecordVaccination, RecordDate: day(-5)},
		},
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	require.Len(t, alerts.HealthCheckDue, 2)

	never := alerts.HealthCheckDue[0]
	assert.Equal(t, int64(1), never.ID)
	assert.Nil(t, never.LastHealthCheck)
	assert.Nil(t, never.NextDueDate)
	assert.Nil(t, never.DaysRemaining)

	due := alerts.HealthCheckDue[1]
	assert.Equal(t, int64(2), due.ID)
	require.NotNil(t, due.LastHealthCheck)
	assert.Equal(t, day(-280), *due.LastHealthCheck)
	require.NotNil(t, due.NextDueDate)
	assert.Equal(t, day(-280).AddDate(1, 0, 0), *due.NextDueDate)
	require.NotNil(t, due.DaysRemaining)
	assert.Equal(t, 86, *due.DaysRemaining)
}

func TestGetAlerts_InterviewDue(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "T001", "製造部", "ベトナム", 365),
			newTrainee(2, "T002", "製造部", "ベトナム", 365),
			newTrainee(3, "T003", "製造部", "ベトナム", 365),
		},
		interviews: []models.Interview{
			{ID: 1, TraineeID: 1, InterviewDate: day(-120)},
			{ID: 2, TraineeID: 2, InterviewDate: today.AddDate(0, -3, 0)},
		},
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	require.Len(t, alerts.InterviewDue, 2)
	assert.Equal(t, int64(3), alerts.InterviewDue[0].ID)
	assert.Nil(t, alerts.InterviewDue[0].LastInterview)
	assert.Equal(t, int64(1), alerts.InterviewDue[1].ID)
	assert.Equal(t, day(-120), *alerts.InterviewDue[1].LastInterview)
}

func TestGetAlerts_EmptyStoreReturnsEmptyLists(t *testing.T) {
	alerts, err := newTestDashboard(&fakeDashboardStore{}).GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)

	assert.NotNil(t, alerts.VisaExpiry)
	assert.NotNil(t, alerts.CertificateExpiry)
	assert.NotNil(t, alerts.HealthCheckDue)
	assert.NotNil(t, alerts.EvaluationDue)
	assert.NotNil(t, alerts.InterviewDue)
	assert.Empty(t, alerts.VisaExpiry)
}

func TestGetAlerts_StoreFailureIsOpaque(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{newTrainee(1, "T001", "製造部", "ベトナム", 10)},
		failOn:   "ListEvaluatedPairs",
	}

	alerts, err := newTestDashboard(store).GetAlerts(context.Background(), adminScope)
	assert.Nil(t, alerts)
	assert.ErrorIs(t, err, apperrors.ErrAlertsUnavailable)
}

func TestGetAlerts_DeactivatedTraineeDisappears(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{newTrainee(1, "T001", "製造部", "ベトナム", 10)},
		certificates: []models.Certificate{
			{ID: 1, TraineeID: 1, Name: "cert", ExpiryDate: datePtr(day(1)), IsActive: true},
		},
		skills: []models.SkillMaster{{ID: 1, Name: "日本語能力", IsActive: true}},
	}
	svc := newTestDashboard(store)

	before, err := svc.GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)
	assert.Len(t, before.VisaExpiry, 1)

	store.trainees[0].IsActive = false

	after, err := svc.GetAlerts(context.Background(), adminScope)
	require.NoError(t, err)
	assert.Empty(t, after.VisaExpiry)
	assert.Empty(t, after.CertificateExpiry)
	assert.Empty(t, after.HealthCheckDue)
	assert.Empty(t, after.EvaluationDue)
	assert.Empty(t, after.InterviewDue)

	stats, err := svc.GetStats(context.Background(), adminScope)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTrainees)
}

func TestGetStats(t *testing.T) {
	recent := newTrainee(3, "T003", "品質部", "フィリピン", 365)
	recent.EntryDate = today.AddDate(0, -1, 0)

	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "T001", "製造部", "ベトナム", 365),
			newTrainee(2, "T002", "製造部", "インドネシア", 365),
			recent,
		},
		evaluations: []models.Evaluation{
			{ID: 1, TraineeID: 1, SkillID: 1, Level: 2, EvaluationDate: day(-40)},
			{ID: 2, TraineeID: 1, SkillID: 1, Level: 3, EvaluationDate: day(-20)},
			{ID: 3, TraineeID: 2, SkillID: 1, Level: 5, EvaluationDate: day(-10)},
			{ID: 4, TraineeID: 2, SkillID: 2, Level: 1, EvaluationDate: day(-91)},
		},
	}

	stats, err := newTestDashboard(store).GetStats(context.Background(), adminScope)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTrainees)
	assert.Equal(t, int64(1), stats.NewTrainees)
	assert.Equal(t, 4.0, stats.AverageSkillLevel)
	assert.Equal(t, []models.GroupCount{
		{Key: "製造部", Count: 2},
		{Key: "品質部", Count: 1},
	}, stats.DepartmentStats)
	assert.Equal(t, []models.GroupCount{
		{Key: "インドネシア", Count: 1},
		{Key: "フィリピン", Count: 1},
		{Key: "ベトナム", Count: 1},
	}, stats.NationalityStats)
}

func TestGetStats_NoEvaluations(t *testing.T) {
	stats, err := newTestDashboard(&fakeDashboardStore{}).GetStats(context.Background(), mfgScope)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalTrainees)
	assert.Zero(t, stats.AverageSkillLevel)
	assert.NotNil(t, stats.NationalityStats)
	assert.NotNil(t, stats.DepartmentStats)
}

func TestGetStats_Failure(t *testing.T) {
	_, err := newTestDashboard(&fakeDashboardStore{failOn: "CountTraineesBy"}).GetStats(context.Background(), adminScope)
	assert.ErrorIs(t, err, apperrors.ErrStatsUnavailable)
}

func TestAverageLatestLevel(t *testing.T) {
	windowStart := day(-90)

	tests := []struct {
		name    string
		samples []models.EvaluationSample
		want    float64
	}{
		{"none", nil, 0},
		{"two pairs", []models.EvaluationSample{
			{EvaluationID: 1, TraineeID: 1, SkillID: 1, Level: 3, EvaluationDate: day(-5)},
			{EvaluationID: 2, TraineeID: 2, SkillID: 1, Level: 5, EvaluationDate: day(-5)},
		}, 4},
		{"same date picks higher id", []models.EvaluationSample{
			{EvaluationID: 7, TraineeID: 1, SkillID: 1, Level: 2, EvaluationDate: day(-5)},
			{EvaluationID: 9, TraineeID: 1, SkillID: 1, Level: 4, EvaluationDate: day(-5)},
		}, 4},
		{"rounds to two decimals", []models.EvaluationSample{
			{EvaluationID: 1, TraineeID: 1, SkillID: 1, Level: 1, EvaluationDate: day(-1)},
			{EvaluationID: 2, TraineeID: 1, SkillID: 2, Level: 2, EvaluationDate: day(-1)},
			{EvaluationID: 3, TraineeID: 1, SkillID: 3, Level: 2, EvaluationDate: day(-1)},
		}, 1.67},
		{"outside window ignored", []models.EvaluationSample{
			{EvaluationID: 1, TraineeID: 1, SkillID: 1, Level: 1, EvaluationDate: day(-91)},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, averageLatestLevel(tt.samples, windowStart))
		})
	}
}

func TestGetRecentActivities(t *testing.T) {
	store := &fakeDashboardStore{
		trainees: []models.Trainee{
			newTrainee(1, "T001", "製造部", "ベトナム", 365),
			newTrainee(2, "T002", "品質部", "ベトナム", 365),
		},
		users: map[int64]string{100: "管理者"},
		evaluations: []models.Evaluation{
			{ID: 1, TraineeID: 1, EvaluatorID: 100, EvaluationDate: day(-3)},
			{ID: 2, TraineeID: 1, EvaluatorID: 100, EvaluationDate: day(-1)},
			{ID: 3, TraineeID: 1, EvaluatorID: 100, EvaluationDate: day(-2)},
			{ID: 4, TraineeID: 2, EvaluatorID: 100, EvaluationDate: day(0)},
		},
		interviews: []models.Interview{
			{ID: 1, TraineeID: 1, InterviewerID: 100, InterviewDate: day(-9)},
		},
	}

	feed, err := newTestDashboard(store).GetRecentActivities(context.Background(), mfgScope, 2)
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, traineeIDs(feed.Evaluations, func(a models.EvaluationActivity) int64 { return a.ID }))
	assert.Equal(t, "管理者", feed.Evaluations[0].EvaluatorName)
	assert.Len(t, feed.Interviews, 1)
	assert.NotNil(t, feed.OJTRecords)
	assert.Empty(t, feed.OJTRecords)
}

func TestGetRecentActivities_Failure(t *testing.T) {
	_, err := newTestDashboard(&fakeDashboardStore{failOn: "ListRecentOJTRecords"}).
		GetRecentActivities(context.Background(), adminScope, 0)
	assert.ErrorIs(t, err, apperrors.ErrActivitiesUnavailable)
}

func TestNormalizeActivityLimit(t *testing.T) {
	assert.Equal(t, 10, NormalizeActivityLimit(0, 10))
	assert.Equal(t, 10, NormalizeActivityLimit(-3, 0))
	assert.Equal(t, 5, NormalizeActivityLimit(5, 10))
	assert.Equal(t, MaxRecentActivitiesLimit, NormalizeActivityLimit(1000, 10))
}

func TestGetOverview(t *testing.T) {
	store := &fakeDashboardStore{trainees: []models.Trainee{newTrainee(1, "T001", "製造部", "ベトナム", 10)}}

	overview, err := newTestDashboard(store).GetOverview(context.Background(), adminScope, 0)
	require.NoError(t, err)
	require.NotNil(t, overview.Stats)
	require.NotNil(t, overview.Alerts)
	require.NotNil(t, overview.RecentActivities)
	assert.Equal(t, int64(1), overview.Stats.TotalTrainees)
	assert.Len(t, overview.Alerts.VisaExpiry, 1)

	store.failOn = "ListVisaExpiring"
	_, err = newTestDashboard(store).GetOverview(context.Background(), adminScope, 0)
	assert.ErrorIs(t, err, apperrors.ErrAlertsUnavailable)
}

func TestDashboardToday_UsesConfiguredLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	settings := DefaultDashboardSettings()
	settings.Location = tokyo

	svc := NewDashboardService(&fakeDashboardStore{}, settings, func() time.Time {
		return time.Date(2024, time.March, 31, 20, 0, 0, 0, time.UTC)
	}).(*dashboardServiceImpl)

	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), svc.today())
}
