package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/config"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/helpers"
	"github.com/yigit/traineehub/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRecentActivitiesLimit = 10
	MaxRecentActivitiesLimit     = 100
)

// DashboardStore is the read side of the record store used by the dashboard.
// Every method only sees trainees visible under the given scope.
type DashboardStore interface {
	CountTrainees(ctx context.Context, scope auth.Scope, enteredSince *time.Time) (int64, error)
	CountTraineesBy(ctx context.Context, scope auth.Scope, group models.TraineeGroup) ([]models.GroupCount, error)
	ListEvaluationSamples(ctx context.Context, scope auth.Scope, since time.Time) ([]models.EvaluationSample, error)

	ListVisaExpiring(ctx context.Context, scope auth.Scope, until time.Time) ([]models.VisaExpiryAlert, error)
	ListCertificatesExpiring(ctx context.Context, scope auth.Scope, until time.Time) ([]models.CertificateExpiryAlert, error)
	ListLastHealthChecks(ctx context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error)
	ListVisibleTrainees(ctx context.Context, scope auth.Scope) ([]models.TraineeRef, error)
	ListActiveSkills(ctx context.Context) ([]models.SkillMaster, error)
	ListEvaluatedPairs(ctx context.Context, scope auth.Scope, period string) ([]models.EvaluationPair, error)
	ListLastInterviews(ctx context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error)

	ListRecentEvaluations(ctx context.Context, scope auth.Scope, limit int) ([]models.EvaluationActivity, error)
	ListRecentInterviews(ctx context.Context, scope auth.Scope, limit int) ([]models.InterviewActivity, error)
	ListRecentOJTRecords(ctx context.Context, scope auth.Scope, limit int) ([]models.OJTActivity, error)
}

// DashboardSettings are the thresholds the aggregators work with.
type DashboardSettings struct {
	VisaExpiryDays        int
	CertificateExpiryDays int
	HealthCheckDays       int
	InterviewMonths       int
	NewTraineeMonths      int
	EvaluationWindowDays  int
	RecentActivitiesLimit int
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// NewDashboardSettings reads the alerts section of the configuration
func NewDashboardSettings(cfg *config.Config) DashboardSettings {
	return DashboardSettings{
		VisaExpiryDays:        cfg.Alerts.VisaExpiryDays,
		CertificateExpiryDays: cfg.Alerts.CertificateExpiryDays,
		HealthCheckDays:       cfg.Alerts.HealthCheckDays,
		InterviewMonths:       cfg.Alerts.InterviewMonths,
		NewTraineeMonths:      cfg.Alerts.NewTraineeMonths,
		EvaluationWindowDays:  cfg.Alerts.EvaluationWindowDays,
		RecentActivitiesLimit: cfg.Alerts.RecentActivitiesLimit,
		Location:              cfg.Location(),
	}
}

// DefaultDashboardSettings returns the stock thresholds
func DefaultDashboardSettings() DashboardSettings {
	return DashboardSettings{
		VisaExpiryDays:        60,
		CertificateExpiryDays: 30,
		HealthCheckDays:       90,
		InterviewMonths:       3,
		NewTraineeMonths:      3,
		EvaluationWindowDays:  90,
		RecentActivitiesLimit: DefaultRecentActivitiesLimit,
		Location:              time.UTC,
	}
}

// DashboardService defines the dashboard read operations
type DashboardService interface {
	GetStats(ctx context.Context, scope auth.Scope) (*models.DashboardStats, error)
	GetAlerts(ctx context.Context, scope auth.Scope) (*models.DashboardAlerts, error)
	GetRecentActivities(ctx context.Context, scope auth.Scope, limit int) (*models.RecentActivities, error)
	GetOverview(ctx context.Context, scope auth.Scope, limit int) (*models.DashboardOverview, error)
}

type dashboardServiceImpl struct {
	store    DashboardStore
	settings DashboardSettings
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service. now may be nil, in which case time.Now is used.
func NewDashboardService(store DashboardStore, settings DashboardSettings, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &dashboardServiceImpl{store: store, settings: settings, now: now}
}

func (s *dashboardServiceImpl) today() time.Time {
	return helpers.StartOfDay(s.now(), s.settings.Location)
}

// GetStats computes the statistics block
func (s *dashboardServiceImpl) GetStats(ctx context.Context, scope auth.Scope) (*models.DashboardStats, error) {
	today := s.today()
	enteredSince := today.AddDate(0, -s.settings.NewTraineeMonths, 0)
	windowStart := today.AddDate(0, 0, -s.settings.EvaluationWindowDays)

	stats := &models.DashboardStats{}
	var samples []models.EvaluationSample

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalTrainees, err = s.store.CountTrainees(gctx, scope, nil)
		return err
	})
	g.Go(func() (err error) {
		stats.NewTrainees, err = s.store.CountTrainees(gctx, scope, &enteredSince)
		return err
	})
	g.Go(func() (err error) {
		stats.NationalityStats, err = s.store.CountTraineesBy(gctx, scope, models.GroupByNationality)
		return err
	})
	g.Go(func() (err error) {
		stats.DepartmentStats, err = s.store.CountTraineesBy(gctx, scope, models.GroupByDepartment)
		return err
	})
	g.Go(func() (err error) {
		samples, err = s.store.ListEvaluationSamples(gctx, scope, windowStart)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("department", scope.Department).Msg("Dashboard statistics failed")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStatsUnavailable, err)
	}

	stats.NationalityStats = sortGroups(stats.NationalityStats)
	stats.DepartmentStats = sortGroups(stats.DepartmentStats)
	stats.AverageSkillLevel = averageLatestLevel(samples, windowStart)

	return stats, nil
}

// sortGroups orders buckets by count descending, ties by key.
func sortGroups(groups []models.GroupCount) []models.GroupCount {
	if groups == nil {
		return []models.GroupCount{}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// averageLatestLevel averages the most recent evaluation of each (trainee, skill) pair dated on or
// after windowStart. Ties on date go to the higher evaluation ID. The result has two decimals.
func averageLatestLevel(samples []models.EvaluationSample, windowStart time.Time) float64 {
	latest := make(map[models.EvaluationPair]models.EvaluationSample)
	for _, e := range samples {
		if e.EvaluationDate.Before(windowStart) {
			continue
		}
		key := models.EvaluationPair{TraineeID: e.TraineeID, SkillID: e.SkillID}
		cur, ok := latest[key]
		if !ok || e.EvaluationDate.After(cur.EvaluationDate) ||
			(e.EvaluationDate.Equal(cur.EvaluationDate) && e.EvaluationID > cur.EvaluationID) {
			latest[key] = e
		}
	}
	if len(latest) == 0 {
		return 0
	}

	sum := 0
	for _, e := range latest {
		sum += e.Level
	}
	avg := float64(sum) / float64(len(latest))
	return math.Round(avg*100) / 100
}

// GetAlerts computes the five alert categories. Any failing category fails the whole call.
func (s *dashboardServiceImpl) GetAlerts(ctx context.Context, scope auth.Scope) (*models.DashboardAlerts, error) {
	today := s.today()
	period := helpers.QuarterPeriod(today)

	alerts := &models.DashboardAlerts{}
	var (
		healthEvents    []models.TraineeLastEvent
		interviewEvents []models.TraineeLastEvent
		trainees        []models.TraineeRef
		skills          []models.SkillMaster
		evaluated       []models.EvaluationPair
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		alerts.VisaExpiry, err = s.store.ListVisaExpiring(gctx, scope, today.AddDate(0, 0, s.settings.VisaExpiryDays))
		return err
	})
	g.Go(func() (err error) {
		alerts.CertificateExpiry, err = s.store.ListCertificatesExpiring(gctx, scope, today.AddDate(0, 0, s.settings.CertificateExpiryDays))
		return err
	})
	g.Go(func() (err error) {
		healthEvents, err = s.store.ListLastHealthChecks(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		interviewEvents, err = s.store.ListLastInterviews(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		trainees, err = s.store.ListVisibleTrainees(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		skills, err = s.store.ListActiveSkills(gctx)
		return err
	})
	g.Go(func() (err error) {
		evaluated, err = s.store.ListEvaluatedPairs(gctx, scope, period)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("department", scope.Department).Msg("Dashboard alerts failed")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAlertsUnavailable, err)
	}

	alerts.VisaExpiry = visaAlerts(alerts.VisaExpiry, today)
	alerts.CertificateExpiry = certificateAlerts(alerts.CertificateExpiry, today)
	alerts.HealthCheckDue = healthCheckAlerts(healthEvents, today, s.settings.HealthCheckDays)
	alerts.InterviewDue = interviewAlerts(interviewEvents, today, s.settings.InterviewMonths)
	alerts.EvaluationDue = evaluationDueAlerts(trainees, skills, evaluated, period)

	return alerts, nil
}

func visaAlerts(list []models.VisaExpiryAlert, today time.Time) []models.VisaExpiryAlert {
	if list == nil {
		return []models.VisaExpiryAlert{}
	}
	for i := range list {
		list[i].DaysRemaining = helpers.DaysBetween(today, list[i].VisaExpiryDate)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].VisaExpiryDate.Before(list[j].VisaExpiryDate)
	})
	return list
}

func certificateAlerts(list []models.CertificateExpiryAlert, today time.Time) []models.CertificateExpiryAlert {
	if list == nil {
		return []models.CertificateExpiryAlert{}
	}
	for i := range list {
		list[i].DaysRemaining = helpers.DaysBetween(today, list[i].ExpiryDate)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].ExpiryDate.Before(list[j].ExpiryDate)
	})
	return list
}

// healthCheckAlerts keeps trainees never checked, or whose yearly check falls due within
// thresholdDays. Never-checked trainees sort first.
func healthCheckAlerts(events []models.TraineeLastEvent, today time.Time, thresholdDays int) []models.HealthCheckAlert {
	horizon := today.AddDate(0, 0, thresholdDays)
	alerts := []models.HealthCheckAlert{}

	for _, e := range events {
		if e.Last == nil {
			alerts = append(alerts, models.HealthCheckAlert{TraineeRef: e.Trainee})
			continue
		}
		last := helpers.DateOnly(*e.Last)
		due := last.AddDate(1, 0, 0)
		if due.After(horizon) {
			continue
		}
		days := helpers.DaysBetween(today, due)
		alerts = append(alerts, models.HealthCheckAlert{
			TraineeRef:      e.Trainee,
			LastHealthCheck: &last,
			NextDueDate:     &due,
			DaysRemaining:   &days,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return earlierOrNil(alerts[i].LastHealthCheck, alerts[j].LastHealthCheck)
	})
	return alerts
}

// interviewAlerts keeps trainees with no interview on or after today minus months.
func interviewAlerts(events []models.TraineeLastEvent, today time.Time, months int) []models.InterviewDueAlert {
	cutoff := today.AddDate(0, -months, 0)
	alerts := []models.InterviewDueAlert{}

	for _, e := range events {
		if e.Last != nil && !helpers.DateOnly(*e.Last).Before(cutoff) {
			continue
		}
		alert := models.InterviewDueAlert{TraineeRef: e.Trainee}
		if e.Last != nil {
			last := helpers.DateOnly(*e.Last)
			alert.LastInterview = &last
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return earlierOrNil(alerts[i].LastInterview, alerts[j].LastInterview)
	})
	return alerts
}

// earlierOrNil orders nil dates before any date, then ascending.
func earlierOrNil(a, b *time.Time) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}

// evaluationDueAlerts emits every trainee × skill pair missing from evaluated, in trainee then skill order.
func evaluationDueAlerts(trainees []models.TraineeRef, skills []models.SkillMaster, evaluated []models.EvaluationPair, period string) []models.EvaluationDueAlert {
	done := make(map[models.EvaluationPair]struct{}, len(evaluated))
	for _, p := range evaluated {
		done[p] = struct{}{}
	}

	alerts := []models.EvaluationDueAlert{}
	for _, t := range trainees {
		for _, skill := range skills {
			if _, ok := done[models.EvaluationPair{TraineeID: t.ID, SkillID: skill.ID}]; ok {
				continue
			}
			alerts = append(alerts, models.EvaluationDueAlert{
				TraineeID:   t.ID,
				TraineeCode: t.TraineeCode,
				TraineeName: t.FullName(),
				Department:  t.Department,
				SkillID:     skill.ID,
				SkillName:   skill.Name,
				Period:      period,
			})
		}
	}
	return alerts
}

// NormalizeActivityLimit clamps a requested feed length, falling back to def for non-positive values.
func NormalizeActivityLimit(limit, def int) int {
	if def <= 0 {
		def = DefaultRecentActivitiesLimit
	}
	if limit <= 0 {
		return def
	}
	if limit > MaxRecentActivitiesLimit {
		return MaxRecentActivitiesLimit
	}
	return limit
}

// GetRecentActivities returns the newest evaluations, interviews and OJT records as three
// separate lists of at most limit entries each.
func (s *dashboardServiceImpl) GetRecentActivities(ctx context.Context, scope auth.Scope, limit int) (*models.RecentActivities, error) {
	limit = NormalizeActivityLimit(limit, s.settings.RecentActivitiesLimit)
	feed := &models.RecentActivities{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		feed.Evaluations, err = s.store.ListRecentEvaluations(gctx, scope, limit)
		return err
	})
	g.Go(func() (err error) {
		feed.Interviews, err = s.store.ListRecentInterviews(gctx, scope, limit)
		return err
	})
	g.Go(func() (err error) {
		feed.OJTRecords, err = s.store.ListRecentOJTRecords(gctx, scope, limit)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("department", scope.Department).Msg("Dashboard activity feed failed")
		return nil, fmt.Errorf("%w: %w", apperrors.ErrActivitiesUnavailable, err)
	}

	feed.Evaluations = newestEvaluations(feed.Evaluations, limit)
	feed.Interviews = newestInterviews(feed.Interviews, limit)
	feed.OJTRecords = newestOJTRecords(feed.OJTRecords, limit)
	return feed, nil
}

func newestEvaluations(list []models.EvaluationActivity, limit int) []models.EvaluationActivity {
	if list == nil {
		return []models.EvaluationActivity{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].EvaluationDate.Equal(list[j].EvaluationDate) {
			return list[i].EvaluationDate.After(list[j].EvaluationDate)
		}
		return list[i].ID > list[j].ID
	})
	return list[:min(limit, len(list))]
}

func newestInterviews(list []models.InterviewActivity, limit int) []models.InterviewActivity {
	if list == nil {
		return []models.InterviewActivity{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].InterviewDate.Equal(list[j].InterviewDate) {
			return list[i].InterviewDate.After(list[j].InterviewDate)
		}
		return list[i].ID > list[j].ID
	})
	return list[:min(limit, len(list))]
}

func newestOJTRecords(list []models.OJTActivity, limit int) []models.OJTActivity {
	if list == nil {
		return []models.OJTActivity{}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
	return list[:min(limit, len(list))]
}

// GetOverview runs the three dashboard reads concurrently. The first failure is returned.
func (s *dashboardServiceImpl) GetOverview(ctx context.Context, scope auth.Scope, limit int) (*models.DashboardOverview, error) {
	overview := &models.DashboardOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview.Stats, err = s.GetStats(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		overview.Alerts, err = s.GetAlerts(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		overview.RecentActivities, err = s.GetRecentActivities(gctx, scope, limit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}
