package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/middleware"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDashboardService struct {
	err       error
	lastScope auth.Scope
	lastLimit int
}

func (f *fakeDashboardService) GetStats(_ context.Context, scope auth.Scope) (*models.DashboardStats, error) {
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return &models.DashboardStats{TotalTrainees: 3, NationalityStats: []models.GroupCount{}, DepartmentStats: []models.GroupCount{}}, nil
}

func (f *fakeDashboardService) GetAlerts(_ context.Context, scope auth.Scope) (*models.DashboardAlerts, error) {
	f.lastScope = scope
	if f.err != nil {
		return nil, f.err
	}
	return &models.DashboardAlerts{
		VisaExpiry:        []models.VisaExpiryAlert{},
		CertificateExpiry: []models.CertificateExpiryAlert{},
		HealthCheckDue:    []models.HealthCheckAlert{},
		EvaluationDue:     []models.EvaluationDueAlert{},
		InterviewDue:      []models.InterviewDueAlert{},
	}, nil
}

func (f *fakeDashboardService) GetRecentActivities(_ context.Context, scope auth.Scope, limit int) (*models.RecentActivities, error) {
	f.lastScope, f.lastLimit = scope, limit
	if f.err != nil {
		return nil, f.err
	}
	return &models.RecentActivities{
		Evaluations: []models.EvaluationActivity{},
		Interviews:  []models.InterviewActivity{},
		OJTRecords:  []models.OJTActivity{},
	}, nil
}

func (f *fakeDashboardService) GetOverview(ctx context.Context, scope auth.Scope, limit int) (*models.DashboardOverview, error) {
	stats, err := f.GetStats(ctx, scope)
	if err != nil {
		return nil, err
	}
	alerts, _ := f.GetAlerts(ctx, scope)
	recent, _ := f.GetRecentActivities(ctx, scope, limit)
	return &models.DashboardOverview{Stats: stats, Alerts: alerts, RecentActivities: recent}, nil
}

// withCaller stands in for JWTAuth.
func withCaller(role models.RoleType, department string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(1))
		c.Set(middleware.ContextRole, role)
		c.Set(middleware.ContextDepartment, department)
		c.Next()
	}
}

func newDashboardRouter(svc *fakeDashboardService, role models.RoleType, department string) *gin.Engine {
	ctrl := NewDashboardController(svc, 10)
	r := gin.New()
	g := r.Group("/dashboard", withCaller(role, department))
	g.GET("/stats", ctrl.GetStats)
	g.GET("/alerts", ctrl.GetAlerts)
	g.GET("/recent-activities", ctrl.GetRecentActivities)
	g.GET("/overview", ctrl.GetOverview)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboardController_ScopeFromCaller(t *testing.T) {
	svc := &fakeDashboardService{}
	w := get(newDashboardRouter(svc, models.RoleDepartment, "製造部"), "/dashboard/alerts")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.Scope{Role: models.RoleDepartment, Department: "製造部"}, svc.lastScope)

	var body struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	for _, key := range []string{"visaExpiry", "certificateExpiry", "healthCheckDue", "evaluationDue", "interviewDue"} {
		assert.Equal(t, "[]", string(body.Data[key]), key)
	}
}

func TestDashboardController_TraineeRoleIsForbidden(t *testing.T) {
	svc := &fakeDashboardService{}
	w := get(newDashboardRouter(svc, models.RoleTrainee, ""), "/dashboard/stats")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, auth.Scope{}, svc.lastScope, "aggregation must not run")
}

func TestDashboardController_RecentActivitiesLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"?limit=5", 5},
		{"?limit=0", 10},
		{"?limit=abc", 10},
		{"?limit=1000", 100},
	}
	for _, tt := range tests {
		svc := &fakeDashboardService{}
		w := get(newDashboardRouter(svc, models.RoleAdmin, ""), "/dashboard/recent-activities"+tt.query)
		require.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.want, svc.lastLimit, tt.query)
	}
}

func TestDashboardController_StoreFailure(t *testing.T) {
	svc := &fakeDashboardService{err: fmt.Errorf("%w: %w", apperrors.ErrStatsUnavailable, errors.New("dial tcp: connection refused"))}
	w := get(newDashboardRouter(svc, models.RoleAdmin, ""), "/dashboard/overview")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, dto.ErrorCodeDatabaseError, body.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
