package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers map[int64]*models.User

func (f fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func strPtr(s string) *string { return &s }

func newTestRouter(users fakeUsers, jwtService *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtService, users)
	r := gin.New()
	r.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		scope, err := CurrentScope(c)
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userID": CurrentUserID(c), "department": scope.Department})
	})
	r.GET("/admin", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func bearer(t *testing.T, jwtService *auth.JWTService, u *models.User) string {
	token, _, err := jwtService.GenerateAccessToken(u)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorCode {
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	return body.Error.Code
}

func TestJWTAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "traineehub"})
	admin := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, Department: strPtr("人事部"), IsActive: true}
	dept := &models.User{ID: 2, Email: "dept@example.com", Role: models.RoleDepartment, Department: strPtr("製造部"), IsActive: true}
	disabled := &models.User{ID: 3, Email: "old@example.com", Role: models.RoleDepartment, Department: strPtr("製造部")}
	orphan := &models.User{ID: 4, Email: "gone@example.com", Role: models.RoleAdmin, IsActive: true}
	noDept := &models.User{ID: 5, Email: "nodept@example.com", Role: models.RoleDepartment, IsActive: true}
	users := fakeUsers{1: admin, 2: dept, 3: disabled, 5: noDept}

	router := newTestRouter(users, jwtService)

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"missing header", "/me", "", http.StatusUnauthorized, dto.ErrorCodeTokenNotFound},
		{"malformed header", "/me", "Token abc", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"bad signature", "/me", "Bearer a.b.c", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"valid department user", "/me", bearer(t, jwtService, dept), http.StatusOK, ""},
		{"deactivated user", "/me", bearer(t, jwtService, disabled), http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{"deleted user", "/me", bearer(t, jwtService, orphan), http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"department user without department", "/me", bearer(t, jwtService, noDept), http.StatusForbidden, dto.ErrorCodeForbidden},
		{"admin route as admin", "/admin", bearer(t, jwtService, admin), http.StatusNoContent, ""},
		{"admin route as department", "/admin", bearer(t, jwtService, dept), http.StatusForbidden, dto.ErrorCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, w))
			}
		})
	}
}

func TestJWTAuth_SetsDepartmentScope(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})
	dept := &models.User{ID: 2, Role: models.RoleDepartment, Department: strPtr("製造部"), IsActive: true}
	router := newTestRouter(fakeUsers{2: dept}, jwtService)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, jwtService, dept))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["userID"])
	assert.Equal(t, "製造部", body["department"])
}

func TestResolveError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
		wantMsg    string
	}{
		{"wrapped not found", fmt.Errorf("error loading: %w", apperrors.ErrTraineeNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
		{"duplicate code", apperrors.ErrTraineeCodeAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
		{"custom forbidden", apperrors.NewForbiddenError("trainee belongs to another department"), http.StatusForbidden, dto.ErrorCodeForbidden, "trainee belongs to another department"},
		{"invalid scope", apperrors.NewCustomError(apperrors.ErrInvalidScope, "no scope"), http.StatusForbidden, dto.ErrorCodeForbidden, "no scope"},
		{"bad request", apperrors.NewBadRequestError("endDate must not precede startDate"), http.StatusBadRequest, dto.ErrorCodeBadRequest, "endDate must not precede startDate"},
		{"alerts unavailable", fmt.Errorf("%w: %w", apperrors.ErrAlertsUnavailable, errors.New("conn refused")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to load alerts"},
		{"stats unavailable", fmt.Errorf("%w: %w", apperrors.ErrStatsUnavailable, errors.New("timeout")), http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Failed to load statistics"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := resolveError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, detail.Code)
			assert.Equal(t, tt.wantMsg, detail.Message)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/trainees/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{"/trainees/12": http.StatusOK, "/trainees/0": http.StatusBadRequest, "/trainees/abc": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
