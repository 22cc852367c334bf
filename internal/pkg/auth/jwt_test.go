package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWTService(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:    "traineehub.test",
	})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	now := time.Now()
	svc := newTestJWTService(now)
	dept := "製造部"
	user := &models.User{ID: 42, Email: "dept@talent-management.com", Role: models.RoleDepartment, Department: &dept}

	token, expiresIn, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.Equal(t, int64(7*24*60*60), expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "DEPARTMENT", claims.Role)
	assert.Equal(t, "製造部", claims.Department)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenErrors(t *testing.T) {
	issued := time.Now().Add(-8 * 24 * time.Hour)
	user := &models.User{ID: 1, Email: "admin@talent-management.com", Role: models.RoleAdmin}

	expired, _, err := newTestJWTService(issued).GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = newTestJWTService(time.Now()).ValidateToken(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	good, _, err := newTestJWTService(time.Now()).GenerateAccessToken(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "another-secret", AccessTokenExp: time.Hour, TokenIssuer: "traineehub.test"})
	_, err = other.ValidateToken(good)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = newTestJWTService(time.Now()).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = newTestJWTService(time.Now()).ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"bearer abc.def.ghi", "abc.def.ghi", nil},
		{"abc.def.ghi", "abc.def.ghi", nil},
		{"", "", apperrors.ErrTokenNotFound},
		{"Basic dXNlcjpwYXNz", "", apperrors.ErrTokenInvalid},
		{"Bearer ", "", apperrors.ErrTokenInvalid},
		{"garbage", "", apperrors.ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := hashWithCost("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "admin124"))
}
