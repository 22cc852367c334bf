package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name       string
		role       models.RoleType
		department string
		want       Scope
		wantErr    error
	}{
		{
			name: "admin sees everything",
			role: models.RoleAdmin,
			want: Scope{Role: models.RoleAdmin},
		},
		{
			name:       "admin department is ignored",
			role:       models.RoleAdmin,
			department: "製造部",
			want:       Scope{Role: models.RoleAdmin},
		},
		{
			name:       "department user is restricted",
			role:       models.RoleDepartment,
			department: " 製造部 ",
			want:       Scope{Role: models.RoleDepartment, Department: "製造部"},
		},
		{
			name:    "department user without department fails closed",
			role:    models.RoleDepartment,
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "trainee has no dashboard scope",
			role:    models.RoleTrainee,
			wantErr: apperrors.ErrInvalidScope,
		},
		{
			name:    "unknown role is rejected",
			role:    models.RoleType("GUEST"),
			wantErr: apperrors.ErrInvalidScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveScope(tt.role, tt.department)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScopeWhere(t *testing.T) {
	t.Run("admin filters only on activity", func(t *testing.T) {
		sql, args, err := AdminScope().Where("t").ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(t.is_active = ?)", sql)
		assert.Equal(t, []interface{}{true}, args)
	})

	t.Run("department adds an equality on department", func(t *testing.T) {
		scope := Scope{Role: models.RoleDepartment, Department: "製造部"}
		sql, args, err := scope.Where("t").ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(t.is_active = ? AND t.department = ?)", sql)
		assert.Equal(t, []interface{}{true, "製造部"}, args)
	})

	t.Run("no alias", func(t *testing.T) {
		scope := Scope{Role: models.RoleDepartment, Department: "品質部"}
		sql, _, err := scope.Where("").ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(is_active = ? AND department = ?)", sql)
	})
}

func TestScopeAllows(t *testing.T) {
	active := &models.Trainee{ID: 1, Department: "製造部", IsActive: true}
	inactive := &models.Trainee{ID: 2, Department: "製造部", IsActive: false}
	other := &models.Trainee{ID: 3, Department: "品質部", IsActive: true}

	dept := Scope{Role: models.RoleDepartment, Department: "製造部"}

	assert.True(t, dept.Allows(active))
	assert.False(t, dept.Allows(inactive))
	assert.False(t, dept.Allows(other))
	assert.False(t, dept.Allows(nil))

	admin := AdminScope()
	assert.True(t, admin.Allows(active))
	assert.True(t, admin.Allows(other))
	assert.False(t, admin.Allows(inactive))
}

type stubFinder struct {
	trainee *models.Trainee
	err     error
}

func (s stubFinder) GetTraineeByID(_ context.Context, _ int64) (*models.Trainee, error) {
	return s.trainee, s.err
}

func TestAuthorizeTrainee(t *testing.T) {
	dept := Scope{Role: models.RoleDepartment, Department: "製造部"}

	t.Run("same department", func(t *testing.T) {
		svc := NewAuthorizationService(stubFinder{trainee: &models.Trainee{ID: 1, Department: "製造部", IsActive: true}})
		got, err := svc.AuthorizeTrainee(context.Background(), dept, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("other department is forbidden", func(t *testing.T) {
		svc := NewAuthorizationService(stubFinder{trainee: &models.Trainee{ID: 1, Department: "品質部", IsActive: true}})
		_, err := svc.AuthorizeTrainee(context.Background(), dept, 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("inactive trainee is not found", func(t *testing.T) {
		svc := NewAuthorizationService(stubFinder{trainee: &models.Trainee{ID: 1, Department: "製造部"}})
		_, err := svc.AuthorizeTrainee(context.Background(), AdminScope(), 1)
		assert.ErrorIs(t, err, apperrors.ErrTraineeNotFound)
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		boom := errors.New("connection refused")
		svc := NewAuthorizationService(stubFinder{err: boom})
		_, err := svc.AuthorizeTrainee(context.Background(), AdminScope(), 1)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("department write check", func(t *testing.T) {
		svc := NewAuthorizationService(stubFinder{})
		assert.NoError(t, svc.AuthorizeDepartment(dept, "製造部"))
		assert.ErrorIs(t, svc.AuthorizeDepartment(dept, "品質部"), apperrors.ErrPermissionDenied)
		assert.NoError(t, svc.AuthorizeDepartment(AdminScope(), "品質部"))
	})
}
