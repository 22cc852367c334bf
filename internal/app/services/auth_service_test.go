package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/auth"
)

type fakeUserStore struct {
	users     map[int64]*models.User
	nextID    int64
	lastLogin map[int64]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1, lastLogin: map[int64]bool{}}
}

func (f *fakeUserStore) add(t *testing.T, email, password string, role models.RoleType, active bool) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, Name: "user", Role: role, IsActive: active}
	require.NoError(t, f.CreateUser(context.Background(), u))
	return u
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context, _ uint64, _ int) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int64, name string, department *string) error {
	f.users[id].Name = name
	f.users[id].Department = department
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.users[id].Password = passwordHash
	return nil
}

func (f *fakeUserStore) SetActive(_ context.Context, id int64, active bool) error {
	f.users[id].IsActive = active
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	f.lastLogin[id] = true
	return nil
}

func newTestAuthService(store UserStore) *AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "traineehub.test",
	})
	return NewAuthService(store, jwtService, zerolog.Nop())
}

func TestAuthService_Login(t *testing.T) {
	store := newFakeUserStore()
	admin := store.add(t, "admin@talent-management.com", "admin123", models.RoleAdmin, true)
	store.add(t, "disabled@talent-management.com", "secret1", models.RoleDepartment, false)
	svc := newTestAuthService(store)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "  Admin@Talent-Management.com ", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)
	assert.Equal(t, admin.ID, resp.User.ID)
	assert.True(t, store.lastLogin[admin.ID])

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "admin@talent-management.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@talent-management.com", Password: "admin123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "disabled@talent-management.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestAuthService_Register(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	blank := "   "
	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "dept@talent-management.com", Password: "dept123", Name: "製造部担当", Role: models.RoleDepartment, Department: &blank,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	dept := " 製造部 "
	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "Dept@Talent-Management.com", Password: "dept123", Name: "製造部担当", Role: models.RoleDepartment, Department: &dept,
	})
	require.NoError(t, err)
	assert.Equal(t, "dept@talent-management.com", user.Email)
	assert.Equal(t, "製造部", user.DepartmentName())
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "dept123", user.Password)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Email: "dept@talent-management.com", Password: "other1", Name: "dup", Role: models.RoleAdmin,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_ChangePassword(t *testing.T) {
	store := newFakeUserStore()
	user := store.add(t, "admin@talent-management.com", "admin123", models.RoleAdmin, true)
	svc := newTestAuthService(store)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "admin123", NewPassword: "newpass1"}))

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "newpass1"})
	assert.NoError(t, err)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	store := newFakeUserStore()
	user := store.add(t, "dept@talent-management.com", "dept123", models.RoleDepartment, true)
	svc := newTestAuthService(store)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Name: "担当者"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	dept := "品質管理部"
	updated, err := svc.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{Name: " 担当者 ", Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "担当者", updated.Name)
	assert.Equal(t, "品質管理部", updated.DepartmentName())

	_, err = svc.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
