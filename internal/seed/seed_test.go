package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/auth"
)

type memoryStore struct {
	users  map[string]*appModels.User
	skills map[string]*appModels.SkillMaster
	err    error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[string]*appModels.User{}, skills: map[string]*appModels.SkillMaster{}}
}

func (m *memoryStore) CreateUser(_ context.Context, user *appModels.User) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}

func (m *memoryStore) CreateSkill(_ context.Context, skill *appModels.SkillMaster) error {
	if _, ok := m.skills[skill.Name]; ok {
		return apperrors.ErrSkillAlreadyExists
	}
	m.skills[skill.Name] = skill
	return nil
}

func TestCreateDefaults(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, createDefaults(context.Background(), store, store, zerolog.Nop()))

	require.Len(t, store.users, 2)
	admin := store.users["admin@talent-management.com"]
	require.NotNil(t, admin)
	assert.Equal(t, appModels.RoleAdmin, admin.Role)
	assert.Equal(t, "人事部", admin.DepartmentName())
	assert.True(t, auth.CheckPassword(admin.Password, "admin123"))

	dept := store.users["dept@talent-management.com"]
	require.NotNil(t, dept)
	assert.Equal(t, appModels.RoleDepartment, dept.Role)
	assert.Equal(t, "製造部", dept.DepartmentName())

	require.Len(t, store.skills, len(defaultSkills))
	for _, s := range store.skills {
		assert.True(t, s.IsActive, s.Name)
		assert.Len(t, s.Levels, 5, s.Name)
	}
}

func TestCreateDefaults_IsIdempotent(t *testing.T) {
	store := newMemoryStore()
	require.NoError(t, createDefaults(context.Background(), store, store, zerolog.Nop()))
	require.NoError(t, createDefaults(context.Background(), store, store, zerolog.Nop()))
	assert.Len(t, store.users, 2)
	assert.Len(t, store.skills, len(defaultSkills))
}

func TestCreateDefaults_CollectsErrors(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("connection refused")

	err := createDefaults(context.Background(), store, store, zerolog.Nop())
	require.Error(t, err)
	assert.Len(t, store.skills, len(defaultSkills), "skills are still seeded")
}
