package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

// UserService defines the account administration operations
type UserService interface {
	ListUsers(ctx context.Context, offset uint64, limit int) ([]models.User, int64, error)
	SetUserStatus(ctx context.Context, actorID, userID int64, active bool) (*models.User, error)
}

type userServiceImpl struct {
	userRepo UserStore
}

// NewUserService creates a new user service
func NewUserService(userRepo UserStore) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// ListUsers returns one page of accounts
func (s *userServiceImpl) ListUsers(ctx context.Context, offset uint64, limit int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving users: %w", err)
	}
	return users, total, nil
}

// SetUserStatus activates or deactivates an account. Admins cannot deactivate themselves.
func (s *userServiceImpl) SetUserStatus(ctx context.Context, actorID, userID int64, active bool) (*models.User, error) {
	if actorID == userID && !active {
		return nil, apperrors.NewBadRequestError("you cannot deactivate your own account")
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user status: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}
