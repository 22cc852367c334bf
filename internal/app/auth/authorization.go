package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

// TraineeFinder loads a trainee regardless of its active flag.
type TraineeFinder interface {
	GetTraineeByID(ctx context.Context, id int64) (*models.Trainee, error)
}

// AuthorizationService checks record access against a caller's scope
type AuthorizationService struct {
	trainees TraineeFinder
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(trainees TraineeFinder) *AuthorizationService {
	return &AuthorizationService{trainees: trainees}
}

// AuthorizeTrainee returns the trainee when the scope may read or modify it.
// Deactivated trainees are reported as not found.
func (s *AuthorizationService) AuthorizeTrainee(ctx context.Context, scope Scope, traineeID int64) (*models.Trainee, error) {
	trainee, err := s.trainees.GetTraineeByID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTraineeNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Int64("traineeID", traineeID).Msg("Error loading trainee for authorization")
		return nil, fmt.Errorf("failed to check trainee access: %w", err)
	}

	if !trainee.IsActive {
		return nil, apperrors.ErrTraineeNotFound
	}

	if !scope.AllowsDepartment(trainee.Department) {
		logger.Warn().
			Int64("traineeID", traineeID).
			Str("role", string(scope.Role)).
			Str("department", scope.Department).
			Msg("Trainee access denied outside caller department")
		return nil, apperrors.ErrPermissionDenied
	}

	return trainee, nil
}

// AuthorizeDepartment checks that a write targeting department stays inside the scope.
func (s *AuthorizationService) AuthorizeDepartment(scope Scope, department string) error {
	if !scope.AllowsDepartment(department) {
		return apperrors.NewForbiddenError("cannot manage trainees of another department")
	}
	return nil
}
