package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/repositories"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
)

// DevelopmentPlanService defines development plan operations
type DevelopmentPlanService interface {
	ListPlans(ctx context.Context, scope auth.Scope, traineeID int64, status models.PlanStatus) ([]dto.DevelopmentPlanDetail, error)
	CreatePlan(ctx context.Context, scope auth.Scope, creatorID int64, req *dto.CreateDevelopmentPlanRequest) (*models.DevelopmentPlan, error)
	UpdatePlan(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateDevelopmentPlanRequest) (*models.DevelopmentPlan, error)
}

type developmentPlanServiceImpl struct {
	planRepo *repositories.DevelopmentPlanRepository
	authz    *auth.AuthorizationService
}

// NewDevelopmentPlanService creates a new development plan service
func NewDevelopmentPlanService(planRepo *repositories.DevelopmentPlanRepository, authz *auth.AuthorizationService) DevelopmentPlanService {
	return &developmentPlanServiceImpl{planRepo: planRepo, authz: authz}
}

func validatePlanDates(p *models.DevelopmentPlan) error {
	if p.EndDate.Before(p.StartDate) {
		return apperrors.NewBadRequestError("end date must not be before start date")
	}
	return nil
}

// ListPlans lists plans of visible trainees
func (s *developmentPlanServiceImpl) ListPlans(ctx context.Context, scope auth.Scope, traineeID int64, status models.PlanStatus) ([]dto.DevelopmentPlanDetail, error) {
	if traineeID > 0 {
		if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
			return nil, err
		}
	}

	plans, err := s.planRepo.ListPlans(ctx, scope, traineeID, status)
	if err != nil {
		return nil, fmt.Errorf("error retrieving development plans: %w", err)
	}
	return plans, nil
}

// CreatePlan creates an ACTIVE plan authored by the caller
func (s *developmentPlanServiceImpl) CreatePlan(ctx context.Context, scope auth.Scope, creatorID int64, req *dto.CreateDevelopmentPlanRequest) (*models.DevelopmentPlan, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, req.TraineeID); err != nil {
		return nil, err
	}

	plan := req.ToModel(creatorID)
	if err := validatePlanDates(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.CreatePlan(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating development plan: %w", err)
	}
	return plan, nil
}

// UpdatePlan applies a partial update, including status transitions
func (s *developmentPlanServiceImpl) UpdatePlan(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateDevelopmentPlanRequest) (*models.DevelopmentPlan, error) {
	plan, err := s.planRepo.GetPlanByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrDevelopmentPlanNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving development plan: %w", err)
	}

	if _, err := s.authz.AuthorizeTrainee(ctx, scope, plan.TraineeID); err != nil {
		return nil, err
	}

	req.ApplyTo(plan)
	if err := validatePlanDates(plan); err != nil {
		return nil, err
	}

	if err := s.planRepo.UpdatePlan(ctx, plan); err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating development plan: %w", err)
	}
	return plan, nil
}
