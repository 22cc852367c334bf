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

// EvaluationService defines skill evaluation operations
type EvaluationService interface {
	ListEvaluations(ctx context.Context, scope auth.Scope, traineeID int64, period string) ([]dto.EvaluationDetail, error)
	CreateEvaluation(ctx context.Context, scope auth.Scope, evaluatorID int64, req *dto.CreateEvaluationRequest) (*models.Evaluation, error)
	UpdateEvaluation(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateEvaluationRequest) (*models.Evaluation, error)
}

type evaluationServiceImpl struct {
	evaluationRepo *repositories.EvaluationRepository
	skillRepo      *repositories.SkillRepository
	authz          *auth.AuthorizationService
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(
	evaluationRepo *repositories.EvaluationRepository,
	skillRepo *repositories.SkillRepository,
	authz *auth.AuthorizationService,
) EvaluationService {
	return &evaluationServiceImpl{evaluationRepo: evaluationRepo, skillRepo: skillRepo, authz: authz}
}

// ListEvaluations lists evaluations of visible trainees, newest first
func (s *evaluationServiceImpl) ListEvaluations(ctx context.Context, scope auth.Scope, traineeID int64, period string) ([]dto.EvaluationDetail, error) {
	if traineeID > 0 {
		if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
			return nil, err
		}
	}

	evaluations, err := s.evaluationRepo.ListEvaluations(ctx, scope, traineeID, period, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving evaluations: %w", err)
	}
	return evaluations, nil
}

// CreateEvaluation records the caller's evaluation of a trainee on an active skill
func (s *evaluationServiceImpl) CreateEvaluation(ctx context.Context, scope auth.Scope, evaluatorID int64, req *dto.CreateEvaluationRequest) (*models.Evaluation, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, req.TraineeID); err != nil {
		return nil, err
	}

	skill, err := s.skillRepo.GetSkillByID(ctx, req.SkillID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSkillNotFound) {
			return nil, apperrors.NewBadRequestError("skill does not exist")
		}
		return nil, fmt.Errorf("error retrieving skill: %w", err)
	}
	if !skill.IsActive {
		return nil, apperrors.NewBadRequestError("skill is no longer active")
	}

	evaluation := req.ToModel(evaluatorID)
	if err := s.evaluationRepo.CreateEvaluation(ctx, evaluation); err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating evaluation: %w", err)
	}
	return evaluation, nil
}

// UpdateEvaluation applies a partial update
func (s *evaluationServiceImpl) UpdateEvaluation(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateEvaluationRequest) (*models.Evaluation, error) {
	evaluation, err := s.evaluationRepo.GetEvaluationByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrEvaluationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving evaluation: %w", err)
	}

	if _, err := s.authz.AuthorizeTrainee(ctx, scope, evaluation.TraineeID); err != nil {
		return nil, err
	}

	req.ApplyTo(evaluation)
	if err := s.evaluationRepo.UpdateEvaluation(ctx, evaluation); err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating evaluation: %w", err)
	}
	return evaluation, nil
}
