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

// InterviewService defines interview operations
type InterviewService interface {
	ListInterviews(ctx context.Context, scope auth.Scope, traineeID int64) ([]dto.InterviewDetail, error)
	CreateInterview(ctx context.Context, scope auth.Scope, interviewerID int64, req *dto.CreateInterviewRequest) (*models.Interview, error)
	UpdateInterview(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateInterviewRequest) (*models.Interview, error)
}

type interviewServiceImpl struct {
	interviewRepo *repositories.InterviewRepository
	authz         *auth.AuthorizationService
}

// NewInterviewService creates a new interview service
func NewInterviewService(interviewRepo *repositories.InterviewRepository, authz *auth.AuthorizationService) InterviewService {
	return &interviewServiceImpl{interviewRepo: interviewRepo, authz: authz}
}

// ListInterviews lists interviews of visible trainees, newest first
func (s *interviewServiceImpl) ListInterviews(ctx context.Context, scope auth.Scope, traineeID int64) ([]dto.InterviewDetail, error) {
	if traineeID > 0 {
		if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
			return nil, err
		}
	}

	interviews, err := s.interviewRepo.ListInterviews(ctx, scope, traineeID, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving interviews: %w", err)
	}
	return interviews, nil
}

// CreateInterview records an interview held by the caller
func (s *interviewServiceImpl) CreateInterview(ctx context.Context, scope auth.Scope, interviewerID int64, req *dto.CreateInterviewRequest) (*models.Interview, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, req.TraineeID); err != nil {
		return nil, err
	}

	interview := req.ToModel(interviewerID)
	if err := s.interviewRepo.CreateInterview(ctx, interview); err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating interview: %w", err)
	}
	return interview, nil
}

// UpdateInterview applies a partial update
func (s *interviewServiceImpl) UpdateInterview(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.interviewRepo.GetInterviewByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInterviewNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving interview: %w", err)
	}

	if _, err := s.authz.AuthorizeTrainee(ctx, scope, interview.TraineeID); err != nil {
		return nil, err
	}

	req.ApplyTo(interview)
	if err := s.interviewRepo.UpdateInterview(ctx, interview); err != nil {
		return nil, fmt.Errorf("error updating interview: %w", err)
	}
	return interview, nil
}
