package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/repositories"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/csvexport"
	"github.com/yigit/traineehub/internal/pkg/helpers"
	"github.com/yigit/traineehub/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// How many related records the trainee detail view embeds
const (
	detailHealthRecords = 5
	detailInterviews    = 3
	detailOJTRecords    = 10
)

// TraineeService defines trainee record operations
type TraineeService interface {
	ListTrainees(ctx context.Context, scope auth.Scope, query dto.TraineeListQuery, page, size int) (*dto.TraineeListResponse, error)
	GetTraineeDetail(ctx context.Context, scope auth.Scope, id int64) (*dto.TraineeDetailResponse, error)
	CreateTrainee(ctx context.Context, scope auth.Scope, req *dto.CreateTraineeRequest) (*models.Trainee, error)
	UpdateTrainee(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateTraineeRequest) (*models.Trainee, error)
	DeleteTrainee(ctx context.Context, scope auth.Scope, id int64) error
	ExportCSV(ctx context.Context, scope auth.Scope, w io.Writer) error
}

type traineeServiceImpl struct {
	repos    *repositories.Repositories
	authz    *auth.AuthorizationService
	location *time.Location
	now      func() time.Time
}

// NewTraineeService creates a new trainee service
func NewTraineeService(repos *repositories.Repositories, authz *auth.AuthorizationService, location *time.Location) TraineeService {
	if location == nil {
		location = time.UTC
	}
	return &traineeServiceImpl{repos: repos, authz: authz, location: location, now: time.Now}
}

// ListTrainees returns one page of visible trainees
func (s *traineeServiceImpl) ListTrainees(ctx context.Context, scope auth.Scope, query dto.TraineeListQuery, page, size int) (*dto.TraineeListResponse, error) {
	filter := models.TraineeFilter{
		Search:      strings.TrimSpace(query.Search),
		Nationality: query.Nationality,
		Department:  query.Department,
		SortBy:      query.SortBy,
		SortOrder:   query.SortOrder,
	}
	if query.VisaExpiry > 0 {
		until := helpers.StartOfDay(s.now(), s.location).AddDate(0, 0, query.VisaExpiry)
		filter.VisaExpiryUntil = &until
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	trainees, total, err := s.repos.TraineeRepository.ListTrainees(ctx, scope, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving trainees: %w", err)
	}

	return &dto.TraineeListResponse{
		Trainees:   trainees,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetTraineeDetail returns a trainee with its recent related records
func (s *traineeServiceImpl) GetTraineeDetail(ctx context.Context, scope auth.Scope, id int64) (*dto.TraineeDetailResponse, error) {
	trainee, err := s.authz.AuthorizeTrainee(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.TraineeDetailResponse{Trainee: *trainee}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		detail.HealthRecords, err = s.repos.HealthRecordRepository.ListByTrainee(gctx, id, detailHealthRecords)
		return err
	})
	g.Go(func() (err error) {
		detail.Certificates, err = s.repos.CertificateRepository.ListCertificates(gctx, scope, id)
		return err
	})
	g.Go(func() (err error) {
		detail.Evaluations, err = s.repos.EvaluationRepository.ListEvaluations(gctx, scope, id, "", 0)
		return err
	})
	g.Go(func() (err error) {
		detail.DevelopmentPlans, err = s.repos.DevelopmentPlanRepository.ListPlans(gctx, scope, id, models.PlanActive)
		return err
	})
	g.Go(func() (err error) {
		detail.Interviews, err = s.repos.InterviewRepository.ListInterviews(gctx, scope, id, detailInterviews)
		return err
	})
	g.Go(func() (err error) {
		detail.OJTRecords, err = s.repos.OJTRecordRepository.ListByTrainee(gctx, id, detailOJTRecords)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error retrieving trainee records: %w", err)
	}
	return detail, nil
}

// CreateTrainee registers a trainee. Department users may only register into their own department.
func (s *traineeServiceImpl) CreateTrainee(ctx context.Context, scope auth.Scope, req *dto.CreateTraineeRequest) (*models.Trainee, error) {
	trainee := req.ToModel()
	if err := s.authz.AuthorizeDepartment(scope, trainee.Department); err != nil {
		return nil, err
	}

	if err := s.repos.TraineeRepository.CreateTrainee(ctx, trainee); err != nil {
		if errors.Is(err, apperrors.ErrTraineeCodeAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating trainee: %w", err)
	}

	logger.Info().Int64("traineeID", trainee.ID).Str("department", trainee.Department).Msg("Trainee registered")
	return trainee, nil
}

// UpdateTrainee applies a partial update. Moving a trainee requires access to both departments.
func (s *traineeServiceImpl) UpdateTrainee(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateTraineeRequest) (*models.Trainee, error) {
	trainee, err := s.authz.AuthorizeTrainee(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(trainee)
	if err := s.authz.AuthorizeDepartment(scope, trainee.Department); err != nil {
		return nil, err
	}

	if err := s.repos.TraineeRepository.UpdateTrainee(ctx, trainee); err != nil {
		if apperrors.Is(err, apperrors.ErrTraineeCodeAlreadyExists, apperrors.ErrTraineeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating trainee: %w", err)
	}
	return trainee, nil
}

// DeleteTrainee soft-deletes a trainee; it disappears from every scoped read
func (s *traineeServiceImpl) DeleteTrainee(ctx context.Context, scope auth.Scope, id int64) error {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, id); err != nil {
		return err
	}

	if err := s.repos.TraineeRepository.DeactivateTrainee(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrTraineeNotFound) {
			return err
		}
		return fmt.Errorf("error deleting trainee: %w", err)
	}

	logger.Info().Int64("traineeID", id).Msg("Trainee deactivated")
	return nil
}

// ExportCSV writes every visible trainee as CSV
func (s *traineeServiceImpl) ExportCSV(ctx context.Context, scope auth.Scope, w io.Writer) error {
	trainees, err := s.repos.TraineeRepository.ListForExport(ctx, scope)
	if err != nil {
		return fmt.Errorf("error retrieving trainees for export: %w", err)
	}
	return csvexport.WriteTrainees(w, trainees)
}
