package services

import (
	"context"
	"fmt"

	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/app/repositories"
)

// TraineeRecordService manages the health and OJT logs nested under a trainee
type TraineeRecordService interface {
	ListHealthRecords(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.HealthRecord, error)
	CreateHealthRecord(ctx context.Context, scope auth.Scope, traineeID int64, req *dto.CreateHealthRecordRequest) (*models.HealthRecord, error)
	ListOJTRecords(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.OJTRecord, error)
	CreateOJTRecord(ctx context.Context, scope auth.Scope, traineeID int64, req *dto.CreateOJTRecordRequest) (*models.OJTRecord, error)
}

type traineeRecordServiceImpl struct {
	healthRepo *repositories.HealthRecordRepository
	ojtRepo    *repositories.OJTRecordRepository
	authz      *auth.AuthorizationService
}

// NewTraineeRecordService creates a new trainee record service
func NewTraineeRecordService(
	healthRepo *repositories.HealthRecordRepository,
	ojtRepo *repositories.OJTRecordRepository,
	authz *auth.AuthorizationService,
) TraineeRecordService {
	return &traineeRecordServiceImpl{healthRepo: healthRepo, ojtRepo: ojtRepo, authz: authz}
}

// ListHealthRecords returns every health record of a trainee, newest first
func (s *traineeRecordServiceImpl) ListHealthRecords(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.HealthRecord, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
		return nil, err
	}

	records, err := s.healthRepo.ListByTrainee(ctx, traineeID, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving health records: %w", err)
	}
	return records, nil
}

// CreateHealthRecord adds a health record
func (s *traineeRecordServiceImpl) CreateHealthRecord(ctx context.Context, scope auth.Scope, traineeID int64, req *dto.CreateHealthRecordRequest) (*models.HealthRecord, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
		return nil, err
	}

	record := req.ToModel(traineeID)
	if err := s.healthRepo.CreateHealthRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating health record: %w", err)
	}
	return record, nil
}

// ListOJTRecords returns every OJT record of a trainee, newest first
func (s *traineeRecordServiceImpl) ListOJTRecords(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.OJTRecord, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
		return nil, err
	}

	records, err := s.ojtRepo.ListByTrainee(ctx, traineeID, 0)
	if err != nil {
		return nil, fmt.Errorf("error retrieving ojt records: %w", err)
	}
	return records, nil
}

// CreateOJTRecord logs on-the-job training
func (s *traineeRecordServiceImpl) CreateOJTRecord(ctx context.Context, scope auth.Scope, traineeID int64, req *dto.CreateOJTRecordRequest) (*models.OJTRecord, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
		return nil, err
	}

	record := req.ToModel(traineeID)
	if err := s.ojtRepo.CreateOJTRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("error creating ojt record: %w", err)
	}
	return record, nil
}
