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

// CertificateService defines certificate operations
type CertificateService interface {
	ListCertificates(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.Certificate, error)
	CreateCertificate(ctx context.Context, scope auth.Scope, req *dto.CreateCertificateRequest) (*models.Certificate, error)
	UpdateCertificate(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateCertificateRequest) (*models.Certificate, error)
	DeactivateCertificate(ctx context.Context, scope auth.Scope, id int64) error
}

type certificateServiceImpl struct {
	certificateRepo *repositories.CertificateRepository
	authz           *auth.AuthorizationService
}

// NewCertificateService creates a new certificate service
func NewCertificateService(certificateRepo *repositories.CertificateRepository, authz *auth.AuthorizationService) CertificateService {
	return &certificateServiceImpl{certificateRepo: certificateRepo, authz: authz}
}

// ListCertificates lists active certificates, optionally for a single trainee
func (s *certificateServiceImpl) ListCertificates(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.Certificate, error) {
	if traineeID > 0 {
		if _, err := s.authz.AuthorizeTrainee(ctx, scope, traineeID); err != nil {
			return nil, err
		}
	}

	certificates, err := s.certificateRepo.ListCertificates(ctx, scope, traineeID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving certificates: %w", err)
	}
	return certificates, nil
}

// CreateCertificate registers a certificate for an accessible trainee
func (s *certificateServiceImpl) CreateCertificate(ctx context.Context, scope auth.Scope, req *dto.CreateCertificateRequest) (*models.Certificate, error) {
	if _, err := s.authz.AuthorizeTrainee(ctx, scope, req.TraineeID); err != nil {
		return nil, err
	}

	certificate := req.ToModel()
	if err := s.certificateRepo.CreateCertificate(ctx, certificate); err != nil {
		return nil, fmt.Errorf("error creating certificate: %w", err)
	}
	return certificate, nil
}

// load fetches a certificate and checks access to its trainee
func (s *certificateServiceImpl) load(ctx context.Context, scope auth.Scope, id int64) (*models.Certificate, error) {
	certificate, err := s.certificateRepo.GetCertificateByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCertificateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}

	if _, err := s.authz.AuthorizeTrainee(ctx, scope, certificate.TraineeID); err != nil {
		return nil, err
	}
	return certificate, nil
}

// UpdateCertificate applies a partial update
func (s *certificateServiceImpl) UpdateCertificate(ctx context.Context, scope auth.Scope, id int64, req *dto.UpdateCertificateRequest) (*models.Certificate, error) {
	certificate, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(certificate)
	if err := s.certificateRepo.UpdateCertificate(ctx, certificate); err != nil {
		return nil, fmt.Errorf("error updating certificate: %w", err)
	}
	return certificate, nil
}

// DeactivateCertificate hides a certificate from listings and alerts
func (s *certificateServiceImpl) DeactivateCertificate(ctx context.Context, scope auth.Scope, id int64) error {
	certificate, err := s.load(ctx, scope, id)
	if err != nil {
		return err
	}

	certificate.IsActive = false
	if err := s.certificateRepo.UpdateCertificate(ctx, certificate); err != nil {
		return fmt.Errorf("error deactivating certificate: %w", err)
	}
	return nil
}
