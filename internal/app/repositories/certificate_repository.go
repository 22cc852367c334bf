package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/dberrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

var certificateColumns = []string{
	"c.id", "c.trainee_id", "c.name", "c.issuing_body", "c.issue_date", "c.expiry_date",
	"c.is_active", "c.created_at", "c.updated_at",
}

// CertificateRepository handles certificate database operations
type CertificateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCertificate(row pgx.Row) (*models.Certificate, error) {
	c := &models.Certificate{}
	err := row.Scan(&c.ID, &c.TraineeID, &c.Name, &c.IssuingBody, &c.IssueDate, &c.ExpiryDate,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateCertificate inserts a certificate
func (r *CertificateRepository) CreateCertificate(ctx context.Context, c *models.Certificate) error {
	sql, args, err := r.sb.Insert("certificates").
		Columns("trainee_id", "name", "issuing_body", "issue_date", "expiry_date", "is_active").
		Values(c.TraineeID, c.Name, c.IssuingBody, c.IssueDate, c.ExpiryDate, c.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create certificate query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrTraineeNotFound
		}
		logger.Error().Err(err).Int64("traineeID", c.TraineeID).Msg("Error executing create certificate query")
		return fmt.Errorf("error creating certificate: %w", err)
	}
	return nil
}

// GetCertificateByID retrieves a certificate by ID
func (r *CertificateRepository) GetCertificateByID(ctx context.Context, id int64) (*models.Certificate, error) {
	sql, args, err := r.sb.Select(certificateColumns...).
		From("certificates c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	c, err := scanCertificate(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Int64("certificateID", id).Msg("Error scanning certificate row")
		return nil, fmt.Errorf("error getting certificate by ID: %w", err)
	}
	return c, nil
}

// UpdateCertificate overwrites the editable columns of c
func (r *CertificateRepository) UpdateCertificate(ctx context.Context, c *models.Certificate) error {
	sql, args, err := r.sb.Update("certificates").
		Set("name", c.Name).
		Set("issuing_body", c.IssuingBody).
		Set("issue_date", c.IssueDate).
		Set("expiry_date", c.ExpiryDate).
		Set("is_active", c.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update certificate query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Int64("certificateID", c.ID).Msg("Error executing update certificate query")
		return fmt.Errorf("error updating certificate: %w", err)
	}
	return nil
}

// ListCertificates returns the active certificates of visible trainees, soonest expiry first.
// traineeID of zero lists every visible trainee.
func (r *CertificateRepository) ListCertificates(ctx context.Context, scope auth.Scope, traineeID int64) ([]models.Certificate, error) {
	where := squirrel.And{scope.Where("t"), squirrel.Eq{"c.is_active": true}}
	if traineeID > 0 {
		where = append(where, squirrel.Eq{"c.trainee_id": traineeID})
	}

	sql, args, err := r.sb.Select(certificateColumns...).
		From("certificates c").
		Join("trainees t ON t.id = c.trainee_id").
		Where(where).
		OrderBy("c.expiry_date ASC NULLS LAST", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list certificates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list certificates query")
		return nil, fmt.Errorf("error querying certificates: %w", err)
	}
	defer rows.Close()

	certificates := []models.Certificate{}
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning certificate row: %w", err)
		}
		certificates = append(certificates, *c)
	}
	return certificates, rows.Err()
}
