package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/dberrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

// HealthRecordRepository handles health record database operations
type HealthRecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHealthRecordRepository creates a new HealthRecordRepository
func NewHealthRecordRepository(db *pgxpool.Pool) *HealthRecordRepository {
	return &HealthRecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateHealthRecord inserts a health record
func (r *HealthRecordRepository) CreateHealthRecord(ctx context.Context, h *models.HealthRecord) error {
	sql, args, err := r.sb.Insert("health_records").
		Columns("trainee_id", "record_date", "record_type", "description", "doctor_name", "clinic_name").
		Values(h.TraineeID, h.RecordDate, h.RecordType, h.Description, h.DoctorName, h.ClinicName).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create health record query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrTraineeNotFound
		}
		logger.Error().Err(err).Int64("traineeID", h.TraineeID).Msg("Error executing create health record query")
		return fmt.Errorf("error creating health record: %w", err)
	}
	return nil
}

// ListByTrainee returns a trainee's health records, newest first. A limit of zero returns all.
func (r *HealthRecordRepository) ListByTrainee(ctx context.Context, traineeID int64, limit int) ([]models.HealthRecord, error) {
	q := r.sb.Select("id", "trainee_id", "record_date", "record_type", "description", "doctor_name",
		"clinic_name", "created_at", "updated_at").
		From("health_records").
		Where(squirrel.Eq{"trainee_id": traineeID}).
		OrderBy("record_date DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list health records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("traineeID", traineeID).Msg("Error executing list health records query")
		return nil, fmt.Errorf("error querying health records: %w", err)
	}
	defer rows.Close()

	records := []models.HealthRecord{}
	for rows.Next() {
		var h models.HealthRecord
		if err := rows.Scan(&h.ID, &h.TraineeID, &h.RecordDate, &h.RecordType, &h.Description,
			&h.DoctorName, &h.ClinicName, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning health record row: %w", err)
		}
		records = append(records, h)
	}
	return records, rows.Err()
}
