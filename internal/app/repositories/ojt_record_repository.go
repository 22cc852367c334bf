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

// OJTRecordRepository handles OJT record database operations
type OJTRecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOJTRecordRepository creates a new OJTRecordRepository
func NewOJTRecordRepository(db *pgxpool.Pool) *OJTRecordRepository {
	return &OJTRecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateOJTRecord inserts an OJT record
func (r *OJTRecordRepository) CreateOJTRecord(ctx context.Context, o *models.OJTRecord) error {
	sql, args, err := r.sb.Insert("ojt_records").
		Columns("trainee_id", "trainer_id", "date", "content", "duration", "progress", "notes").
		Values(o.TraineeID, o.TrainerID, o.Date, o.Content, o.Duration, o.Progress, o.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create ojt record query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewBadRequestError("trainee or trainer does not exist")
		}
		logger.Error().Err(err).Int64("traineeID", o.TraineeID).Msg("Error executing create ojt record query")
		return fmt.Errorf("error creating ojt record: %w", err)
	}
	return nil
}

// ListByTrainee returns a trainee's OJT records, newest first. A limit of zero returns all.
func (r *OJTRecordRepository) ListByTrainee(ctx context.Context, traineeID int64, limit int) ([]models.OJTRecord, error) {
	q := r.sb.Select("id", "trainee_id", "trainer_id", "date", "content", "duration", "progress", "notes",
		"created_at", "updated_at").
		From("ojt_records").
		Where(squirrel.Eq{"trainee_id": traineeID}).
		OrderBy("date DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list ojt records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("traineeID", traineeID).Msg("Error executing list ojt records query")
		return nil, fmt.Errorf("error querying ojt records: %w", err)
	}
	defer rows.Close()

	records := []models.OJTRecord{}
	for rows.Next() {
		var o models.OJTRecord
		if err := rows.Scan(&o.ID, &o.TraineeID, &o.TrainerID, &o.Date, &o.Content, &o.Duration,
			&o.Progress, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning ojt record row: %w", err)
		}
		records = append(records, o)
	}
	return records, rows.Err()
}
