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
	"github.com/yigit/traineehub/internal/app/models/dto"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/dberrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

// InterviewRepository handles interview database operations
type InterviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInterviewRepository creates a new InterviewRepository
func NewInterviewRepository(db *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateInterview inserts an interview
func (r *InterviewRepository) CreateInterview(ctx context.Context, i *models.Interview) error {
	sql, args, err := r.sb.Insert("interviews").
		Columns("trainee_id", "interviewer_id", "interview_date", "type", "content", "concerns",
			"health_status", "progress", "next_steps").
		Values(i.TraineeID, i.InterviewerID, i.InterviewDate, i.Type, i.Content, i.Concerns,
			i.HealthStatus, i.Progress, i.NextSteps).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create interview query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewBadRequestError("trainee or interviewer does not exist")
		}
		logger.Error().Err(err).Int64("traineeID", i.TraineeID).Msg("Error executing create interview query")
		return fmt.Errorf("error creating interview: %w", err)
	}
	return nil
}

// GetInterviewByID retrieves an interview by ID
func (r *InterviewRepository) GetInterviewByID(ctx context.Context, id int64) (*models.Interview, error) {
	i := &models.Interview{}
	err := r.db.QueryRow(ctx, `
		SELECT id, trainee_id, interviewer_id, interview_date, type, content, concerns, health_status,
		       progress, next_steps, created_at, updated_at
		FROM interviews WHERE id = $1`, id).
		Scan(&i.ID, &i.TraineeID, &i.InterviewerID, &i.InterviewDate, &i.Type, &i.Content, &i.Concerns,
			&i.HealthStatus, &i.Progress, &i.NextSteps, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInterviewNotFound
		}
		logger.Error().Err(err).Int64("interviewID", id).Msg("Error scanning interview row")
		return nil, fmt.Errorf("error getting interview by ID: %w", err)
	}
	return i, nil
}

// UpdateInterview overwrites the editable columns of i
func (r *InterviewRepository) UpdateInterview(ctx context.Context, i *models.Interview) error {
	sql, args, err := r.sb.Update("interviews").
		Set("interview_date", i.InterviewDate).
		Set("type", i.Type).
		Set("content", i.Content).
		Set("concerns", i.Concerns).
		Set("health_status", i.HealthStatus).
		Set("progress", i.Progress).
		Set("next_steps", i.NextSteps).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": i.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update interview query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&i.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrInterviewNotFound
		}
		logger.Error().Err(err).Int64("interviewID", i.ID).Msg("Error executing update interview query")
		return fmt.Errorf("error updating interview: %w", err)
	}
	return nil
}

// ListInterviews returns interviews of visible trainees with the interviewer name, newest first.
// Zero traineeID lists every visible trainee; a limit of zero returns all.
func (r *InterviewRepository) ListInterviews(ctx context.Context, scope auth.Scope, traineeID int64, limit int) ([]dto.InterviewDetail, error) {
	where := squirrel.And{scope.Where("t")}
	if traineeID > 0 {
		where = append(where, squirrel.Eq{"i.trainee_id": traineeID})
	}

	q := r.sb.Select(
		"i.id", "i.trainee_id", "i.interviewer_id", "i.interview_date", "i.type", "i.content", "i.concerns",
		"i.health_status", "i.progress", "i.next_steps", "i.created_at", "i.updated_at", "u.name",
	).
		From("interviews i").
		Join("trainees t ON t.id = i.trainee_id").
		Join("users u ON u.id = i.interviewer_id").
		Where(where).
		OrderBy("i.interview_date DESC", "i.id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list interviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list interviews query")
		return nil, fmt.Errorf("error querying interviews: %w", err)
	}
	defer rows.Close()

	interviews := []dto.InterviewDetail{}
	for rows.Next() {
		var d dto.InterviewDetail
		if err := rows.Scan(&d.ID, &d.TraineeID, &d.InterviewerID, &d.InterviewDate, &d.Type, &d.Content,
			&d.Concerns, &d.HealthStatus, &d.Progress, &d.NextSteps, &d.CreatedAt, &d.UpdatedAt,
			&d.InterviewerName); err != nil {
			return nil, fmt.Errorf("error scanning interview row: %w", err)
		}
		interviews = append(interviews, d)
	}
	return interviews, rows.Err()
}
