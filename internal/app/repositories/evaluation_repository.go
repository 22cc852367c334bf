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

// EvaluationRepository handles evaluation database operations
type EvaluationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEvaluationRepository creates a new EvaluationRepository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateEvaluation inserts an evaluation
func (r *EvaluationRepository) CreateEvaluation(ctx context.Context, e *models.Evaluation) error {
	sql, args, err := r.sb.Insert("evaluations").
		Columns("trainee_id", "evaluator_id", "skill_id", "level", "comment", "evaluation_date", "period").
		Values(e.TraineeID, e.EvaluatorID, e.SkillID, e.Level, e.Comment, e.EvaluationDate, e.Period).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create evaluation query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewBadRequestError("trainee, skill or evaluator does not exist")
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("level must be 1-5 and period must look like 2024-Q1")
		}
		logger.Error().Err(err).Int64("traineeID", e.TraineeID).Msg("Error executing create evaluation query")
		return fmt.Errorf("error creating evaluation: %w", err)
	}
	return nil
}

// GetEvaluationByID retrieves an evaluation by ID
func (r *EvaluationRepository) GetEvaluationByID(ctx context.Context, id int64) (*models.Evaluation, error) {
	e := &models.Evaluation{}
	err := r.db.QueryRow(ctx, `
		SELECT id, trainee_id, evaluator_id, skill_id, level, comment, evaluation_date, period, created_at, updated_at
		FROM evaluations WHERE id = $1`, id).
		Scan(&e.ID, &e.TraineeID, &e.EvaluatorID, &e.SkillID, &e.Level, &e.Comment, &e.EvaluationDate,
			&e.Period, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEvaluationNotFound
		}
		logger.Error().Err(err).Int64("evaluationID", id).Msg("Error scanning evaluation row")
		return nil, fmt.Errorf("error getting evaluation by ID: %w", err)
	}
	return e, nil
}

// UpdateEvaluation overwrites the editable columns of e
func (r *EvaluationRepository) UpdateEvaluation(ctx context.Context, e *models.Evaluation) error {
	sql, args, err := r.sb.Update("evaluations").
		Set("level", e.Level).
		Set("comment", e.Comment).
		Set("evaluation_date", e.EvaluationDate).
		Set("period", e.Period).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update evaluation query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrEvaluationNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("level must be 1-5 and period must look like 2024-Q1")
		}
		logger.Error().Err(err).Int64("evaluationID", e.ID).Msg("Error executing update evaluation query")
		return fmt.Errorf("error updating evaluation: %w", err)
	}
	return nil
}

// ListEvaluations returns evaluations of visible trainees with skill and evaluator names, newest
// first. Zero traineeID and empty period mean no filter; a limit of zero returns all.
func (r *EvaluationRepository) ListEvaluations(ctx context.Context, scope auth.Scope, traineeID int64, period string, limit int) ([]dto.EvaluationDetail, error) {
	where := squirrel.And{scope.Where("t")}
	if traineeID > 0 {
		where = append(where, squirrel.Eq{"e.trainee_id": traineeID})
	}
	if period != "" {
		where = append(where, squirrel.Eq{"e.period": period})
	}

	q := r.sb.Select(
		"e.id", "e.trainee_id", "e.evaluator_id", "e.skill_id", "e.level", "e.comment", "e.evaluation_date",
		"e.period", "e.created_at", "e.updated_at", "s.name", "u.name",
	).
		From("evaluations e").
		Join("trainees t ON t.id = e.trainee_id").
		Join("skill_masters s ON s.id = e.skill_id").
		Join("users u ON u.id = e.evaluator_id").
		Where(where).
		OrderBy("e.evaluation_date DESC", "e.id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list evaluations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list evaluations query")
		return nil, fmt.Errorf("error querying evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := []dto.EvaluationDetail{}
	for rows.Next() {
		var d dto.EvaluationDetail
		if err := rows.Scan(&d.ID, &d.TraineeID, &d.EvaluatorID, &d.SkillID, &d.Level, &d.Comment,
			&d.EvaluationDate, &d.Period, &d.CreatedAt, &d.UpdatedAt, &d.SkillName, &d.EvaluatorName); err != nil {
			return nil, fmt.Errorf("error scanning evaluation row: %w", err)
		}
		evaluations = append(evaluations, d)
	}
	return evaluations, rows.Err()
}
