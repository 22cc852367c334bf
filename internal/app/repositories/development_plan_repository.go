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

// DevelopmentPlanRepository handles development plan database operations
type DevelopmentPlanRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDevelopmentPlanRepository creates a new DevelopmentPlanRepository
func NewDevelopmentPlanRepository(db *pgxpool.Pool) *DevelopmentPlanRepository {
	return &DevelopmentPlanRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePlan inserts a development plan
func (r *DevelopmentPlanRepository) CreatePlan(ctx context.Context, p *models.DevelopmentPlan) error {
	sql, args, err := r.sb.Insert("development_plans").
		Columns("trainee_id", "creator_id", "title", "description", "start_date", "end_date", "goals", "status").
		Values(p.TraineeID, p.CreatorID, p.Title, p.Description, p.StartDate, p.EndDate, p.Goals, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create development plan query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.NewBadRequestError("trainee or creator does not exist")
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("end date must not be before start date")
		}
		logger.Error().Err(err).Int64("traineeID", p.TraineeID).Msg("Error executing create development plan query")
		return fmt.Errorf("error creating development plan: %w", err)
	}
	return nil
}

// GetPlanByID retrieves a development plan by ID
func (r *DevelopmentPlanRepository) GetPlanByID(ctx context.Context, id int64) (*models.DevelopmentPlan, error) {
	p := &models.DevelopmentPlan{}
	err := r.db.QueryRow(ctx, `
		SELECT id, trainee_id, creator_id, title, description, start_date, end_date, goals, status, created_at, updated_at
		FROM development_plans WHERE id = $1`, id).
		Scan(&p.ID, &p.TraineeID, &p.CreatorID, &p.Title, &p.Description, &p.StartDate, &p.EndDate,
			&p.Goals, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDevelopmentPlanNotFound
		}
		logger.Error().Err(err).Int64("planID", id).Msg("Error scanning development plan row")
		return nil, fmt.Errorf("error getting development plan by ID: %w", err)
	}
	return p, nil
}

// UpdatePlan overwrites the editable columns of p
func (r *DevelopmentPlanRepository) UpdatePlan(ctx context.Context, p *models.DevelopmentPlan) error {
	sql, args, err := r.sb.Update("development_plans").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("start_date", p.StartDate).
		Set("end_date", p.EndDate).
		Set("goals", p.Goals).
		Set("status", p.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update development plan query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrDevelopmentPlanNotFound
		}
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewBadRequestError("end date must not be before start date")
		}
		logger.Error().Err(err).Int64("planID", p.ID).Msg("Error executing update development plan query")
		return fmt.Errorf("error updating development plan: %w", err)
	}
	return nil
}

// ListPlans returns plans of visible trainees with the creator name, newest first.
// Zero traineeID and empty status mean no filter.
func (r *DevelopmentPlanRepository) ListPlans(ctx context.Context, scope auth.Scope, traineeID int64, status models.PlanStatus) ([]dto.DevelopmentPlanDetail, error) {
	where := squirrel.And{scope.Where("t")}
	if traineeID > 0 {
		where = append(where, squirrel.Eq{"p.trainee_id": traineeID})
	}
	if status != "" {
		where = append(where, squirrel.Eq{"p.status": status})
	}

	sql, args, err := r.sb.Select(
		"p.id", "p.trainee_id", "p.creator_id", "p.title", "p.description", "p.start_date", "p.end_date",
		"p.goals", "p.status", "p.created_at", "p.updated_at", "u.name",
	).
		From("development_plans p").
		Join("trainees t ON t.id = p.trainee_id").
		Join("users u ON u.id = p.creator_id").
		Where(where).
		OrderBy("p.created_at DESC", "p.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list development plans query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list development plans query")
		return nil, fmt.Errorf("error querying development plans: %w", err)
	}
	defer rows.Close()

	plans := []dto.DevelopmentPlanDetail{}
	for rows.Next() {
		var d dto.DevelopmentPlanDetail
		if err := rows.Scan(&d.ID, &d.TraineeID, &d.CreatorID, &d.Title, &d.Description, &d.StartDate,
			&d.EndDate, &d.Goals, &d.Status, &d.CreatedAt, &d.UpdatedAt, &d.CreatorName); err != nil {
			return nil, fmt.Errorf("error scanning development plan row: %w", err)
		}
		if d.Goals == nil {
			d.Goals = []string{}
		}
		plans = append(plans, d)
	}
	return plans, rows.Err()
}
