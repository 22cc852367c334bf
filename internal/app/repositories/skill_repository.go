package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/dberrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

var skillColumns = []string{"id", "name", "category", "description", "levels", "is_active", "created_at", "updated_at"}

// SkillRepository handles skill master database operations
type SkillRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSkill(row pgx.Row) (*models.SkillMaster, error) {
	s := &models.SkillMaster{}
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.Levels, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if s.Levels == nil {
		s.Levels = map[string]string{}
	}
	return s, err
}

// CreateSkill inserts a skill master
func (r *SkillRepository) CreateSkill(ctx context.Context, s *models.SkillMaster) error {
	levels := s.Levels
	if levels == nil {
		levels = map[string]string{}
	}

	sql, args, err := r.sb.Insert("skill_masters").
		Columns("name", "category", "description", "levels", "is_active").
		Values(s.Name, s.Category, s.Description, levels, s.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create skill query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "skill_masters_name_key") {
			return apperrors.ErrSkillAlreadyExists
		}
		logger.Error().Err(err).Str("name", s.Name).Msg("Error executing create skill query")
		return fmt.Errorf("error creating skill: %w", err)
	}
	return nil
}

// GetSkillByID retrieves a skill master by ID
func (r *SkillRepository) GetSkillByID(ctx context.Context, id int64) (*models.SkillMaster, error) {
	sql, args, err := r.sb.Select(skillColumns...).From("skill_masters").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get skill query: %w", err)
	}

	s, err := scanSkill(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, fmt.Errorf("error getting skill by ID: %w", err)
	}
	return s, nil
}

// ListActiveSkills returns active skill masters ordered by ID
func (r *SkillRepository) ListActiveSkills(ctx context.Context) ([]models.SkillMaster, error) {
	sql, args, err := r.sb.Select(skillColumns...).
		From("skill_masters").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list skills query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list skills query")
		return nil, fmt.Errorf("error querying skills: %w", err)
	}
	defer rows.Close()

	skills := []models.SkillMaster{}
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning skill row: %w", err)
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}
