package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/dberrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

var traineeColumns = []string{
	"t.id", "t.trainee_code", "t.first_name", "t.last_name", "t.first_name_kana", "t.last_name_kana",
	"t.nationality", "t.passport_number", "t.visa_type", "t.visa_expiry_date", "t.entry_date",
	"t.departure_date", "t.department", "t.position", "t.phone_number", "t.email", "t.address",
	"t.emergency_contact", "t.emergency_phone", "t.is_active", "t.created_at", "t.updated_at",
}

// traineeSortColumns whitelists the sortBy values accepted by the listing.
var traineeSortColumns = map[string]string{
	"createdAt":      "t.created_at",
	"traineeCode":    "t.trainee_code",
	"firstName":      "t.first_name",
	"lastName":       "t.last_name",
	"nationality":    "t.nationality",
	"department":     "t.department",
	"visaExpiryDate": "t.visa_expiry_date",
	"entryDate":      "t.entry_date",
}

// TraineeRepository handles trainee database operations
type TraineeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTraineeRepository creates a new TraineeRepository
func NewTraineeRepository(db *pgxpool.Pool) *TraineeRepository {
	return &TraineeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTrainee(row pgx.Row) (*models.Trainee, error) {
	t := &models.Trainee{}
	err := row.Scan(
		&t.ID, &t.TraineeCode, &t.FirstName, &t.LastName, &t.FirstNameKana, &t.LastNameKana,
		&t.Nationality, &t.PassportNumber, &t.VisaType, &t.VisaExpiryDate, &t.EntryDate,
		&t.DepartureDate, &t.Department, &t.Position, &t.PhoneNumber, &t.Email, &t.Address,
		&t.EmergencyContact, &t.EmergencyPhone, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// CreateTrainee inserts a trainee and sets its ID and timestamps
func (r *TraineeRepository) CreateTrainee(ctx context.Context, t *models.Trainee) error {
	sql, args, err := r.sb.Insert("trainees").
		Columns(
			"trainee_code", "first_name", "last_name", "first_name_kana", "last_name_kana",
			"nationality", "passport_number", "visa_type", "visa_expiry_date", "entry_date",
			"departure_date", "department", "position", "phone_number", "email", "address",
			"emergency_contact", "emergency_phone", "is_active",
		).
		Values(
			t.TraineeCode, t.FirstName, t.LastName, t.FirstNameKana, t.LastNameKana,
			t.Nationality, t.PassportNumber, t.VisaType, t.VisaExpiryDate, t.EntryDate,
			t.DepartureDate, t.Department, t.Position, t.PhoneNumber, t.Email, t.Address,
			t.EmergencyContact, t.EmergencyPhone, t.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create trainee SQL")
		return fmt.Errorf("failed to build create trainee query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "trainees_trainee_code_key") {
			return apperrors.ErrTraineeCodeAlreadyExists
		}
		logger.Error().Err(err).Str("traineeCode", t.TraineeCode).Msg("Error executing create trainee query")
		return fmt.Errorf("error creating trainee: %w", err)
	}

	return nil
}

// GetTraineeByID retrieves a trainee by ID, active or not
func (r *TraineeRepository) GetTraineeByID(ctx context.Context, id int64) (*models.Trainee, error) {
	sql, args, err := r.sb.Select(traineeColumns...).
		From("trainees t").
		Where(squirrel.Eq{"t.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get trainee query: %w", err)
	}

	trainee, err := scanTrainee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTraineeNotFound
		}
		logger.Error().Err(err).Int64("traineeID", id).Msg("Error scanning trainee row")
		return nil, fmt.Errorf("error getting trainee by ID: %w", err)
	}

	return trainee, nil
}

// UpdateTrainee overwrites every editable column of t
func (r *TraineeRepository) UpdateTrainee(ctx context.Context, t *models.Trainee) error {
	sql, args, err := r.sb.Update("trainees").
		SetMap(map[string]interface{}{
			"trainee_code":      t.TraineeCode,
			"first_name":        t.FirstName,
			"last_name":         t.LastName,
			"first_name_kana":   t.FirstNameKana,
			"last_name_kana":    t.LastNameKana,
			"nationality":       t.Nationality,
			"passport_number":   t.PassportNumber,
			"visa_type":         t.VisaType,
			"visa_expiry_date":  t.VisaExpiryDate,
			"entry_date":        t.EntryDate,
			"departure_date":    t.DepartureDate,
			"department":        t.Department,
			"position":          t.Position,
			"phone_number":      t.PhoneNumber,
			"email":             t.Email,
			"address":           t.Address,
			"emergency_contact": t.EmergencyContact,
			"emergency_phone":   t.EmergencyPhone,
			"updated_at":        squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update trainee query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTraineeNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "trainees_trainee_code_key") {
			return apperrors.ErrTraineeCodeAlreadyExists
		}
		logger.Error().Err(err).Int64("traineeID", t.ID).Msg("Error executing update trainee query")
		return fmt.Errorf("error updating trainee: %w", err)
	}

	return nil
}

// DeactivateTrainee soft-deletes a trainee
func (r *TraineeRepository) DeactivateTrainee(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE trainees SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("traineeID", id).Msg("Error deactivating trainee")
		return fmt.Errorf("error deactivating trainee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTraineeNotFound
	}
	return nil
}

func traineeFilterWhere(scope auth.Scope, f models.TraineeFilter) squirrel.And {
	where := squirrel.And{scope.Where("t")}

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + s + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"t.first_name": pattern},
			squirrel.ILike{"t.last_name": pattern},
			squirrel.ILike{"t.trainee_code": pattern},
		})
	}
	if f.Nationality != "" {
		where = append(where, squirrel.Eq{"t.nationality": f.Nationality})
	}
	if f.Department != "" {
		where = append(where, squirrel.Eq{"t.department": f.Department})
	}
	if f.VisaExpiryUntil != nil {
		where = append(where, squirrel.LtOrEq{"t.visa_expiry_date": *f.VisaExpiryUntil})
	}
	return where
}

func traineeOrderBy(f models.TraineeFilter) string {
	col, ok := traineeSortColumns[f.SortBy]
	if !ok {
		col = traineeSortColumns["createdAt"]
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// ListTrainees returns one page of visible trainees with their latest evaluation, and the total count
func (r *TraineeRepository) ListTrainees(ctx context.Context, scope auth.Scope, f models.TraineeFilter, offset uint64, limit int) ([]models.TraineeSummary, int64, error) {
	where := traineeFilterWhere(scope, f)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("trainees t").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count trainees query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting trainees")
		return nil, 0, fmt.Errorf("error counting trainees: %w", err)
	}

	sql, args, err := r.sb.Select(
		"t.id", "t.trainee_code", "t.first_name", "t.last_name", "t.nationality", "t.department",
		"t.visa_expiry_date", "t.entry_date", "t.is_active", "t.created_at", "le.level", "le.skill_name",
	).
		From("trainees t").
		LeftJoin(`LATERAL (
			SELECT e.level, s.name AS skill_name
			FROM evaluations e
			JOIN skill_masters s ON s.id = e.skill_id
			WHERE e.trainee_id = t.id
			ORDER BY e.evaluation_date DESC, e.id DESC
			LIMIT 1
		) le ON TRUE`).
		Where(where).
		OrderBy(traineeOrderBy(f), "t.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list trainees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list trainees query")
		return nil, 0, fmt.Errorf("error querying trainees: %w", err)
	}
	defer rows.Close()

	items := []models.TraineeSummary{}
	for rows.Next() {
		var (
			item      models.TraineeSummary
			level     *int
			skillName *string
		)
		if err := rows.Scan(
			&item.ID, &item.TraineeCode, &item.FirstName, &item.LastName, &item.Nationality, &item.Department,
			&item.VisaExpiryDate, &item.EntryDate, &item.IsActive, &item.CreatedAt, &level, &skillName,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning trainee row: %w", err)
		}
		if level != nil && skillName != nil {
			item.LatestEvaluation = &models.LatestEvaluation{Level: *level, SkillName: *skillName}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating trainee rows")
		return nil, 0, fmt.Errorf("error iterating trainees: %w", err)
	}

	return items, total, nil
}

// ListForExport returns every visible trainee ordered by trainee code
func (r *TraineeRepository) ListForExport(ctx context.Context, scope auth.Scope) ([]models.Trainee, error) {
	sql, args, err := r.sb.Select(traineeColumns...).
		From("trainees t").
		Where(scope.Where("t")).
		OrderBy("t.trainee_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build export trainees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing export trainees query")
		return nil, fmt.Errorf("error querying trainees for export: %w", err)
	}
	defer rows.Close()

	trainees := []models.Trainee{}
	for rows.Next() {
		t, err := scanTrainee(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trainee row: %w", err)
		}
		trainees = append(trainees, *t)
	}
	return trainees, rows.Err()
}
