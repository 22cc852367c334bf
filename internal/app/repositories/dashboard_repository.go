package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

var traineeRefColumns = []string{"t.id", "t.trainee_code", "t.first_name", "t.last_name", "t.department"}

var groupColumns = map[models.TraineeGroup]string{
	models.GroupByNationality: "t.nationality",
	models.GroupByDepartment:  "t.department",
}

// DashboardRepository runs the read-only aggregate queries behind the dashboard.
// Every query is restricted to trainees visible under the caller's scope.
type DashboardRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// collect runs a built query and scans each row with scan.
func collect[T any](ctx context.Context, r *DashboardRepository, name string, q squirrel.Sqlizer, scan func(pgx.Rows) (T, error)) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", name, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("query", name).Msg("Error executing dashboard query")
		return nil, fmt.Errorf("error querying %s: %w", name, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s row: %w", name, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("query", name).Msg("Error iterating dashboard rows")
		return nil, fmt.Errorf("error iterating %s: %w", name, err)
	}
	return items, nil
}

// CountTrainees counts visible trainees, optionally only those that entered on or after enteredSince.
func (r *DashboardRepository) CountTrainees(ctx context.Context, scope auth.Scope, enteredSince *time.Time) (int64, error) {
	where := squirrel.And{scope.Where("t")}
	if enteredSince != nil {
		where = append(where, squirrel.GtOrEq{"t.entry_date": *enteredSince})
	}

	sql, args, err := r.sb.Select("COUNT(*)").From("trainees t").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count trainees query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error counting trainees")
		return 0, fmt.Errorf("error counting trainees: %w", err)
	}
	return count, nil
}

// CountTraineesBy groups visible trainees by nationality or department.
func (r *DashboardRepository) CountTraineesBy(ctx context.Context, scope auth.Scope, group models.TraineeGroup) ([]models.GroupCount, error) {
	col, ok := groupColumns[group]
	if !ok {
		return nil, fmt.Errorf("unsupported trainee group %q", group)
	}

	q := r.sb.Select(col, "COUNT(*)").
		From("trainees t").
		Where(scope.Where("t")).
		GroupBy(col).
		OrderBy("COUNT(*) DESC", col+" ASC")

	return collect(ctx, r, "trainee groups", q, func(rows pgx.Rows) (models.GroupCount, error) {
		var g models.GroupCount
		err := rows.Scan(&g.Key, &g.Count)
		return g, err
	})
}

// ListEvaluationSamples returns evaluations of visible trainees dated on or after since.
func (r *DashboardRepository) ListEvaluationSamples(ctx context.Context, scope auth.Scope, since time.Time) ([]models.EvaluationSample, error) {
	q := r.sb.Select("e.id", "e.trainee_id", "e.skill_id", "e.level", "e.evaluation_date").
		From("evaluations e").
		Join("trainees t ON t.id = e.trainee_id").
		Where(squirrel.And{scope.Where("t"), squirrel.GtOrEq{"e.evaluation_date": since}})

	return collect(ctx, r, "evaluation samples", q, func(rows pgx.Rows) (models.EvaluationSample, error) {
		var s models.EvaluationSample
		err := rows.Scan(&s.EvaluationID, &s.TraineeID, &s.SkillID, &s.Level, &s.EvaluationDate)
		return s, err
	})
}

// ListVisaExpiring returns visible trainees whose visa expires on or before until, soonest first.
func (r *DashboardRepository) ListVisaExpiring(ctx context.Context, scope auth.Scope, until time.Time) ([]models.VisaExpiryAlert, error) {
	q := r.sb.Select(append(traineeRefColumns, "t.visa_expiry_date")...).
		From("trainees t").
		Where(squirrel.And{scope.Where("t"), squirrel.LtOrEq{"t.visa_expiry_date": until}}).
		OrderBy("t.visa_expiry_date ASC", "t.id ASC")

	return collect(ctx, r, "visa expiry", q, func(rows pgx.Rows) (models.VisaExpiryAlert, error) {
		var a models.VisaExpiryAlert
		err := rows.Scan(&a.ID, &a.TraineeCode, &a.FirstName, &a.LastName, &a.Department, &a.VisaExpiryDate)
		return a, err
	})
}

// ListCertificatesExpiring returns active certificates of visible trainees expiring on or before until.
func (r *DashboardRepository) ListCertificatesExpiring(ctx context.Context, scope auth.Scope, until time.Time) ([]models.CertificateExpiryAlert, error) {
	q := r.sb.Select(append([]string{"c.id", "c.name", "c.expiry_date"}, traineeRefColumns...)...).
		From("certificates c").
		Join("trainees t ON t.id = c.trainee_id").
		Where(squirrel.And{
			scope.Where("t"),
			squirrel.Eq{"c.is_active": true},
			squirrel.NotEq{"c.expiry_date": nil},
			squirrel.LtOrEq{"c.expiry_date": until},
		}).
		OrderBy("c.expiry_date ASC", "c.id ASC")

	return collect(ctx, r, "certificate expiry", q, func(rows pgx.Rows) (models.CertificateExpiryAlert, error) {
		var a models.CertificateExpiryAlert
		err := rows.Scan(&a.ID, &a.Name, &a.ExpiryDate,
			&a.Trainee.ID, &a.Trainee.TraineeCode, &a.Trainee.FirstName, &a.Trainee.LastName, &a.Trainee.Department)
		return a, err
	})
}

func scanLastEvent(rows pgx.Rows) (models.TraineeLastEvent, error) {
	var e models.TraineeLastEvent
	err := rows.Scan(&e.Trainee.ID, &e.Trainee.TraineeCode, &e.Trainee.FirstName, &e.Trainee.LastName,
		&e.Trainee.Department, &e.Last)
	return e, err
}

// ListLastHealthChecks returns every visible trainee with the date of its latest HEALTH_CHECK record.
func (r *DashboardRepository) ListLastHealthChecks(ctx context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error) {
	q := r.sb.Select(append(traineeRefColumns, "MAX(h.record_date)")...).
		From("trainees t").
		LeftJoin("health_records h ON h.trainee_id = t.id AND h.record_type = ?", models.HealthRecordCheck).
		Where(scope.Where("t")).
		GroupBy(traineeRefColumns...).
		OrderBy("t.trainee_code ASC", "t.id ASC")

	return collect(ctx, r, "last health checks", q, scanLastEvent)
}

// ListLastInterviews returns every visible trainee with the date of its latest interview.
func (r *DashboardRepository) ListLastInterviews(ctx context.Context, scope auth.Scope) ([]models.TraineeLastEvent, error) {
	q := r.sb.Select(append(traineeRefColumns, "MAX(i.interview_date)")...).
		From("trainees t").
		LeftJoin("interviews i ON i.trainee_id = t.id").
		Where(scope.Where("t")).
		GroupBy(traineeRefColumns...).
		OrderBy("t.trainee_code ASC", "t.id ASC")

	return collect(ctx, r, "last interviews", q, scanLastEvent)
}

// ListVisibleTrainees returns visible trainees ordered by trainee code.
func (r *DashboardRepository) ListVisibleTrainees(ctx context.Context, scope auth.Scope) ([]models.TraineeRef, error) {
	q := r.sb.Select(traineeRefColumns...).
		From("trainees t").
		Where(scope.Where("t")).
		OrderBy("t.trainee_code ASC", "t.id ASC")

	return collect(ctx, r, "visible trainees", q, func(rows pgx.Rows) (models.TraineeRef, error) {
		var t models.TraineeRef
		err := rows.Scan(&t.ID, &t.TraineeCode, &t.FirstName, &t.LastName, &t.Department)
		return t, err
	})
}

// ListActiveSkills returns active skill masters ordered by ID. Only ID and name are loaded.
func (r *DashboardRepository) ListActiveSkills(ctx context.Context) ([]models.SkillMaster, error) {
	q := r.sb.Select("id", "name").
		From("skill_masters").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC")

	return collect(ctx, r, "active skills", q, func(rows pgx.Rows) (models.SkillMaster, error) {
		s := models.SkillMaster{IsActive: true}
		err := rows.Scan(&s.ID, &s.Name)
		return s, err
	})
}

// ListEvaluatedPairs returns the distinct (trainee, skill) pairs evaluated in period for visible trainees.
func (r *DashboardRepository) ListEvaluatedPairs(ctx context.Context, scope auth.Scope, period string) ([]models.EvaluationPair, error) {
	q := r.sb.Select("e.trainee_id", "e.skill_id").
		Distinct().
		From("evaluations e").
		Join("trainees t ON t.id = e.trainee_id").
		Where(squirrel.And{scope.Where("t"), squirrel.Eq{"e.period": period}})

	return collect(ctx, r, "evaluated pairs", q, func(rows pgx.Rows) (models.EvaluationPair, error) {
		var p models.EvaluationPair
		err := rows.Scan(&p.TraineeID, &p.SkillID)
		return p, err
	})
}

// ListRecentEvaluations returns the newest evaluations of visible trainees.
func (r *DashboardRepository) ListRecentEvaluations(ctx context.Context, scope auth.Scope, limit int) ([]models.EvaluationActivity, error) {
	q := r.sb.Select(append([]string{"e.id", "e.level", "e.period", "e.comment", "e.evaluation_date", "s.name", "u.name"},
		traineeRefColumns...)...).
		From("evaluations e").
		Join("trainees t ON t.id = e.trainee_id").
		Join("skill_masters s ON s.id = e.skill_id").
		Join("users u ON u.id = e.evaluator_id").
		Where(scope.Where("t")).
		OrderBy("e.evaluation_date DESC", "e.id DESC").
		Limit(uint64(limit))

	return collect(ctx, r, "recent evaluations", q, func(rows pgx.Rows) (models.EvaluationActivity, error) {
		var a models.EvaluationActivity
		err := rows.Scan(&a.ID, &a.Level, &a.Period, &a.Comment, &a.EvaluationDate, &a.SkillName, &a.EvaluatorName,
			&a.Trainee.ID, &a.Trainee.TraineeCode, &a.Trainee.FirstName, &a.Trainee.LastName, &a.Trainee.Department)
		return a, err
	})
}

// ListRecentInterviews returns the newest interviews of visible trainees.
func (r *DashboardRepository) ListRecentInterviews(ctx context.Context, scope auth.Scope, limit int) ([]models.InterviewActivity, error) {
	q := r.sb.Select(append([]string{"i.id", "i.type", "i.interview_date", "i.content", "u.name"}, traineeRefColumns...)...).
		From("interviews i").
		Join("trainees t ON t.id = i.trainee_id").
		Join("users u ON u.id = i.interviewer_id").
		Where(scope.Where("t")).
		OrderBy("i.interview_date DESC", "i.id DESC").
		Limit(uint64(limit))

	return collect(ctx, r, "recent interviews", q, func(rows pgx.Rows) (models.InterviewActivity, error) {
		var a models.InterviewActivity
		err := rows.Scan(&a.ID, &a.Type, &a.InterviewDate, &a.Content, &a.InterviewerName,
			&a.Trainee.ID, &a.Trainee.TraineeCode, &a.Trainee.FirstName, &a.Trainee.LastName, &a.Trainee.Department)
		return a, err
	})
}

// ListRecentOJTRecords returns the newest OJT records of visible trainees. The trainer is optional.
func (r *DashboardRepository) ListRecentOJTRecords(ctx context.Context, scope auth.Scope, limit int) ([]models.OJTActivity, error) {
	q := r.sb.Select(append([]string{"o.id", "o.date", "o.content", "o.duration", "o.progress", "u.name"}, traineeRefColumns...)...).
		From("ojt_records o").
		Join("trainees t ON t.id = o.trainee_id").
		LeftJoin("users u ON u.id = o.trainer_id").
		Where(scope.Where("t")).
		OrderBy("o.date DESC", "o.id DESC").
		Limit(uint64(limit))

	return collect(ctx, r, "recent ojt records", q, func(rows pgx.Rows) (models.OJTActivity, error) {
		var a models.OJTActivity
		err := rows.Scan(&a.ID, &a.Date, &a.Content, &a.Duration, &a.Progress, &a.TrainerName,
			&a.Trainee.ID, &a.Trainee.TraineeCode, &a.Trainee.FirstName, &a.Trainee.LastName, &a.Trainee.Department)
		return a, err
	})
}
