package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/traineehub/internal/app/auth"
	"github.com/yigit/traineehub/internal/app/models"
	"github.com/yigit/traineehub/internal/db"
	"github.com/yigit/traineehub/internal/pkg/apperrors"
	"github.com/yigit/traineehub/internal/pkg/logger"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InsertNotifications stores the notifications in one transaction, skipping any whose dedupe
// key already exists. It returns how many rows were created.
func (r *NotificationRepository) InsertNotifications(ctx context.Context, notifications []models.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	created := 0
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, n := range notifications {
			sql, args, err := r.sb.Insert("notifications").
				Columns("user_id", "trainee_id", "department", "type", "title", "message", "priority", "dedupe_key").
				Values(n.UserID, n.TraineeID, n.Department, n.Type, n.Title, n.Message, n.Priority, n.DedupeKey).
				Suffix("ON CONFLICT (dedupe_key) DO NOTHING").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert notification query: %w", err)
			}
			batch.Queue(sql, args...)
		}

		results := tx.SendBatch(ctx, batch)
		for range notifications {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return fmt.Errorf("error inserting notification: %w", err)
			}
			created += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		logger.Error().Err(err).Int("count", len(notifications)).Msg("Error storing notifications")
		return 0, err
	}
	return created, nil
}

func notificationScopeWhere(scope auth.Scope, unreadOnly bool) squirrel.And {
	where := squirrel.And{}
	if !scope.IsAll() {
		where = append(where, squirrel.Eq{"department": scope.Department})
	}
	if unreadOnly {
		where = append(where, squirrel.Eq{"is_read": false})
	}
	return where
}

// ListNotifications returns one page of notifications visible under scope, newest first,
// together with the total and unread counts.
func (r *NotificationRepository) ListNotifications(ctx context.Context, scope auth.Scope, unreadOnly bool, offset uint64, limit int) ([]models.Notification, int64, int64, error) {
	where := notificationScopeWhere(scope, unreadOnly)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)", "COUNT(*) FILTER (WHERE NOT is_read)").
		From("notifications").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build count notifications query: %w", err)
	}
	var total, unread int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total, &unread); err != nil {
		logger.Error().Err(err).Msg("Error counting notifications")
		return nil, 0, 0, fmt.Errorf("error counting notifications: %w", err)
	}

	sql, args, err := r.sb.Select("id", "user_id", "trainee_id", "department", "type", "title", "message",
		"priority", "is_read", "dedupe_key", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list notifications query")
		return nil, 0, 0, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TraineeID, &n.Department, &n.Type, &n.Title, &n.Message,
			&n.Priority, &n.IsRead, &n.DedupeKey, &n.CreatedAt); err != nil {
			return nil, 0, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, total, unread, nil
}

// MarkAsRead flags a notification visible under scope as read
func (r *NotificationRepository) MarkAsRead(ctx context.Context, scope auth.Scope, id int64) error {
	where := append(notificationScopeWhere(scope, false), squirrel.Eq{"id": id})

	sql, args, err := r.sb.Update("notifications").Set("is_read", true).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark notification query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("notificationID", id).Msg("Error marking notification as read")
		return fmt.Errorf("error marking notification as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
