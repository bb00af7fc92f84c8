package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const notificationColumns = `id, user_id, title, body, is_read, created_at, updated_at`

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func scanNotification(row interface{ Scan(...any) error }) (domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (r *NotificationRepo) Create(ctx context.Context, n domain.Notification) (domain.Notification, error) {
	const q = `
INSERT INTO notifications (user_id, title, body, is_read)
VALUES ($1,$2,$3,$4)
RETURNING ` + notificationColumns + `;
`
	out, err := scanNotification(r.db.QueryRowContext(ctx, q, n.UserID, n.Title, n.Body, n.IsRead))
	if err != nil {
		if strings.Contains(err.Error(), "23503") {
			return domain.Notification{}, domain.ErrUserNotFound()
		}
		return domain.Notification{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *NotificationRepo) GetByID(ctx context.Context, id int64) (domain.Notification, error) {
	const q = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE id = $1
LIMIT 1;
`
	out, err := scanNotification(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Notification{}, domain.ErrNotificationNotFound()
		}
		return domain.Notification{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Notification, error) {
	const q = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	const q = `
UPDATE notifications
SET is_read = TRUE,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound()
	}
	return nil
}

func (r *NotificationRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM notifications WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound()
	}
	return nil
}
