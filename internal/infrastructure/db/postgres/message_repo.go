package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const messageColumns = `id, contact_id, subject, body, created_at, updated_at`

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func scanMessage(row interface{ Scan(...any) error }) (domain.Message, error) {
	var m domain.Message
	err := row.Scan(&m.ID, &m.ContactID, &m.Subject, &m.Body, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MessageRepo) Create(ctx context.Context, m domain.Message) (domain.Message, error) {
	const q = `
INSERT INTO messages (contact_id, subject, body)
VALUES ($1,$2,$3)
RETURNING ` + messageColumns + `;
`
	out, err := scanMessage(r.db.QueryRowContext(ctx, q, m.ContactID, m.Subject, m.Body))
	if err != nil {
		if strings.Contains(err.Error(), "23503") {
			return domain.Message{}, domain.ErrContactNotFound()
		}
		return domain.Message{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id int64) (domain.Message, error) {
	const q = `
SELECT ` + messageColumns + `
FROM messages
WHERE id = $1
LIMIT 1;
`
	out, err := scanMessage(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Message{}, domain.ErrMessageNotFound()
		}
		return domain.Message{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *MessageRepo) ListByContact(ctx context.Context, contactID int64) ([]domain.Message, error) {
	const q = `
SELECT ` + messageColumns + `
FROM messages
WHERE contact_id = $1
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, contactID)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *MessageRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM messages WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrMessageNotFound()
	}
	return nil
}
