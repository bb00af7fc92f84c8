package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const contactColumns = `id, name, email, phone, created_at, updated_at`

type ContactRepo struct {
	db *sql.DB
}

func NewContactRepo(db *sql.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

func scanContact(row interface{ Scan(...any) error }) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *ContactRepo) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Contact{}, domain.ErrMissingField("name")
	}

	const q = `
INSERT INTO contacts (name, email, phone)
VALUES ($1,$2,$3)
RETURNING ` + contactColumns + `;
`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, c.Name, c.Email, c.Phone))
	if err != nil {
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ContactRepo) GetByID(ctx context.Context, id int64) (domain.Contact, error) {
	const q = `
SELECT ` + contactColumns + `
FROM contacts
WHERE id = $1
LIMIT 1;
`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Contact{}, domain.ErrContactNotFound()
		}
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	const q = `
SELECT ` + contactColumns + `
FROM contacts
ORDER BY name, id;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ContactRepo) Update(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	const q = `
UPDATE contacts
SET name = $2,
    email = $3,
    phone = $4,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + contactColumns + `;
`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Email, c.Phone))
	if err != nil {
		if isNoRows(err) {
			return domain.Contact{}, domain.ErrContactNotFound()
		}
		return domain.Contact{}, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ContactRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM contacts WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrContactNotFound()
	}
	return nil
}
