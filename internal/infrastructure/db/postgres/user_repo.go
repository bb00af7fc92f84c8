package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const userColumns = `id, name, email, password_hash, is_verified, is_active, remember_me, theme, role, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isDuplicate(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate") ||
		strings.Contains(err.Error(), "23505")
}

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.IsVerified,
		&ur.IsActive,
		&ur.RememberMe,
		&ur.Theme,
		&ur.Role,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Theme == "" {
		u.Theme = domain.ThemeSystem
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	const q = `
INSERT INTO users (name, email, password_hash, is_verified, is_active, remember_me, theme, role)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING ` + userColumns + `;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.IsVerified, u.IsActive, u.RememberMe, string(u.Theme), string(u.Role),
	))
	if err != nil {
		// The unique index on email is the authority under concurrent
		// registration.
		if isDuplicate(err) {
			return domain.User{}, domain.ErrDuplicateUser()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOnUser(ctx, q, userID, newHash)
}

func (r *UserRepo) SetVerified(ctx context.Context, userID int64) error {
	const q = `
UPDATE users
SET is_verified = TRUE,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOnUser(ctx, q, userID)
}

func (r *UserRepo) SetRememberMe(ctx context.Context, userID int64, remember bool) error {
	const q = `
UPDATE users
SET remember_me = $2,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOnUser(ctx, q, userID, remember)
}

func (r *UserRepo) SetActive(ctx context.Context, userID int64, active bool) error {
	const q = `
UPDATE users
SET is_active = $2,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOnUser(ctx, q, userID, active)
}

func (r *UserRepo) execOnUser(ctx context.Context, q string, userID int64, args ...any) error {
	if userID <= 0 {
		return domain.ErrMissingField("user_id")
	}

	res, err := r.db.ExecContext(ctx, q, append([]any{userID}, args...)...)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
