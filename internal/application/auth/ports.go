package auth

import (
	"context"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

/*
UserRepo
--------
Persistence port for users.
Only describes WHAT the auth service needs, not HOW it's stored.
Every mutation must refresh the user's updated_at.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Updates needed by business flows
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
	SetVerified(ctx context.Context, userID int64) error
	SetRememberMe(ctx context.Context, userID int64, remember bool) error
	SetActive(ctx context.Context, userID int64, active bool) error
}

/*
PasswordHasher
--------------
Abstracts the salt:derivedKeyHex scheme. Compare returns nil on match
and must treat a malformed hash as a mismatch, not a failure.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by service + auth middleware. Tokens must be unique per login
event even for the same user.
*/
type TokenClaims struct {
	UserID int64
	Role   string
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID int64, role string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

/*
ResetCodeStore
--------------
Pending password-reset codes, keyed by email. One live request per
email: Put overwrites any prior entry. Get returns
domain.ErrNoResetRequest when nothing is pending; expiry is checked by
the service so the expired/absent distinction survives any backend.
*/
type PendingReset struct {
	Code      string
	ExpiresAt time.Time
}

type ResetCodeStore interface {
	Put(ctx context.Context, email string, pr PendingReset) error
	Get(ctx context.Context, email string) (PendingReset, error)
	Delete(ctx context.Context, email string) error
}

/*
EventPublisher
--------------
Publishes events to the broker. The email service consumes the first
two and sends the actual mails; the notification fan-out consumes the
login event. This service never sends email directly.
*/
type EventPublisher interface {
	PublishVerifyEmail(ctx context.Context, evt VerifyEmailEvent) error
	PublishResetCode(ctx context.Context, evt ResetCodeEvent) error
	PublishLogin(ctx context.Context, evt LoginEvent) error
}

type VerifyEmailEvent struct {
	UserID int64
	Email  string
	Token  string
}

type ResetCodeEvent struct {
	UserID    int64
	Email     string
	Code      string
	ExpiresAt time.Time
}

type LoginEvent struct {
	UserID int64
	Email  string
	At     time.Time
}
