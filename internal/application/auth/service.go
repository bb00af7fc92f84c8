package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// Fixed confirmation messages surfaced to callers. The reset code and
// verification token themselves travel only over the event bus.
const (
	MsgRegistered      = "registration successful, a verification email has been sent"
	MsgResetCodeSent   = "a password reset code has been sent to your email"
	MsgPasswordReset   = "password has been reset successfully"
	MsgEmailVerified   = "email verified successfully"
	MsgAlreadyVerified = "email is already verified"
	MsgLoggedOut       = "logged out successfully"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner
	resets ResetCodeStore
	pub    EventPublisher

	accessTTL    time.Duration
	resetCodeTTL time.Duration

	audit func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL    time.Duration
	ResetCodeTTL time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	signer TokenSigner,
	resets ResetCodeStore,
	pub EventPublisher,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	resetTTL := cfg.ResetCodeTTL
	if resetTTL <= 0 {
		resetTTL = 15 * time.Minute
	}
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		resets: resets,
		pub:    pub,
		audit:  func(string, map[string]string) {},

		accessTTL:    accessTTL,
		resetCodeTTL: resetTTL,
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// AuthToken is the session token output for handler/DTO mapping.
type AuthToken struct {
	AccessToken string
	TokenType   string // "Bearer"
	ExpiresIn   int64  // seconds
}

type RegisterResult struct {
	User    domain.User
	Message string
}

type LoginResult struct {
	User  domain.User
	Token AuthToken
}

// generateResetCode returns a 6-digit numeric one-time code drawn from
// crypto/rand; the keyspace is small, so the 15-minute window and the
// per-route rate limit carry the guessing resistance.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
