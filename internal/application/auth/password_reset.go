package auth

import (
	"context"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// ForgotPassword issues a fresh 6-digit reset code for the account,
// replacing any code still pending for that email. The code travels
// only over the event bus, never back to the caller.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.ErrMissingField("email")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", domain.ErrAccountDeactivated()
	}

	code, err := generateResetCode()
	if err != nil {
		return "", domain.ErrRandomFailed(err)
	}

	expiresAt := time.Now().UTC().Add(s.resetCodeTTL)
	if err := s.resets.Put(ctx, u.Email, PendingReset{Code: code, ExpiresAt: expiresAt}); err != nil {
		return "", err
	}

	s.audit("reset_code_issued", map[string]string{"email": u.Email})

	if s.pub != nil {
		evt := ResetCodeEvent{UserID: u.ID, Email: u.Email, Code: code, ExpiresAt: expiresAt}
		if err := s.pub.PublishResetCode(ctx, evt); err != nil {
			s.audit("reset_code_publish_failed", map[string]string{"email": u.Email})
		}
	}

	return MsgResetCodeSent, nil
}

// ResetPassword consumes a pending code and sets a new password.
// Checks run in a fixed order: unknown user, no pending request,
// expired (which deletes the request), code mismatch (which keeps it),
// then the actual reset.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	if email == "" {
		return "", domain.ErrMissingField("email")
	}
	if code == "" {
		return "", domain.ErrMissingField("code")
	}
	if newPassword == "" {
		return "", domain.ErrMissingField("new_password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	pending, err := s.resets.Get(ctx, u.Email)
	if err != nil {
		return "", err
	}

	if time.Now().UTC().After(pending.ExpiresAt) {
		// Expired codes are gone for good, even though this attempt fails.
		_ = s.resets.Delete(ctx, u.Email)
		return "", domain.ErrResetCodeExpired()
	}

	if pending.Code != code {
		// Mismatch does not consume the request; the correct code
		// remains usable.
		return "", domain.ErrInvalidResetCode()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}

	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return "", err
	}

	// One-time use.
	if err := s.resets.Delete(ctx, u.Email); err != nil {
		return "", err
	}

	s.audit("password_reset", map[string]string{"email": u.Email})
	return MsgPasswordReset, nil
}
