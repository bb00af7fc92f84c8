package auth

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

const verificationTokenPrefix = "verify_email_"

// BuildVerificationToken renders the self-describing token embedded in
// verification mails: verify_email_{userId}_{unixTimestamp}.
//
// The token is not signed and carries no enforced expiry; anyone who
// knows a user id can fabricate one. That is the documented contract of
// this flow (delivery channel is trusted); do not add signing here
// without changing the contract.
func BuildVerificationToken(userID int64, at time.Time) string {
	return fmt.Sprintf("%s%d_%d", verificationTokenPrefix, userID, at.Unix())
}

// ParseVerificationToken extracts the user id. Validity is parse
// success only: segments "verify", "email", numeric id; a trailing
// timestamp segment is ignored.
func ParseVerificationToken(token string) (int64, error) {
	parts := strings.Split(token, "_")
	if len(parts) < 3 || parts[0] != "verify" || parts[1] != "email" {
		return 0, domain.ErrInvalidToken()
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidToken()
	}
	return id, nil
}

// VerifyEmail marks the referenced account as verified. Verifying an
// already-verified account is an idempotent success with no mutation.
func (s *Service) VerifyEmail(ctx context.Context, token string) (string, error) {
	userID, err := ParseVerificationToken(strings.TrimSpace(token))
	if err != nil {
		return "", err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if u.IsVerified {
		return MsgAlreadyVerified, nil
	}

	if err := s.users.SetVerified(ctx, u.ID); err != nil {
		return "", err
	}

	s.audit("email_verified", map[string]string{"email": u.Email})
	return MsgEmailVerified, nil
}
