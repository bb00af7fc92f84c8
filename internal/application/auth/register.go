package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string // optional, defaults to USER
}

// Register creates a new account. The password/confirmation check runs
// before any store access; no record is created when it fails.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	if in.Email == "" {
		return RegisterResult{}, domain.ErrMissingField("email")
	}
	if in.Password == "" {
		return RegisterResult{}, domain.ErrMissingField("password")
	}
	if in.Password != in.PasswordConfirm {
		return RegisterResult{}, domain.ErrPasswordMismatch()
	}

	role := domain.RoleUser
	if in.Role != "" {
		if !domain.IsValidRole(in.Role) {
			return RegisterResult{}, domain.ErrInvalidField("role", "unknown role")
		}
		role = domain.Role(in.Role)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return RegisterResult{}, domain.ErrDuplicateUser()
	} else if !domain.Is(err, "user_not_found") {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		IsVerified:   false,
		IsActive:     true,
		RememberMe:   false,
		Theme:        domain.ThemeSystem,
		Role:         role,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		// The store's uniqueness constraint is the authority under
		// concurrent registration.
		return RegisterResult{}, err
	}

	s.audit("user_registered", map[string]string{"email": created.Email})

	// Verification mail dispatch is the email service's job; a broker
	// outage must not roll back the created account.
	if s.pub != nil {
		evt := VerifyEmailEvent{
			UserID: created.ID,
			Email:  created.Email,
			Token:  BuildVerificationToken(created.ID, time.Now().UTC()),
		}
		if err := s.pub.PublishVerifyEmail(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
			s.audit("verify_email_publish_failed", map[string]string{"email": created.Email})
		}
	}

	return RegisterResult{User: created, Message: MsgRegistered}, nil
}
