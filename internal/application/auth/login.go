package auth

import (
	"context"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

type LoginInput struct {
	Email    string
	Password string
	// RememberMe is persisted onto the account only when the caller
	// explicitly sent the field.
	RememberMe *bool
}

// Login authenticates a user and issues a session token.
// IMPORTANT: must not leak whether the email exists (avoid user
// enumeration) - unknown email and wrong password surface identically.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.TrimSpace(in.Email)

	if email == "" || in.Password == "" {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			// Hide not-found behind invalid credentials
			return LoginResult{}, domain.ErrInvalidCredentials()
		}
		return LoginResult{}, err
	}

	if !u.IsActive {
		return LoginResult{}, domain.ErrAccountDeactivated()
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if in.RememberMe != nil && *in.RememberMe != u.RememberMe {
		if err := s.users.SetRememberMe(ctx, u.ID, *in.RememberMe); err != nil {
			return LoginResult{}, err
		}
		u.RememberMe = *in.RememberMe
	}

	access, err := s.signer.SignAccessToken(u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}

	s.audit("user_logged_in", map[string]string{"email": u.Email})

	// Fan-out (login notification) happens outside this core.
	if s.pub != nil {
		evt := LoginEvent{UserID: u.ID, Email: u.Email, At: time.Now().UTC()}
		if err := s.pub.PublishLogin(ctx, evt); err != nil {
			s.audit("login_publish_failed", map[string]string{"email": u.Email})
		}
	}

	return LoginResult{
		User: u,
		Token: AuthToken{
			AccessToken: access,
			TokenType:   "Bearer",
			ExpiresIn:   int64(s.accessTTL.Seconds()),
		},
	}, nil
}

// Logout is stateless on the server side: tokens expire on their own
// and there is no revocation list. Always succeeds.
func (s *Service) Logout(ctx context.Context) string {
	return MsgLoggedOut
}
