package auth

import (
	"context"
	"strconv"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// GetUserByID loads an account for the /me endpoint and the auth
// middleware.
func (s *Service) GetUserByID(ctx context.Context, userID int64) (domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// SetUserActive toggles is_active. Deactivated accounts are rejected at
// login and by the auth middleware; verification state is untouched.
// Admin gating happens at the transport layer.
func (s *Service) SetUserActive(ctx context.Context, userID int64, active bool) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.IsActive == active {
		return nil
	}
	if err := s.users.SetActive(ctx, u.ID, active); err != nil {
		return err
	}

	action := "user_deactivated"
	if active {
		action = "user_activated"
	}
	s.audit(action, map[string]string{"user_id": strconv.FormatInt(u.ID, 10)})
	return nil
}
