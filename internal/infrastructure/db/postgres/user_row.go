package postgres

import (
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

type userRow struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsVerified   bool
	IsActive     bool
	RememberMe   bool
	Theme        string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		IsVerified:   ur.IsVerified,
		IsActive:     ur.IsActive,
		RememberMe:   ur.RememberMe,
		Theme:        domain.Theme(ur.Theme),
		Role:         domain.Role(ur.Role),
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}
