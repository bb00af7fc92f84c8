package dto

import (
	"time"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

type UserView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	RememberMe bool      `json:"remember_me"`
	Theme      string    `json:"theme"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		IsActive:   u.IsActive,
		RememberMe: u.RememberMe,
		Theme:      string(u.Theme),
		Role:       string(u.Role),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

type RegisterData struct {
	User    UserView `json:"user"`
	Message string   `json:"message"`
}

type MessageData struct {
	Message string `json:"message"`
}
