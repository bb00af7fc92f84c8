package dto

import (
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

// -------- Core auth --------

type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if err := checkStruct(r); err != nil {
		return err
	}
	// The confirmation check itself belongs to the service; the DTO
	// only guards shape.
	if r.Role != "" && !domain.IsValidRole(r.Role) {
		return domain.ErrInvalidField("role", "unknown role")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Pointer keeps "absent" distinguishable from "false": absent must
	// not touch the stored preference.
	RememberMe *bool `json:"remember_me,omitempty"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return checkStruct(r)
}

type LogoutRequest struct{}

// -------- Email verification --------

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

func (r *VerifyEmailRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return checkStruct(r)
}

// -------- Password reset --------

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return checkStruct(r)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	r.Code = strings.TrimSpace(r.Code)
	return checkStruct(r)
}

// -------- Admin --------

type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (r *SetUserActiveRequest) Validate() error {
	return checkStruct(r)
}
