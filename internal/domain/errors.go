package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

// Registration / password reset: confirmation differs from password.
func ErrPasswordMismatch() *Error {
	return New(KindValidation, "password_mismatch", "passwords don't match")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: covers both unknown email and wrong password to avoid
// user enumeration. Do not split into more specific errors.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "invalid email or password")
}

func ErrTokenMissing() *Error {
	return New(KindAuth, "token_missing", "no token provided")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindAuth, "token_expired", "token is expired")
}

// Pending reset code found but past its validity window. The pending
// request is deleted before this is returned.
func ErrResetCodeExpired() *Error {
	return New(KindAuth, "reset_code_expired", "reset code has expired")
}

// Pending reset code found, not expired, supplied code differs.
// The pending request is NOT consumed.
func ErrInvalidResetCode() *Error {
	return New(KindAuth, "invalid_reset_code", "invalid reset code")
}

// Verification token failed to parse.
func ErrInvalidToken() *Error {
	return New(KindAuth, "invalid_token", "invalid verification token")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrForbidden() *Error {
	return New(KindForbidden, "forbidden", "forbidden")
}

func ErrAdminOnly() *Error {
	return New(KindForbidden, "admin_only", "admin privileges required")
}

// Login or forgot-password against a deactivated account.
func ErrAccountDeactivated() *Error {
	return New(KindForbidden, "account_deactivated", "account is deactivated")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "user not found")
}

// Reset attempted with no pending code (never issued or already consumed).
func ErrNoResetRequest() *Error {
	return New(KindNotFound, "no_reset_request", "no password reset request found")
}

func ErrBuildingNotFound() *Error {
	return New(KindNotFound, "building_not_found", "building not found")
}

func ErrRoomNotFound() *Error {
	return New(KindNotFound, "room_not_found", "room not found")
}

func ErrCameraNotFound() *Error {
	return New(KindNotFound, "camera_not_found", "camera not found")
}

func ErrContactNotFound() *Error {
	return New(KindNotFound, "contact_not_found", "contact not found")
}

func ErrMessageNotFound() *Error {
	return New(KindNotFound, "message_not_found", "message not found")
}

func ErrNotificationNotFound() *Error {
	return New(KindNotFound, "notification_not_found", "notification not found")
}

// ----------------------
// Conflict (409)
// ----------------------

// Registration email already taken.
func ErrDuplicateUser() *Error {
	return New(KindConflict, "duplicate_user", "user with this email already exists")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrRedisUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "redis_unavailable", "cache unavailable", cause)
}

func ErrRabbitUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "rabbit_unavailable", "message broker unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
