package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (auth.TokenClaims, error)
}

// UserStatusReader rechecks the account against the source of truth:
// deactivation takes effect on the next request, not at token expiry.
type UserStatusReader interface {
	GetUserByID(ctx context.Context, userID int64) (domain.User, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Auth verifies Authorization: Bearer <access_token>, rechecks that
// the account still exists and is active, and injects the identity
// into the request context.
func Auth(verifier TokenVerifier, users UserStatusReader, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			claims, err := verifier.VerifyAccessToken(raw)
			if err != nil {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}
			if claims.UserID <= 0 {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			if users != nil {
				u, err := users.GetUserByID(r.Context(), claims.UserID)
				if err != nil {
					if domain.Is(err, "user_not_found") {
						writeErr(w, r, domain.ErrTokenInvalid())
						return
					}
					writeErr(w, r, err)
					return
				}
				if !u.IsActive {
					writeErr(w, r, domain.ErrAccountDeactivated())
					return
				}
				// the stored role wins over what the token says
				claims.Role = string(u.Role)
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates privileged routes. Assumes Auth ran first.
func RequireAdmin(writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}
			if role != string(domain.RoleAdmin) {
				writeErr(w, r, domain.ErrAdminOnly())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
