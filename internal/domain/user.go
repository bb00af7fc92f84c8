package domain

import "time"

type Role string

const (
	// Regular panel user: can manage facility data and read the dashboard.
	RoleUser Role = "USER"
	// Admin additionally manages accounts (activate/deactivate).
	RoleAdmin Role = "ADMIN"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// Theme is the UI preference stored on the account.
type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
	ThemeSystem Theme = "SYSTEM"
)

func IsValidTheme(t string) bool {
	return t == string(ThemeLight) || t == string(ThemeDark) || t == string(ThemeSystem)
}

type User struct {
	ID    int64
	Name  string
	Email string

	// PasswordHash is always the salt:derivedKeyHex encoding, never plaintext.
	PasswordHash string

	// IsVerified starts false and only transitions false -> true.
	IsVerified bool
	// IsActive toggles independently of verification; an inactive
	// user cannot log in.
	IsActive   bool
	RememberMe bool

	Theme Theme
	Role  Role

	CreatedAt time.Time
	UpdatedAt time.Time
}
