package domain

import "time"

// Role of a platform user.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents a platform user authenticated via Google OAuth.
// Provider tokens are stored encrypted; they never leave the auth service in
// plaintext.
type User struct {
	ID                    string
	GoogleID              string
	Email                 string
	Name                  string
	Role                  string
	ProfilePictureURL     string
	EncryptedAccessToken  string
	EncryptedRefreshToken string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
