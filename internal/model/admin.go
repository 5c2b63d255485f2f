package model

import "time"

// DefaultAdminRole is assigned to administrators created without a role
const DefaultAdminRole = "admin"

// Admin is a back-office account allowed to manage site content
type Admin struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	Role         string    `json:"role,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is a server-side login session bound to a cookie
type Session struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"adminId"`
	Username  string    `json:"username"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has passed its expiry at the given time
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
