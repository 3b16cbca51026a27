package models

import "time"

const (
	RoleUser   = "user"
	RoleGomero = "gomero"
)

// User is the projection of the external user directory that the alert
// core needs: identity, role, contact info and (for gomeros) the last
// reported location used by the proximity resolver.
type User struct {
	ID         int64      `json:"id"`
	Nombre     string     `json:"nombre"`
	Email      string     `json:"email"`
	Telefono   string     `json:"telefono,omitempty"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	Available  bool       `json:"available"`
	LastLat    *float64   `json:"last_lat,omitempty"`
	LastLng    *float64   `json:"last_lng,omitempty"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (u *User) IsGomero() bool {
	return u.Role == RoleGomero
}
