package models

import "time"

// DeviceToken maps a user to one opaque push address. A user may hold
// several (one per device); a token belongs to at most one user, and a
// re-registration reassigns ownership.
type DeviceToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
