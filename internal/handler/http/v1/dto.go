package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO carries a geographic point.
// @Description Geographic point of the breakdown
type LocationDTO struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// CreateAlertRequest DTO for submitting a flat tire alert
// @Description DTO for submitting a flat tire alert
type CreateAlertRequest struct {
	Location *LocationDTO `json:"location" validate:"required"`
	Notes    string       `json:"notes,omitempty" validate:"max=500"`
}

// CancelAlertRequest DTO for cancelling an alert
// @Description DTO for cancelling an alert, reason is optional
type CancelAlertRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// GomeroInfo contact details of the assigned gomero
// @Description Contact details of the assigned gomero
type GomeroInfo struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre,omitempty"`
	Telefono string `json:"telefono,omitempty"`
}

// AlertResponse DTO with the full alert state
// @Description DTO with the full alert state
type AlertResponse struct {
	ID          uuid.UUID   `json:"id"`
	UserID      int64       `json:"user_id"`
	Status      string      `json:"status"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Notes       string      `json:"notes,omitempty"`
	Gomero      *GomeroInfo `json:"gomero,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CanceledAt  *time.Time  `json:"canceled_at,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// RegisterTokenRequest DTO for registering a push token
// @Description DTO for registering an Expo push token
type RegisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// UnregisterTokenRequest DTO for removing a push token
// @Description DTO for removing an Expo push token
type UnregisterTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// TestNotificationRequest DTO for the diagnostic broadcast
// @Description DTO for the diagnostic broadcast
type TestNotificationRequest struct {
	Title string `json:"title,omitempty" validate:"max=255"`
	Body  string `json:"body,omitempty" validate:"max=1000"`
}
