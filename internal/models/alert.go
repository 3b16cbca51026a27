package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the lifecycle state of a pinchazo alert.
type AlertStatus string

const (
	StatusPending   AlertStatus = "pending"
	StatusAccepted  AlertStatus = "accepted"
	StatusOnWay     AlertStatus = "on_way"
	StatusArrived   AlertStatus = "arrived"
	StatusCompleted AlertStatus = "completed"
	StatusCancelled AlertStatus = "cancelled"
)

// OpenStatuses are the non-terminal states. A rider may hold at most one
// alert in any of these at a time.
var OpenStatuses = []AlertStatus{StatusPending, StatusAccepted, StatusOnWay, StatusArrived}

// IsTerminal reports whether no further transition may be applied.
func (s AlertStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s AlertStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusOnWay, StatusArrived, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PinchazoAlert is a single flat-tire assistance request.
type PinchazoAlert struct {
	ID          uuid.UUID   `json:"id"`
	UserID      int64       `json:"user_id"`
	GomeroID    *int64      `json:"gomero_id,omitempty"`
	Status      AlertStatus `json:"status"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CanceledAt  *time.Time  `json:"canceled_at,omitempty"`

	// Populated by queries that join the assigned gomero.
	GomeroNombre   *string `json:"gomero_nombre,omitempty"`
	GomeroTelefono *string `json:"gomero_telefono,omitempty"`
}

// AlertHistoryEntry is one append-only row per observed status change.
type AlertHistoryEntry struct {
	ID        int64       `json:"id"`
	AlertID   uuid.UUID   `json:"alert_id"`
	Status    AlertStatus `json:"status"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
