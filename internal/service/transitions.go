package service

import "github.com/riders-app/pinchazo-backend/internal/models"

// legalTransitions is the single definition of the alert state machine:
// for each current status, the set of statuses it may move to. Terminal
// statuses have no outgoing edges. Every runtime guard below is derived
// from this table.
var legalTransitions = map[models.AlertStatus][]models.AlertStatus{
	models.StatusPending:  {models.StatusAccepted, models.StatusCancelled},
	models.StatusAccepted: {models.StatusOnWay, models.StatusCancelled, models.StatusPending}, // pending = rejected back to the pool
	models.StatusOnWay:    {models.StatusArrived, models.StatusCancelled},
	models.StatusArrived:  {models.StatusCompleted, models.StatusCancelled},
}

// orderedStatuses fixes an iteration order over the table so derived
// guard sets come out deterministic.
var orderedStatuses = []models.AlertStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusOnWay,
	models.StatusArrived,
	models.StatusCompleted,
	models.StatusCancelled,
}

// CanTransition reports whether the edge from → to is part of the state
// machine.
func CanTransition(from, to models.AlertStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// advanceOrigin returns the status an alert must currently hold for a
// gomero to advance it to the given one. Backward and terminal edges
// are not advance targets.
func advanceOrigin(to models.AlertStatus) (models.AlertStatus, bool) {
	switch to {
	case models.StatusOnWay, models.StatusArrived, models.StatusCompleted:
	default:
		return "", false
	}
	for _, from := range orderedStatuses {
		if CanTransition(from, to) {
			return from, true
		}
	}
	return "", false
}

// cancellableStatuses returns every status with a cancel edge.
func cancellableStatuses() []models.AlertStatus {
	out := make([]models.AlertStatus, 0, len(legalTransitions))
	for _, from := range orderedStatuses {
		if CanTransition(from, models.StatusCancelled) {
			out = append(out, from)
		}
	}
	return out
}
