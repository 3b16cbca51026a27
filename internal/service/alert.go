package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/riders-app/pinchazo-backend/internal/config"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// TransitionParams describes one conditional status transition. The
// repository applies it as a single UPDATE guarded by the expected
// current state, so concurrent racers resolve with exactly one winner.
type TransitionParams struct {
	AlertID uuid.UUID

	// Expected current status. Exactly one of From / FromAnyOf is set.
	From      models.AlertStatus
	FromAnyOf []models.AlertStatus

	To models.AlertStatus

	// Guards on the currently assigned gomero.
	RequireNoGomero bool
	RequireGomero   *int64

	// New gomero assignment; nil clears the column.
	SetGomero *int64

	// History entry fields.
	ActorID *int64
	Note    string
}

// AlertRepository is the contract for the alert store. Conditional
// methods return (nil, nil) when the guard matched zero rows; the
// service maps that to the appropriate domain error.
type AlertRepository interface {
	// CreateReplacingOpen atomically cancels every open alert the
	// requester still holds and inserts the new pending one, so two
	// concurrent submits cannot leave the rider with two open alerts.
	// It returns the number of alerts swept.
	CreateReplacingOpen(ctx context.Context, alert *models.PinchazoAlert, note string) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.PinchazoAlert, error)
	ConditionalTransition(ctx context.Context, p TransitionParams) (*models.PinchazoAlert, error)
	CancelStalePending(ctx context.Context, olderThan time.Duration) (int64, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*models.PinchazoAlert, error)
	ListForGomero(ctx context.Context, gomeroID int64) ([]*models.PinchazoAlert, error)
}

// UserDirectory is the read-only view of the external user store that
// the lifecycle manager needs for role and contact checks.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListAvailableGomeros(ctx context.Context) ([]*models.User, error)
}

// AlertService is the contract for the alert lifecycle business logic.
type AlertService interface {
	Submit(ctx context.Context, requesterID int64, lat, lng float64, notes string) (*models.PinchazoAlert, error)
	Accept(ctx context.Context, gomeroID int64, alertID uuid.UUID) (*models.PinchazoAlert, error)
	Reject(ctx context.Context, gomeroID int64, alertID uuid.UUID) (*models.PinchazoAlert, error)
	Advance(ctx context.Context, gomeroID int64, alertID uuid.UUID, next models.AlertStatus) (*models.PinchazoAlert, error)
	Cancel(ctx context.Context, actorID int64, alertID uuid.UUID, reason string) (*models.PinchazoAlert, error)
	GetAlert(ctx context.Context, alertID uuid.UUID) (*models.PinchazoAlert, error)
	ActiveForGomero(ctx context.Context, gomeroID int64) ([]*models.PinchazoAlert, error)
	HistoryForRequester(ctx context.Context, requesterID int64) ([]*models.PinchazoAlert, error)
	ExpireStalePending(ctx context.Context) (int64, error)
}

type alertService struct {
	repo     AlertRepository
	users    UserDirectory
	resolver *GomeroResolver
	notifier Notifier
	logger   *logrus.Logger
	cfg      *config.Config
}

func NewAlertService(repo AlertRepository, users UserDirectory, resolver *GomeroResolver, notifier Notifier, logger *logrus.Logger, cfg *config.Config) AlertService {
	return &alertService{
		repo:     repo,
		users:    users,
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg,
	}
}

// Submit cancels any open alert the rider still holds, creates a fresh
// pending one and fans out a notification to candidate gomeros.
func (s *alertService) Submit(ctx context.Context, requesterID int64, lat, lng float64, notes string) (*models.PinchazoAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Submit",
		"user_id": requesterID,
	})

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || (lat == 0 && lng == 0) {
		return nil, fmt.Errorf("service: location (%f, %f): %w", lat, lng, ErrValidation)
	}

	rider, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load rider: %w", err)
	}
	if rider == nil {
		return nil, fmt.Errorf("service: rider %d: %w", requesterID, ErrNotFound)
	}

	alert := &models.PinchazoAlert{
		UserID:    requesterID,
		Status:    models.StatusPending,
		Latitude:  lat,
		Longitude: lng,
		Notes:     notes,
	}
	cancelled, err := s.repo.CreateReplacingOpen(ctx, alert, "replaced by a new alert")
	if err != nil {
		log.WithError(err).Error("Failed to create alert in repository")
		return nil, fmt.Errorf("service: could not create alert: %w", err)
	}
	if cancelled > 0 {
		log.WithField("cancelled", cancelled).Info("Cancelled previous open alerts")
	}
	metrics.AlertsCreated.Inc()
	log = log.WithField("alert_id", alert.ID)
	log.Info("Pinchazo alert created")

	// Candidate resolution and fan-out are best effort: a rider with no
	// gomeros nearby still gets their alert into the pool.
	candidates, err := s.resolver.Candidates(ctx, alert)
	if err != nil {
		log.WithError(err).Error("Failed to resolve candidate gomeros")
	} else if len(candidates) == 0 {
		log.Warn("No available gomeros to notify")
	} else {
		s.notifier.AlertCreated(ctx, alert, rider.Nombre, candidates)
	}

	return alert, nil
}

// Accept assigns the alert to the calling gomero. The conditional
// update guarantees exactly one concurrent caller wins; everyone else
// observes ErrNotFound, indistinguishable from a missing alert.
func (s *alertService) Accept(ctx context.Context, gomeroID int64, alertID uuid.UUID) (*models.PinchazoAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "Accept",
		"gomero_id": gomeroID,
		"alert_id":  alertID,
	})

	gomero, err := s.requireGomero(ctx, gomeroID)
	if err != nil {
		return nil, err
	}

	alert, err := s.repo.ConditionalTransition(ctx, TransitionParams{
		AlertID:         alertID,
		From:            models.StatusPending,
		To:              models.StatusAccepted,
		RequireNoGomero: true,
		SetGomero:       &gomeroID,
		ActorID:         &gomeroID,
	})
	if err != nil {
		log.WithError(err).Error("Failed to accept alert in repository")
		return nil, fmt.Errorf("service: could not accept alert: %w", err)
	}
	if alert == nil {
		// Missing, already taken, or no longer pending. Same answer for all.
		return nil, fmt.Errorf("service: alert %s not available: %w", alertID, ErrNotFound)
	}
	metrics.AlertTransitions.WithLabelValues(string(models.StatusAccepted)).Inc()
	log.Info("Alert accepted")

	s.notifier.GomeroAccepted(ctx, alert, gomero.Nombre, gomero.Telefono)
	return alert, nil
}

// Reject releases an accepted alert back to the pending pool. It does
// not terminate the alert; other gomeros may still take it.
func (s *alertService) Reject(ctx context.Context, gomeroID int64, alertID uuid.UUID) (*models.PinchazoAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "Reject",
		"gomero_id": gomeroID,
		"alert_id":  alertID,
	})

	if _, err := s.requireGomero(ctx, gomeroID); err != nil {
		return nil, err
	}

	alert, err := s.repo.ConditionalTransition(ctx, TransitionParams{
		AlertID:       alertID,
		From:          models.StatusAccepted,
		To:            models.StatusPending,
		RequireGomero: &gomeroID,
		SetGomero:     nil,
		ActorID:       &gomeroID,
		Note:          "rejected by gomero",
	})
	if err != nil {
		log.WithError(err).Error("Failed to reject alert in repository")
		return nil, fmt.Errorf("service: could not reject alert: %w", err)
	}
	if alert == nil {
		return nil, fmt.Errorf("service: alert %s is not accepted by gomero %d: %w", alertID, gomeroID, ErrConflict)
	}
	metrics.AlertTransitions.WithLabelValues(string(models.StatusPending)).Inc()
	log.Info("Alert rejected, returned to the pool")

	s.notifier.StatusChanged(ctx, alert, models.KindGomeroRejected)
	return alert, nil
}

// Advance moves an assigned alert one step forward: accepted→on_way,
// on_way→arrived, arrived→completed.
func (s *alertService) Advance(ctx context.Context, gomeroID int64, alertID uuid.UUID, next models.AlertStatus) (*models.PinchazoAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "Advance",
		"gomero_id": gomeroID,
		"alert_id":  alertID,
		"next":      next,
	})

	expected, ok := advanceOrigin(next)
	if !ok {
		return nil, fmt.Errorf("service: %q is not an advance target: %w", next, ErrValidation)
	}

	if _, err := s.requireGomero(ctx, gomeroID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load alert: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("service: alert %s: %w", alertID, ErrNotFound)
	}
	if current.GomeroID == nil || *current.GomeroID != gomeroID {
		return nil, fmt.Errorf("service: alert %s is not assigned to gomero %d: %w", alertID, gomeroID, ErrForbidden)
	}

	alert, err := s.repo.ConditionalTransition(ctx, TransitionParams{
		AlertID:       alertID,
		From:          expected,
		To:            next,
		RequireGomero: &gomeroID,
		SetGomero:     &gomeroID,
		ActorID:       &gomeroID,
	})
	if err != nil {
		log.WithError(err).Error("Failed to advance alert in repository")
		return nil, fmt.Errorf("service: could not advance alert: %w", err)
	}
	if alert == nil {
		return nil, fmt.Errorf("service: alert %s is not in %q: %w", alertID, expected, ErrConflict)
	}
	metrics.AlertTransitions.WithLabelValues(string(next)).Inc()
	log.Info("Alert advanced")

	s.notifier.StatusChanged(ctx, alert, kindForStatus(next))
	return alert, nil
}

// Cancel terminates the alert. The rider may cancel any of their open
// alerts; the assigned gomero may cancel while assigned. Cancelling an
// alert already in a terminal status yields ErrConflict and appends no
// history entry.
func (s *alertService) Cancel(ctx context.Context, actorID int64, alertID uuid.UUID, reason string) (*models.PinchazoAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Cancel",
		"actor_id": actorID,
		"alert_id": alertID,
	})

	current, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load alert: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("service: alert %s: %w", alertID, ErrNotFound)
	}

	byGomero := current.GomeroID != nil && *current.GomeroID == actorID
	if current.UserID != actorID && !byGomero {
		return nil, fmt.Errorf("service: alert %s does not belong to actor %d: %w", alertID, actorID, ErrForbidden)
	}

	p := TransitionParams{
		AlertID:   alertID,
		FromAnyOf: cancellableStatuses(),
		To:        models.StatusCancelled,
		SetGomero: nil,
		ActorID:   &actorID,
		Note:      reason,
	}
	if byGomero {
		p.RequireGomero = &actorID
	}

	alert, err := s.repo.ConditionalTransition(ctx, p)
	if err != nil {
		log.WithError(err).Error("Failed to cancel alert in repository")
		return nil, fmt.Errorf("service: could not cancel alert: %w", err)
	}
	if alert == nil {
		return nil, fmt.Errorf("service: alert %s is already closed: %w", alertID, ErrConflict)
	}
	metrics.AlertTransitions.WithLabelValues(string(models.StatusCancelled)).Inc()
	log.Info("Alert cancelled")

	if byGomero {
		s.notifier.StatusChanged(ctx, alert, models.KindServiceCancelled)
	}
	return alert, nil
}

// GetAlert returns one alert with the assigned gomero's contact info.
func (s *alertService) GetAlert(ctx context.Context, alertID uuid.UUID) (*models.PinchazoAlert, error) {
	alert, err := s.repo.GetByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get alert: %w", err)
	}
	if alert == nil {
		return nil, fmt.Errorf("service: alert %s: %w", alertID, ErrNotFound)
	}
	return alert, nil
}

// ActiveForGomero returns the alerts visible to a gomero: their own
// assignments plus the whole pending pool.
func (s *alertService) ActiveForGomero(ctx context.Context, gomeroID int64) ([]*models.PinchazoAlert, error) {
	if _, err := s.requireGomero(ctx, gomeroID); err != nil {
		return nil, err
	}
	alerts, err := s.repo.ListForGomero(ctx, gomeroID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list active alerts: %w", err)
	}
	return alerts, nil
}

// HistoryForRequester returns all of the rider's alerts, newest first.
func (s *alertService) HistoryForRequester(ctx context.Context, requesterID int64) ([]*models.PinchazoAlert, error) {
	alerts, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("service: could not list alert history: %w", err)
	}
	return alerts, nil
}

// ExpireStalePending cancels pending alerts older than the configured
// TTL so abandoned requests do not sit in the pool forever.
func (s *alertService) ExpireStalePending(ctx context.Context) (int64, error) {
	n, err := s.repo.CancelStalePending(ctx, s.cfg.PendingAlertTTL)
	if err != nil {
		return 0, fmt.Errorf("service: could not expire stale alerts: %w", err)
	}
	if n > 0 {
		s.logger.WithFields(logrus.Fields{
			"service": "alert",
			"method":  "ExpireStalePending",
			"expired": n,
		}).Info("Expired stale pending alerts")
	}
	return n, nil
}

// requireGomero loads the actor and checks the gomero role.
func (s *alertService) requireGomero(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("service: user %d: %w", userID, ErrNotFound)
	}
	if !user.IsGomero() {
		return nil, fmt.Errorf("service: user %d is not a gomero: %w", userID, ErrForbidden)
	}
	return user, nil
}

func kindForStatus(status models.AlertStatus) models.NotificationKind {
	switch status {
	case models.StatusOnWay:
		return models.KindGomeroOnWay
	case models.StatusArrived:
		return models.KindGomeroArrived
	case models.StatusCompleted:
		return models.KindServiceCompleted
	case models.StatusCancelled:
		return models.KindServiceCancelled
	default:
		return models.KindGomeroRejected
	}
}
