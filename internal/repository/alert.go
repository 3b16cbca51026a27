package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/service"
)

const alertColumns = `
	a.id,
	a.user_id,
	a.gomero_id,
	a.status,
	a.latitude,
	a.longitude,
	a.notes,
	a.created_at,
	a.updated_at,
	a.completed_at,
	a.canceled_at,
	g.nombre AS gomero_nombre,
	g.telefono AS gomero_telefono`

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertRepository {
	return &AlertRepository{db: db}
}

// CreateReplacingOpen cancels the requester's open alerts and inserts
// the new pending one, with history entries for both, in a single
// transaction. The partial unique index idx_pinchazo_alerts_single_open
// rejects the insert when another transaction slips its own alert in
// between the sweep and the insert; that racer is retried once, and its
// sweep then cancels the alert the winner just created.
func (r *AlertRepository) CreateReplacingOpen(ctx context.Context, alert *models.PinchazoAlert, note string) (int64, error) {
	for attempt := 0; ; attempt++ {
		cancelled, err := r.createReplacingOpen(ctx, alert, note)
		if err != nil && isUniqueViolation(err) && attempt == 0 {
			continue
		}
		return cancelled, err
	}
}

func (r *AlertRepository) createReplacingOpen(ctx context.Context, alert *models.PinchazoAlert, note string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sweep := `
		UPDATE pinchazo_alerts
		SET status = $1, gomero_id = NULL, canceled_at = NOW(), updated_at = NOW()
		WHERE user_id = $2 AND status = ANY($3)
		RETURNING id;
	`
	rows, err := tx.Query(ctx, sweep, models.StatusCancelled, alert.UserID, statusStrings(models.OpenStatuses))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel open alerts: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := appendHistory(ctx, tx, id, models.StatusCancelled, &alert.UserID, note); err != nil {
			return 0, err
		}
	}

	insert := `
		INSERT INTO pinchazo_alerts (user_id, status, latitude, longitude, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at;
	`
	err = tx.QueryRow(ctx, insert,
		alert.UserID,
		models.StatusPending,
		alert.Latitude,
		alert.Longitude,
		alert.Notes,
	).Scan(&alert.ID, &alert.Status, &alert.CreatedAt, &alert.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create alert: %w", err)
	}

	if err := appendHistory(ctx, tx, alert.ID, models.StatusPending, &alert.UserID, ""); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit alert creation: %w", err)
	}
	return int64(len(ids)), nil
}

// GetByID returns the alert with the assigned gomero's contact info
// joined in, or (nil, nil) when it does not exist.
func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PinchazoAlert, error) {
	query := `
		SELECT` + alertColumns + `
		FROM pinchazo_alerts a
		LEFT JOIN users g ON g.id = a.gomero_id
		WHERE a.id = $1;
	`
	alert, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}
	return alert, nil
}

// ConditionalTransition applies one status change as a single guarded
// UPDATE plus its history entry, in one transaction. It returns
// (nil, nil) when the guard matched zero rows — the caller lost the
// race or the alert is not in the expected state.
func (r *AlertRepository) ConditionalTransition(ctx context.Context, p service.TransitionParams) (*models.PinchazoAlert, error) {
	set := []string{"status = $1", "gomero_id = $2", "updated_at = NOW()"}
	switch p.To {
	case models.StatusCompleted:
		set = append(set, "completed_at = NOW()")
	case models.StatusCancelled:
		set = append(set, "canceled_at = NOW()")
	}

	args := []any{p.To, p.SetGomero, p.AlertID}
	conds := []string{"id = $3"}
	next := 4

	switch {
	case len(p.FromAnyOf) > 0:
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", next))
		args = append(args, statusStrings(p.FromAnyOf))
		next++
	default:
		conds = append(conds, fmt.Sprintf("status = $%d", next))
		args = append(args, p.From)
		next++
	}

	if p.RequireNoGomero {
		conds = append(conds, "gomero_id IS NULL")
	}
	if p.RequireGomero != nil {
		conds = append(conds, fmt.Sprintf("gomero_id = $%d", next))
		args = append(args, *p.RequireGomero)
		next++
	}

	// The subselects evaluate against the updated row, so transition
	// results carry the same gomero contact info GetByID returns.
	query := fmt.Sprintf(`
		UPDATE pinchazo_alerts SET %s
		WHERE %s
		RETURNING id, user_id, gomero_id, status, latitude, longitude, notes,
		          created_at, updated_at, completed_at, canceled_at,
		          (SELECT nombre FROM users WHERE id = pinchazo_alerts.gomero_id),
		          (SELECT telefono FROM users WHERE id = pinchazo_alerts.gomero_id);
	`, strings.Join(set, ", "), strings.Join(conds, " AND "))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	alert := &models.PinchazoAlert{}
	err = tx.QueryRow(ctx, query, args...).Scan(
		&alert.ID,
		&alert.UserID,
		&alert.GomeroID,
		&alert.Status,
		&alert.Latitude,
		&alert.Longitude,
		&alert.Notes,
		&alert.CreatedAt,
		&alert.UpdatedAt,
		&alert.CompletedAt,
		&alert.CanceledAt,
		&alert.GomeroNombre,
		&alert.GomeroTelefono,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows affected: the caller lost the race.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to apply conditional transition: %w", err)
	}

	if err := appendHistory(ctx, tx, alert.ID, p.To, p.ActorID, p.Note); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}
	return alert, nil
}

// CancelStalePending cancels pending alerts older than the given age.
func (r *AlertRepository) CancelStalePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE pinchazo_alerts
		SET status = $1, gomero_id = NULL, canceled_at = NOW(), updated_at = NOW()
		WHERE status = $2 AND created_at < NOW() - ($3 * INTERVAL '1 second')
		RETURNING id;
	`
	rows, err := tx.Query(ctx, query, models.StatusCancelled, models.StatusPending, int64(olderThan.Seconds()))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale alerts: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := appendHistory(ctx, tx, id, models.StatusCancelled, nil, "expired"); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit stale cancellation: %w", err)
	}
	return int64(len(ids)), nil
}

// ListByRequester returns all of the rider's alerts, newest first.
func (r *AlertRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*models.PinchazoAlert, error) {
	query := `
		SELECT` + alertColumns + `
		FROM pinchazo_alerts a
		LEFT JOIN users g ON g.id = a.gomero_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts by requester: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

// ListForGomero returns the gomero's own active assignments plus the
// whole pending pool, newest first.
func (r *AlertRepository) ListForGomero(ctx context.Context, gomeroID int64) ([]*models.PinchazoAlert, error) {
	query := `
		SELECT` + alertColumns + `
		FROM pinchazo_alerts a
		LEFT JOIN users g ON g.id = a.gomero_id
		WHERE a.status = $1
		   OR (a.gomero_id = $2 AND a.status = ANY($3))
		ORDER BY a.created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, models.StatusPending, gomeroID, statusStrings(models.OpenStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts for gomero: %w", err)
	}
	defer rows.Close()
	return scanAlerts(rows)
}

func appendHistory(ctx context.Context, tx pgx.Tx, alertID uuid.UUID, status models.AlertStatus, actorID *int64, note string) error {
	query := `
		INSERT INTO pinchazo_alert_history (alert_id, status, actor_id, note)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := tx.Exec(ctx, query, alertID, status, actorID, note); err != nil {
		return fmt.Errorf("failed to append alert history: %w", err)
	}
	return nil
}

func scanAlert(row pgx.Row) (*models.PinchazoAlert, error) {
	alert := &models.PinchazoAlert{}
	err := row.Scan(
		&alert.ID,
		&alert.UserID,
		&alert.GomeroID,
		&alert.Status,
		&alert.Latitude,
		&alert.Longitude,
		&alert.Notes,
		&alert.CreatedAt,
		&alert.UpdatedAt,
		&alert.CompletedAt,
		&alert.CanceledAt,
		&alert.GomeroNombre,
		&alert.GomeroTelefono,
	)
	if err != nil {
		return nil, err
	}
	return alert, nil
}

func scanAlerts(rows pgx.Rows) ([]*models.PinchazoAlert, error) {
	alerts := make([]*models.PinchazoAlert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert rows: %w", err)
	}
	return alerts, nil
}

func collectIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan alert id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alert ids: %w", err)
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func statusStrings(statuses []models.AlertStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
