package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riders-app/pinchazo-backend/internal/push"
	"github.com/riders-app/pinchazo-backend/internal/service"
)

type DeviceTokenRepository struct {
	db *pgxpool.Pool
}

// NewDeviceTokenRepository returns the concrete type because the repo
// serves two consumers, the notification service and the push
// dispatcher's token source.
func NewDeviceTokenRepository(db *pgxpool.Pool) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a token for a user. A token already registered to
// another user is reassigned, which covers app reinstalls and shared
// devices.
func (r *DeviceTokenRepository) Upsert(ctx context.Context, userID int64, token string) error {
	query := `
		INSERT INTO device_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to upsert device token: %w", err)
	}
	return nil
}

// Delete removes a single token for a user. Deleting a token that is
// absent is not an error.
func (r *DeviceTokenRepository) Delete(ctx context.Context, userID int64, token string) error {
	query := `DELETE FROM device_tokens WHERE user_id = $1 AND token = $2;`
	if _, err := r.db.Exec(ctx, query, userID, token); err != nil {
		return fmt.Errorf("failed to delete device token: %w", err)
	}
	return nil
}

// DeleteTokens removes tokens regardless of owner. The dispatcher uses
// it to prune tokens the push provider reported as dead.
func (r *DeviceTokenRepository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	query := `DELETE FROM device_tokens WHERE token = ANY($1);`
	tag, err := r.db.Exec(ctx, query, tokens)
	if err != nil {
		return 0, fmt.Errorf("failed to prune device tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// TokensForUsers returns every token registered by the given users.
func (r *DeviceTokenRepository) TokensForUsers(ctx context.Context, userIDs []int64) ([]string, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	query := `SELECT token FROM device_tokens WHERE user_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens for users: %w", err)
	}
	defer rows.Close()
	return collectTokens(rows)
}

// TokensForAllExcept returns every registered token, optionally
// excluding one user. exceptUserID of zero excludes nobody.
func (r *DeviceTokenRepository) TokensForAllExcept(ctx context.Context, exceptUserID int64) ([]string, error) {
	query := `SELECT token FROM device_tokens WHERE $1 = 0 OR user_id <> $1;`
	rows, err := r.db.Query(ctx, query, exceptUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load broadcast tokens: %w", err)
	}
	defer rows.Close()
	return collectTokens(rows)
}

func collectTokens(rows pgx.Rows) ([]string, error) {
	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device tokens: %w", err)
	}
	return tokens, nil
}

var (
	_ service.DeviceTokenRepository = (*DeviceTokenRepository)(nil)
	_ push.TokenSource              = (*DeviceTokenRepository)(nil)
)
