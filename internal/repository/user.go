package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riders-app/pinchazo-backend/internal/models"
	"github.com/riders-app/pinchazo-backend/internal/service"
)

const userColumns = `
	id, nombre, email, telefono, role, is_active, available,
	last_lat, last_lng, last_seen_at, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserDirectory {
	return &UserRepository{db: db}
}

// FindByID returns the active user, or (nil, nil) when no active user
// has that id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE id = $1 AND is_active = TRUE;
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return user, nil
}

// ListAvailableGomeros returns active gomeros currently marked
// available for work.
func (r *UserRepository) ListAvailableGomeros(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE role = $1 AND is_active = TRUE AND available = TRUE;
	`
	rows, err := r.db.Query(ctx, query, models.RoleGomero)
	if err != nil {
		return nil, fmt.Errorf("failed to list available gomeros: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Nombre,
		&user.Email,
		&user.Telefono,
		&user.Role,
		&user.IsActive,
		&user.Available,
		&user.LastLat,
		&user.LastLng,
		&user.LastSeenAt,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
