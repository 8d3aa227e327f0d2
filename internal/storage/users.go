package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrEmailTaken is returned when an email is already registered.
var ErrEmailTaken = errors.New("email already registered")

const userColumns = `id, email, password_hash, role, name, height_cm, weight_kg, created_at, updated_at`

// CreateUser inserts a new account. The password must already be hashed.
func (db *DB) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash, role, name, height_cm, weight_kg)
		 VALUES ($1, lower($2), $3, $4, $5, $6, $7)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING `+userColumns,
		user.ID, user.Email, user.PasswordHash, user.Role, user.Name, user.HeightCm, user.WeightKg)

	created, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrEmailTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	return created, nil
}

// GetUserByEmail looks up an account by email (case-insensitive).
func (db *DB) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = lower($1)`, email)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying user by email: %w", err)
	}
	return user, nil
}

// GetUserByID looks up an account by id.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("querying user by id: %w", err)
	}
	return user, nil
}

// UpdateUser persists profile changes (email, password hash, name, body
// measurements). Returns ErrEmailTaken when the new email belongs to a
// different account.
func (db *DB) UpdateUser(ctx context.Context, user models.User) error {
	var taken bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = lower($1) AND id <> $2)`,
		user.Email, user.ID).Scan(&taken)
	if err != nil {
		return fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	tag, err := db.Pool.Exec(ctx,
		`UPDATE users
		 SET email = lower($2), password_hash = $3, name = $4, height_cm = $5, weight_kg = $6, updated_at = NOW()
		 WHERE id = $1`,
		user.ID, user.Email, user.PasswordHash, user.Name, user.HeightCm, user.WeightKg)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAthletes returns all athlete accounts sorted by name.
func (db *DB) ListAthletes(ctx context.Context) ([]models.User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'athlete' ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying athletes: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning athlete: %w", err)
		}
		out = append(out, user)
	}
	return out, rows.Err()
}

// CountAthletes counts athlete accounts created on or after since. A zero
// since counts every athlete account ever created.
func (db *DB) CountAthletes(ctx context.Context, since time.Time) (int, error) {
	var n int
	var err error
	if since.IsZero() {
		err = db.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM users WHERE role = 'athlete'`).Scan(&n)
	} else {
		err = db.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM users WHERE role = 'athlete' AND created_at >= $1`, since).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("counting athletes: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.HeightCm, &u.WeightKg, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
