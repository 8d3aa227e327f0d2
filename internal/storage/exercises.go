package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNameTaken is returned when an active exercise already uses the name.
var ErrNameTaken = errors.New("exercise name already exists")

// ErrNameTakenDeleted is returned when a soft-deleted exercise holds the
// name; the caller can offer a restore instead of a create.
var ErrNameTakenDeleted = errors.New("exercise name held by a deleted exercise")

// ListExercises returns the catalog sorted by name. Soft-deleted entries are
// included only when includeDeleted is set.
func (db *DB) ListExercises(ctx context.Context, includeDeleted bool) ([]models.Exercise, error) {
	query := `SELECT id, name, calories_per_min, is_deleted FROM exercises`
	if !includeDeleted {
		query += ` WHERE NOT is_deleted`
	}
	query += ` ORDER BY name ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.CaloriesPerMin, &e.IsDeleted); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetExercise returns one catalog entry, deleted or not.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, calories_per_min, is_deleted FROM exercises WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.CaloriesPerMin, &e.IsDeleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Exercise{}, ErrNotFound
	}
	if err != nil {
		return models.Exercise{}, fmt.Errorf("querying exercise: %w", err)
	}
	return e, nil
}

// CreateExercise inserts a catalog entry. Name conflicts are checked
// case-insensitively against active and deleted entries alike.
func (db *DB) CreateExercise(ctx context.Context, name string, caloriesPerMin float64) (models.Exercise, error) {
	name = strings.TrimSpace(name)
	if err := db.checkNameConflict(ctx, name, uuid.Nil); err != nil {
		return models.Exercise{}, err
	}

	e := models.Exercise{ID: uuid.New(), Name: name, CaloriesPerMin: caloriesPerMin}
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO exercises (id, name, calories_per_min) VALUES ($1, $2, $3)`,
		e.ID, e.Name, e.CaloriesPerMin)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// UpdateExercise renames an active exercise and/or changes its rate.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, name string, caloriesPerMin float64) (models.Exercise, error) {
	name = strings.TrimSpace(name)

	existing, err := db.GetExercise(ctx, id)
	if err != nil {
		return models.Exercise{}, err
	}
	if existing.IsDeleted {
		return models.Exercise{}, ErrNotFound
	}
	if err := db.checkNameConflict(ctx, name, id); err != nil {
		return models.Exercise{}, err
	}

	_, err = db.Pool.Exec(ctx,
		`UPDATE exercises SET name = $2, calories_per_min = $3 WHERE id = $1`,
		id, name, caloriesPerMin)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("updating exercise: %w", err)
	}
	existing.Name = name
	existing.CaloriesPerMin = caloriesPerMin
	return existing, nil
}

// SoftDeleteExercise flags an exercise as deleted. Historical workouts
// referencing it are untouched and keep aggregating under its name.
func (db *DB) SoftDeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE exercises SET is_deleted = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RestoreExercise clears the deleted flag, optionally updating the
// calories-per-minute rate (nil keeps the stored rate).
func (db *DB) RestoreExercise(ctx context.Context, id uuid.UUID, caloriesPerMin *float64) (models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE exercises
		 SET is_deleted = FALSE, calories_per_min = COALESCE($2, calories_per_min)
		 WHERE id = $1 AND is_deleted
		 RETURNING id, name, calories_per_min, is_deleted`,
		id, caloriesPerMin)

	var e models.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.CaloriesPerMin, &e.IsDeleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Exercise{}, ErrNotFound
	}
	if err != nil {
		return models.Exercise{}, fmt.Errorf("restoring exercise: %w", err)
	}
	return e, nil
}

// checkNameConflict reports ErrNameTaken/ErrNameTakenDeleted when another
// exercise (excluding excludeID) already uses the name, case-insensitively.
func (db *DB) checkNameConflict(ctx context.Context, name string, excludeID uuid.UUID) error {
	var isDeleted bool
	err := db.Pool.QueryRow(ctx,
		`SELECT is_deleted FROM exercises WHERE lower(name) = lower($1) AND id <> $2`,
		name, excludeID).Scan(&isDeleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking exercise name: %w", err)
	}
	if isDeleted {
		return ErrNameTakenDeleted
	}
	return ErrNameTaken
}
