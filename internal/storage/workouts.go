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

// ErrExerciseDeleted is returned when a workout references a soft-deleted
// exercise at creation or update time.
var ErrExerciseDeleted = errors.New("exercise is deleted")

const workoutColumns = `w.id, w.athlete_id, w.exercise_id, e.name, w.duration_min,
	 w.calories, w.occurred_at, COALESCE(w.notes, ''), w.created_at, w.updated_at`

// NewWorkout is the caller-supplied part of a workout record.
type NewWorkout struct {
	AthleteID       uuid.UUID
	ExerciseID      uuid.UUID
	DurationMinutes int
	OccurredAt      time.Time
	Notes           string
}

// CreateWorkout logs a workout. CaloriesBurned is derived here, once, from
// the exercise's current calories-per-minute rate; later rate changes never
// rewrite logged workouts. Soft-deleted exercises are not available for new
// workouts.
func (db *DB) CreateWorkout(ctx context.Context, nw NewWorkout) (models.Workout, error) {
	exercise, err := db.GetExercise(ctx, nw.ExerciseID)
	if err != nil {
		return models.Workout{}, err
	}
	if exercise.IsDeleted {
		return models.Workout{}, ErrExerciseDeleted
	}

	w := models.Workout{
		ID:              uuid.New(),
		AthleteID:       nw.AthleteID,
		ExerciseID:      nw.ExerciseID,
		ExerciseName:    exercise.Name,
		DurationMinutes: nw.DurationMinutes,
		CaloriesBurned:  float64(nw.DurationMinutes) * exercise.CaloriesPerMin,
		OccurredAt:      nw.OccurredAt,
		Notes:           nw.Notes,
	}

	row := db.Pool.QueryRow(ctx,
		`INSERT INTO workouts (id, athlete_id, exercise_id, duration_min, calories, occurred_at, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		 RETURNING created_at, updated_at`,
		w.ID, w.AthleteID, w.ExerciseID, w.DurationMinutes, w.CaloriesBurned, w.OccurredAt, w.Notes)
	if err := row.Scan(&w.CreatedAt, &w.UpdatedAt); err != nil {
		return models.Workout{}, fmt.Errorf("inserting workout: %w", err)
	}
	return w, nil
}

// WorkoutUpdate carries optional field changes; nil fields keep the stored
// value. Changing the exercise or duration recomputes calories.
type WorkoutUpdate struct {
	ExerciseID      *uuid.UUID
	DurationMinutes *int
	OccurredAt      *time.Time
	Notes           *string
}

// UpdateWorkout applies the given changes to a workout owned by athleteID
// (uuid.Nil skips the ownership check, for admin callers).
func (db *DB) UpdateWorkout(ctx context.Context, id, athleteID uuid.UUID, upd WorkoutUpdate) (models.Workout, error) {
	current, err := db.GetWorkout(ctx, id)
	if err != nil {
		return models.Workout{}, err
	}
	if athleteID != uuid.Nil && current.AthleteID != athleteID {
		return models.Workout{}, ErrNotFound
	}

	exerciseID := current.ExerciseID
	if upd.ExerciseID != nil {
		exerciseID = *upd.ExerciseID
	}
	duration := current.DurationMinutes
	if upd.DurationMinutes != nil {
		duration = *upd.DurationMinutes
	}
	occurredAt := current.OccurredAt
	if upd.OccurredAt != nil {
		occurredAt = *upd.OccurredAt
	}
	notes := current.Notes
	if upd.Notes != nil {
		notes = *upd.Notes
	}

	calories := current.CaloriesBurned
	if exerciseID != current.ExerciseID || duration != current.DurationMinutes {
		exercise, err := db.GetExercise(ctx, exerciseID)
		if err != nil {
			return models.Workout{}, err
		}
		if exerciseID != current.ExerciseID && exercise.IsDeleted {
			return models.Workout{}, ErrExerciseDeleted
		}
		calories = float64(duration) * exercise.CaloriesPerMin
	}

	_, err = db.Pool.Exec(ctx,
		`UPDATE workouts
		 SET exercise_id = $2, duration_min = $3, calories = $4, occurred_at = $5,
		     notes = NULLIF($6, ''), updated_at = NOW()
		 WHERE id = $1`,
		id, exerciseID, duration, calories, occurredAt, notes)
	if err != nil {
		return models.Workout{}, fmt.Errorf("updating workout: %w", err)
	}
	return db.GetWorkout(ctx, id)
}

// DeleteWorkout removes a workout. athleteID scopes the delete to the owner;
// uuid.Nil deletes regardless of owner (admin).
func (db *DB) DeleteWorkout(ctx context.Context, id, athleteID uuid.UUID) error {
	query := `DELETE FROM workouts WHERE id = $1`
	args := []any{id}
	if athleteID != uuid.Nil {
		query += ` AND athlete_id = $2`
		args = append(args, athleteID)
	}
	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetWorkout retrieves one workout with its exercise name joined.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (models.Workout, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts w JOIN exercises e ON e.id = w.exercise_id
		 WHERE w.id = $1`, id)
	w, err := scanWorkout(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Workout{}, ErrNotFound
	}
	if err != nil {
		return models.Workout{}, fmt.Errorf("querying workout: %w", err)
	}
	return w, nil
}

// ListWorkoutsByAthlete returns one athlete's history, newest first.
func (db *DB) ListWorkoutsByAthlete(ctx context.Context, athleteID uuid.UUID) ([]models.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts w JOIN exercises e ON e.id = w.exercise_id
		 WHERE w.athlete_id = $1
		 ORDER BY w.occurred_at DESC`, athleteID)
	if err != nil {
		return nil, fmt.Errorf("querying workout history: %w", err)
	}
	defer rows.Close()

	var out []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ListAllWorkouts returns every athlete's history with owner identity
// joined, newest first (admin view).
func (db *DB) ListAllWorkouts(ctx context.Context) ([]models.AdminWorkout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`, u.name, u.email
		 FROM workouts w
		 JOIN exercises e ON e.id = w.exercise_id
		 JOIN users u ON u.id = w.athlete_id
		 ORDER BY w.occurred_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying all workouts: %w", err)
	}
	defer rows.Close()

	var out []models.AdminWorkout
	for rows.Next() {
		var aw models.AdminWorkout
		if err := rows.Scan(&aw.ID, &aw.AthleteID, &aw.ExerciseID, &aw.ExerciseName,
			&aw.DurationMinutes, &aw.CaloriesBurned, &aw.OccurredAt, &aw.Notes,
			&aw.CreatedAt, &aw.UpdatedAt, &aw.AthleteName, &aw.AthleteEmail); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		out = append(out, aw)
	}
	return out, rows.Err()
}

// WorkoutsSince returns workouts with occurredAt >= start, scoped to one
// athlete when athleteID is not uuid.Nil. The exercise name is joined
// regardless of the catalog entry's deleted flag, so historical workouts
// keep aggregating. Rows are ordered by occurredAt then id ascending — the
// fixed order the dashboard's tie-break policy relies on.
func (db *DB) WorkoutsSince(ctx context.Context, start time.Time, athleteID uuid.UUID) ([]models.Workout, error) {
	query := `SELECT ` + workoutColumns + `
		 FROM workouts w JOIN exercises e ON e.id = w.exercise_id
		 WHERE w.occurred_at >= $1`
	args := []any{start}
	if athleteID != uuid.Nil {
		query += ` AND w.athlete_id = $2`
		args = append(args, athleteID)
	}
	query += ` ORDER BY w.occurred_at ASC, w.id ASC`

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts since %s: %w", start.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var out []models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func scanWorkout(row pgx.Row) (models.Workout, error) {
	var w models.Workout
	err := row.Scan(&w.ID, &w.AthleteID, &w.ExerciseID, &w.ExerciseName,
		&w.DurationMinutes, &w.CaloriesBurned, &w.OccurredAt, &w.Notes,
		&w.CreatedAt, &w.UpdatedAt)
	return w, err
}
