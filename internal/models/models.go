package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAthlete Role = "athlete"
)

// User is an account: an administrator or an athlete.
// Height and weight are only meaningful for athletes.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	HeightCm     *float64  `json:"height,omitempty"`
	WeightKg     *float64  `json:"weight,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Exercise is a catalog entry defining a display name and a fixed
// calories-per-minute rate. Deleting an exercise only flags it; workouts
// that reference a deleted exercise stay valid.
type Exercise struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	CaloriesPerMin float64   `json:"caloriesPerMin"`
	IsDeleted      bool      `json:"isDeleted"`
}

// Workout is a single logged exercise session. CaloriesBurned is computed
// once at creation time (duration × the exercise's calories-per-minute rate)
// and treated as immutable afterwards. OccurredAt is the time the session
// took place, not the time the record was created.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	AthleteID       uuid.UUID `json:"athleteId"`
	ExerciseID      uuid.UUID `json:"exerciseId"`
	ExerciseName    string    `json:"exerciseName"`
	DurationMinutes int       `json:"durationMinutes"`
	CaloriesBurned  float64   `json:"caloriesBurned"`
	OccurredAt      time.Time `json:"occurredAt"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AdminWorkout is a workout enriched with the owning athlete's identity,
// used by the admin history view.
type AdminWorkout struct {
	Workout
	AthleteName  string `json:"athleteName"`
	AthleteEmail string `json:"athleteEmail"`
}

const (
	// MinWorkoutDuration and MaxWorkoutDuration bound durationMinutes.
	MinWorkoutDuration = 1
	MaxWorkoutDuration = 600

	// MaxNotesLen bounds the free-text notes field.
	MaxNotesLen = 200
)
