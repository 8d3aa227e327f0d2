// Package seed populates a fresh deployment with an admin account, the
// default exercise catalog, and optional demo athletes with fake workout
// histories. Completed steps are tracked in a local SQLite state database so
// reruns are idempotent.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/athletetrack/athletetrack/internal/auth"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// CatalogEntry is one default exercise.
type CatalogEntry struct {
	Name           string
	CaloriesPerMin float64
}

// DefaultCatalog is the exercise set a new deployment starts with.
var DefaultCatalog = []CatalogEntry{
	{"Running", 10},
	{"Cycling", 8},
	{"Swimming", 9},
	{"Rowing", 8.5},
	{"Jump Rope", 12},
	{"Weightlifting", 6},
	{"Yoga", 3},
	{"Walking", 4},
	{"HIIT", 11},
	{"Elliptical", 7},
}

// Seeder writes seed data through the storage layer.
type Seeder struct {
	db    *storage.DB
	state *StateDB
	log   *slog.Logger
	rng   *rand.Rand
}

// New returns a Seeder. A nil state database disables step tracking: every
// step runs on every invocation.
func New(db *storage.DB, state *StateDB, log *slog.Logger) *Seeder {
	return &Seeder{
		db:    db,
		state: state,
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// EnsureAdmin creates the admin account unless one already holds the email.
func (s *Seeder) EnsureAdmin(ctx context.Context, email, password, name string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = s.db.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Name:         name,
	})
	if errors.Is(err, storage.ErrEmailTaken) {
		s.log.Info("admin account already exists", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	s.log.Info("admin account created", "email", email)
	return nil
}

// SeedCatalog inserts the default exercises, skipping names already present.
func (s *Seeder) SeedCatalog(ctx context.Context) error {
	done, err := s.stepDone("catalog")
	if err != nil {
		return err
	}
	if done {
		s.log.Info("exercise catalog already seeded")
		return nil
	}

	for _, entry := range DefaultCatalog {
		_, err := s.db.CreateExercise(ctx, entry.Name, entry.CaloriesPerMin)
		if errors.Is(err, storage.ErrNameTaken) || errors.Is(err, storage.ErrNameTakenDeleted) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seeding exercise %q: %w", entry.Name, err)
		}
	}
	s.log.Info("exercise catalog seeded", "count", len(DefaultCatalog))
	return s.markStep("catalog")
}

// SeedDemo creates n fake athletes, each with workoutsPer random workouts
// spread over the past year.
func (s *Seeder) SeedDemo(ctx context.Context, n, workoutsPer int) error {
	done, err := s.stepDone("demo")
	if err != nil {
		return err
	}
	if done {
		s.log.Info("demo data already seeded")
		return nil
	}

	exercises, err := s.db.ListExercises(ctx, false)
	if err != nil {
		return fmt.Errorf("listing exercises: %w", err)
	}
	if len(exercises) == 0 {
		return errors.New("cannot seed demo workouts: exercise catalog is empty")
	}

	hash, err := auth.HashPassword("demo-password")
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}

	now := time.Now()
	for i := 0; i < n; i++ {
		athlete, err := s.db.CreateUser(ctx, fakeAthlete(hash))
		if errors.Is(err, storage.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("creating demo athlete: %w", err)
		}

		for j := 0; j < workoutsPer; j++ {
			nw := s.randomWorkout(athlete.ID, exercises, now)
			if _, err := s.db.CreateWorkout(ctx, nw); err != nil {
				return fmt.Errorf("creating demo workout: %w", err)
			}
		}
	}

	s.log.Info("demo data seeded", "athletes", n, "workouts_per_athlete", workoutsPer)
	return s.markStep("demo")
}

// fakeAthlete builds an athlete account with fake identity data. All demo
// accounts share one password hash so seeding stays fast.
func fakeAthlete(passwordHash string) models.User {
	height := gofakeit.Float64Range(150, 200)
	weight := gofakeit.Float64Range(50, 110)
	return models.User{
		Email:        gofakeit.Email(),
		PasswordHash: passwordHash,
		Role:         models.RoleAthlete,
		Name:         gofakeit.Name(),
		HeightCm:     &height,
		WeightKg:     &weight,
	}
}

// randomWorkout picks an exercise and a plausible session within the past
// year. Roughly a third of workouts get a short fake note.
func (s *Seeder) randomWorkout(athleteID uuid.UUID, exercises []models.Exercise, now time.Time) storage.NewWorkout {
	exercise := exercises[s.rng.Intn(len(exercises))]
	occurredAt := now.Add(-time.Duration(s.rng.Intn(365*24)) * time.Hour)

	notes := ""
	if s.rng.Intn(3) == 0 {
		notes = gofakeit.Sentence(5)
		if len(notes) > models.MaxNotesLen {
			notes = notes[:models.MaxNotesLen]
		}
	}

	return storage.NewWorkout{
		AthleteID:       athleteID,
		ExerciseID:      exercise.ID,
		DurationMinutes: s.rng.Intn(90) + models.MinWorkoutDuration,
		OccurredAt:      occurredAt,
		Notes:           notes,
	}
}

func (s *Seeder) stepDone(step string) (bool, error) {
	if s.state == nil {
		return false, nil
	}
	return s.state.IsDone(step)
}

func (s *Seeder) markStep(step string) error {
	if s.state == nil {
		return nil
	}
	return s.state.MarkDone(step)
}
