package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/athletetrack/athletetrack/internal/metrics"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/google/uuid"
)

// WorkoutSource fetches workout records for aggregation. Implementations
// must return only workouts with occurredAt >= start, restricted to the
// given athlete when athleteID is non-nil uuid (uuid.Nil means platform-wide),
// with exercise name and calories already resolved, ordered by occurredAt
// ascending then id ascending so tie-breaks are reproducible.
type WorkoutSource interface {
	WorkoutsSince(ctx context.Context, start time.Time, athleteID uuid.UUID) ([]models.Workout, error)
}

// AthleteCounter counts athlete accounts. A zero since counts every athlete
// account ever created.
type AthleteCounter interface {
	CountAthletes(ctx context.Context, since time.Time) (int, error)
}

// TimeframeEntry is one timeframe's slice of the dashboard. NewAthletes and
// TotalAthletes are populated only for admin dashboards; TotalAthletes only
// under the "all" timeframe.
type TimeframeEntry struct {
	TimeframeSummary
	NewAthletes   *int `json:"newAthletes,omitempty"`
	TotalAthletes *int `json:"totalAthletes,omitempty"`
}

// Dashboard is the full five-timeframe response. A struct rather than a map
// so the JSON keys always serialize in reporting order regardless of how the
// entries were produced.
type Dashboard struct {
	Today TimeframeEntry `json:"today"`
	Week  TimeframeEntry `json:"week"`
	Month TimeframeEntry `json:"month"`
	Year  TimeframeEntry `json:"year"`
	All   TimeframeEntry `json:"all"`
}

func (d *Dashboard) set(tf Timeframe, entry TimeframeEntry) {
	switch tf {
	case TimeframeToday:
		d.Today = entry
	case TimeframeWeek:
		d.Week = entry
	case TimeframeMonth:
		d.Month = entry
	case TimeframeYear:
		d.Year = entry
	case TimeframeAll:
		d.All = entry
	default:
		panic(fmt.Sprintf("stats: unknown timeframe %q", tf))
	}
}

// Service computes dashboards. It holds no state between calls: every
// dashboard is recomputed from scratch against the store, so staleness is
// zero and each invocation is independent.
type Service struct {
	workouts WorkoutSource
	athletes AthleteCounter
}

// NewService returns a dashboard service over the given collaborators.
func NewService(workouts WorkoutSource, athletes AthleteCounter) *Service {
	return &Service{workouts: workouts, athletes: athletes}
}

// AthleteDashboard computes the five-timeframe dashboard for one athlete.
// now is injected by the caller; the service never reads the wall clock.
func (s *Service) AthleteDashboard(ctx context.Context, athleteID uuid.UUID, now time.Time) (*Dashboard, error) {
	d, err := s.compute(ctx, athleteID, now, false)
	if err != nil {
		return nil, err
	}
	metrics.RecordDashboard("athlete")
	return d, nil
}

// AdminDashboard computes the platform-wide dashboard, including athlete
// join counts per timeframe and the all-time athlete total.
func (s *Service) AdminDashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	d, err := s.compute(ctx, uuid.Nil, now, true)
	if err != nil {
		return nil, err
	}
	metrics.RecordDashboard("admin")
	return d, nil
}

// compute runs the aggregation across the five timeframes in order. Any
// collaborator error aborts the whole computation; no partial dashboards.
// The five fetches are not one consistent snapshot: a workout inserted
// mid-computation may appear in some timeframes and not others.
func (s *Service) compute(ctx context.Context, athleteID uuid.UUID, now time.Time, admin bool) (*Dashboard, error) {
	var dashboard Dashboard

	for _, tf := range Timeframes() {
		start := StartOf(tf, now)

		workouts, err := s.workouts.WorkoutsSince(ctx, start, athleteID)
		if err != nil {
			return nil, fmt.Errorf("fetching workouts for %s: %w", tf, err)
		}

		entry := TimeframeEntry{TimeframeSummary: Aggregate(workouts)}

		if admin {
			joined, err := s.athletes.CountAthletes(ctx, start)
			if err != nil {
				return nil, fmt.Errorf("counting athletes for %s: %w", tf, err)
			}
			entry.NewAthletes = &joined

			if tf == TimeframeAll {
				total, err := s.athletes.CountAthletes(ctx, time.Time{})
				if err != nil {
					return nil, fmt.Errorf("counting all athletes: %w", err)
				}
				entry.TotalAthletes = &total
			}
		}

		dashboard.set(tf, entry)
	}

	return &dashboard, nil
}
