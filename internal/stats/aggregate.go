package stats

import (
	"math"

	"github.com/athletetrack/athletetrack/internal/models"
)

// BreakdownEntry is one exercise's share of a timeframe's total duration.
type BreakdownEntry struct {
	ExerciseName              string  `json:"exerciseName"`
	TotalDurationMinutes      int     `json:"totalDurationMinutes"`
	PercentageOfTotalDuration float64 `json:"percentageOfTotalDuration"`
}

// TimeframeSummary is the reduction of one timeframe's workout set. It is a
// value object recomputed on every request, never persisted.
type TimeframeSummary struct {
	TotalCalories             float64          `json:"totalCalories"`
	TotalDurationMinutes      int              `json:"totalDurationMinutes"`
	TopCalorieWorkout         *models.Workout  `json:"topCalorieWorkout"`
	MostTimeSpentExerciseName *string          `json:"mostTimeSpentExerciseName"`
	ExerciseBreakdown         []BreakdownEntry `json:"exerciseBreakdown"`
}

// Aggregate reduces a workout sequence (already filtered by timeframe and,
// where relevant, athlete) into a TimeframeSummary in a single pass.
//
// Tie-break policy: for both the top-calorie workout and the most-time-spent
// exercise, the first occurrence in input order wins; later entries replace
// the current leader only on a strictly greater value. The result is
// deterministic for a fixed input order, which the storage layer provides by
// returning workouts ordered by occurredAt then id.
//
// Breakdown entries appear in first-seen exercise-name order and their
// percentages are rounded to two decimals; when total duration is zero every
// percentage is zero.
func Aggregate(workouts []models.Workout) TimeframeSummary {
	summary := TimeframeSummary{
		ExerciseBreakdown: []BreakdownEntry{},
	}

	var nameOrder []string
	durationByName := make(map[string]int, 8)

	for i := range workouts {
		w := &workouts[i]

		summary.TotalCalories += w.CaloriesBurned
		summary.TotalDurationMinutes += w.DurationMinutes

		if summary.TopCalorieWorkout == nil || w.CaloriesBurned > summary.TopCalorieWorkout.CaloriesBurned {
			top := *w
			summary.TopCalorieWorkout = &top
		}

		if _, seen := durationByName[w.ExerciseName]; !seen {
			nameOrder = append(nameOrder, w.ExerciseName)
		}
		durationByName[w.ExerciseName] += w.DurationMinutes
	}

	var mostTimeName string
	mostTime := -1
	for _, name := range nameOrder {
		minutes := durationByName[name]
		if minutes > mostTime {
			mostTime = minutes
			mostTimeName = name
		}

		pct := 0.0
		if summary.TotalDurationMinutes > 0 {
			pct = round2(float64(minutes) / float64(summary.TotalDurationMinutes) * 100)
		}
		summary.ExerciseBreakdown = append(summary.ExerciseBreakdown, BreakdownEntry{
			ExerciseName:              name,
			TotalDurationMinutes:      minutes,
			PercentageOfTotalDuration: pct,
		})
	}
	if mostTime >= 0 {
		summary.MostTimeSpentExerciseName = &mostTimeName
	}

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
