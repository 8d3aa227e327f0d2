package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/athletetrack/athletetrack/internal/auth"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleAthleteExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context(), false)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleAthleteWorkouts(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	workouts, err := s.db.ListWorkoutsByAthlete(r.Context(), claims.UserID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if workouts == nil {
		workouts = []models.Workout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

type logWorkoutRequest struct {
	ExerciseID      uuid.UUID  `json:"exerciseId"`
	DurationMinutes int        `json:"durationMinutes"`
	OccurredAt      *time.Time `json:"occurredAt,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var req logWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.ExerciseID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "exerciseId is required")
		return
	}
	if msg := validateWorkoutFields(req.DurationMinutes, req.Notes); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	workout, err := s.db.CreateWorkout(r.Context(), storage.NewWorkout{
		AthleteID:       claims.UserID,
		ExerciseID:      req.ExerciseID,
		DurationMinutes: req.DurationMinutes,
		OccurredAt:      occurredAt,
		Notes:           strings.TrimSpace(req.Notes),
	})
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

type updateWorkoutRequest struct {
	ExerciseID      *uuid.UUID `json:"exerciseId,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty"`
	OccurredAt      *time.Time `json:"occurredAt,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req updateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.DurationMinutes != nil {
		if msg := validateWorkoutFields(*req.DurationMinutes, ""); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		if len(trimmed) > models.MaxNotesLen {
			writeError(w, http.StatusBadRequest, "notes too long")
			return
		}
		req.Notes = &trimmed
	}

	workout, err := s.db.UpdateWorkout(r.Context(), id, claims.UserID, storage.WorkoutUpdate{
		ExerciseID:      req.ExerciseID,
		DurationMinutes: req.DurationMinutes,
		OccurredAt:      req.OccurredAt,
		Notes:           req.Notes,
	})
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleDeleteOwnWorkout(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteWorkout(r.Context(), id, claims.UserID); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "workout deleted"})
}

func (s *Server) handleAthleteDashboard(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	dashboard, err := s.stats.AthleteDashboard(r.Context(), claims.UserID, time.Now())
	if err != nil {
		s.log.Error("athlete dashboard", "athlete", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not compute dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func validateWorkoutFields(duration int, notes string) string {
	if duration < models.MinWorkoutDuration || duration > models.MaxWorkoutDuration {
		return "durationMinutes must be between 1 and 600"
	}
	if len(strings.TrimSpace(notes)) > models.MaxNotesLen {
		return "notes too long"
	}
	return ""
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
