package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/google/uuid"
)

func (s *Server) handleAdminExercises(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"
	exercises, err := s.db.ListExercises(r.Context(), includeDeleted)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

type exerciseRequest struct {
	Name           string  `json:"name"`
	CaloriesPerMin float64 `json:"caloriesPerMin"`
}

func (req *exerciseRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.CaloriesPerMin <= 0 {
		return "caloriesPerMin must be positive"
	}
	return ""
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	exercise, err := s.db.CreateExercise(r.Context(), req.Name, req.CaloriesPerMin)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req exerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	exercise, err := s.db.UpdateExercise(r.Context(), id, req.Name, req.CaloriesPerMin)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := s.db.SoftDeleteExercise(r.Context(), id); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "exercise deleted"})
}

type restoreExerciseRequest struct {
	CaloriesPerMin *float64 `json:"caloriesPerMin,omitempty"`
}

func (s *Server) handleRestoreExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req restoreExerciseRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}
	if req.CaloriesPerMin != nil && *req.CaloriesPerMin <= 0 {
		writeError(w, http.StatusBadRequest, "caloriesPerMin must be positive")
		return
	}

	exercise, err := s.db.RestoreExercise(r.Context(), id, req.CaloriesPerMin)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.db.ListAthletes(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	if athletes == nil {
		athletes = []models.User{}
	}
	writeJSON(w, http.StatusOK, athletes)
}

func (s *Server) handleAllWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.db.ListAllWorkouts(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	if workouts == nil {
		workouts = []models.AdminWorkout{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleDeleteAnyWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	if err := s.db.DeleteWorkout(r.Context(), id, uuid.Nil); err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "workout deleted"})
}

func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.stats.AdminDashboard(r.Context(), time.Now())
	if err != nil {
		s.log.Error("admin dashboard", "error", err)
		writeError(w, http.StatusInternalServerError, "could not compute dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
