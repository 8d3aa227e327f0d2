package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/athletetrack/athletetrack/internal/auth"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/athletetrack/athletetrack/internal/storage"
)

type registerRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	HeightCm *float64 `json:"height,omitempty"`
	WeightKg *float64 `json:"weight,omitempty"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateCredentials(req.Email, req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("hashing password", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	// Self-registration always creates an athlete; admins are provisioned
	// out of band.
	user, err := s.db.CreateUser(r.Context(), models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleAthlete,
		Name:         req.Name,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
	})
	if err != nil {
		s.storageError(w, err)
		return
	}

	token, err := s.authCfg.IssueToken(user.ID, user.Role, time.Now())
	if err != nil {
		s.log.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		s.log.Error("looking up user", "error", err)
		writeError(w, http.StatusInternalServerError, "could not log in")
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.authCfg.IssueToken(user.ID, user.Role, time.Now())
	if err != nil {
		s.log.Error("issuing token", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

type profileUpdateRequest struct {
	Email    *string  `json:"email,omitempty"`
	Password *string  `json:"password,omitempty"`
	Name     *string  `json:"name,omitempty"`
	HeightCm *float64 `json:"height,omitempty"`
	WeightKg *float64 `json:"weight,omitempty"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	user, err := s.db.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		s.storageError(w, err)
		return
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.Contains(email, "@") {
			writeError(w, http.StatusBadRequest, "invalid email")
			return
		}
		user.Email = email
	}
	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "password too short")
			return
		}
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			s.log.Error("hashing password", "error", err)
			writeError(w, http.StatusInternalServerError, "could not update profile")
			return
		}
		user.PasswordHash = hash
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		user.Name = name
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}

	if err := s.db.UpdateUser(r.Context(), user); err != nil {
		s.storageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

const minPasswordLen = 6

func validateCredentials(email, password string) string {
	if email == "" || !strings.Contains(email, "@") {
		return "invalid email"
	}
	if len(password) < minPasswordLen {
		return "password too short"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"errorMessage": msg})
}

// storageError maps storage sentinel errors onto HTTP statuses. Unknown
// errors are logged and surfaced as a 500.
func (s *Server) storageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, storage.ErrNameTakenDeleted):
		writeError(w, http.StatusConflict, "a deleted exercise with this name exists; restore it instead")
	case errors.Is(err, storage.ErrNameTaken):
		writeError(w, http.StatusConflict, "exercise name already exists")
	case errors.Is(err, storage.ErrExerciseDeleted):
		writeError(w, http.StatusBadRequest, "exercise is deleted")
	default:
		s.log.Error("storage error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
