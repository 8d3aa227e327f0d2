package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/athletetrack/athletetrack/internal/auth"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/athletetrack/athletetrack/internal/stats"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/google/uuid"
)

type stubWorkoutSource struct{}

func (stubWorkoutSource) WorkoutsSince(ctx context.Context, start time.Time, athleteID uuid.UUID) ([]models.Workout, error) {
	return nil, nil
}

type stubAthleteCounter struct{}

func (stubAthleteCounter) CountAthletes(ctx context.Context, since time.Time) (int, error) {
	return 3, nil
}

func testServer(t *testing.T) (*Server, auth.Config) {
	t.Helper()
	cfg := auth.Config{Secret: "test-secret"}
	svc := stats.NewService(stubWorkoutSource{}, stubAthleteCounter{})
	return New(nil, svc, cfg, slog.Default()), cfg
}

func bearerToken(t *testing.T, cfg auth.Config, role models.Role) string {
	t.Helper()
	token, err := cfg.IssueToken(uuid.New(), role, time.Now())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return "Bearer " + token
}

// TestDashboardRouteRequiresAuth verifies that dashboard endpoints reject
// requests without a bearer token.
func TestDashboardRouteRequiresAuth(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/athlete/dashboard-stats", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

// TestDashboardRouteRoleGate verifies that an athlete token cannot reach the
// admin dashboard.
func TestDashboardRouteRoleGate(t *testing.T) {
	s, cfg := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard-stats", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, models.RoleAthlete))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

// TestAthleteDashboardRoute verifies that an authenticated athlete gets a
// dashboard with all five timeframe keys.
func TestAthleteDashboardRoute(t *testing.T) {
	s, cfg := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/athlete/dashboard-stats", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, models.RoleAthlete))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	for _, key := range []string{"today", "week", "month", "year", "all"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing timeframe key %q", key)
		}
	}
}

// TestAdminDashboardRoute verifies that the admin dashboard carries athlete
// counts the athlete view omits.
func TestAdminDashboardRoute(t *testing.T) {
	s, cfg := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard-stats", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, models.RoleAdmin))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"totalAthletes":3`) {
		t.Errorf("body missing totalAthletes: %s", rec.Body.String())
	}
}

// TestLogWorkoutValidation verifies that malformed workout submissions are
// rejected before any storage call.
func TestLogWorkoutValidation(t *testing.T) {
	s, _ := testServer(t)
	claims := &auth.Claims{UserID: uuid.New(), Role: models.RoleAthlete}

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{`},
		{"missing exercise", `{"durationMinutes": 30}`},
		{"zero duration", `{"exerciseId": "` + uuid.New().String() + `", "durationMinutes": 0}`},
		{"excessive duration", `{"exerciseId": "` + uuid.New().String() + `", "durationMinutes": 601}`},
		{"notes too long", `{"exerciseId": "` + uuid.New().String() + `", "durationMinutes": 30, "notes": "` + strings.Repeat("x", 201) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/athlete/workouts", strings.NewReader(tt.body))
			req = req.WithContext(auth.WithClaims(req.Context(), claims))
			rec := httptest.NewRecorder()

			s.handleLogWorkout(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "errorMessage") {
				t.Errorf("body missing errorMessage: %s", rec.Body.String())
			}
		})
	}
}

// TestValidateCredentials exercises the registration input checks.
func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantOK   bool
	}{
		{"valid", "alice@example.com", "hunter22", true},
		{"empty email", "", "hunter22", false},
		{"no at sign", "alice.example.com", "hunter22", false},
		{"short password", "alice@example.com", "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateCredentials(tt.email, tt.password)
			if (msg == "") != tt.wantOK {
				t.Errorf("validateCredentials(%q, %q) = %q, want ok=%v", tt.email, tt.password, msg, tt.wantOK)
			}
		})
	}
}

// TestStorageErrorMapping verifies sentinel errors translate to the right
// HTTP statuses.
func TestStorageErrorMapping(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"email taken", storage.ErrEmailTaken, http.StatusConflict},
		{"name taken", storage.ErrNameTaken, http.StatusConflict},
		{"name held by deleted", storage.ErrNameTakenDeleted, http.StatusConflict},
		{"exercise deleted", storage.ErrExerciseDeleted, http.StatusBadRequest},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.storageError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

// TestInvalidIDParam verifies that a non-UUID path id is a 400, not a 500.
func TestInvalidIDParam(t *testing.T) {
	s, cfg := testServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/workouts/not-a-uuid", nil)
	req.Header.Set("Authorization", bearerToken(t, cfg, models.RoleAdmin))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
