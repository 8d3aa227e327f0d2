package server

import (
	"log/slog"
	"net/http"

	"github.com/athletetrack/athletetrack/internal/auth"
	"github.com/athletetrack/athletetrack/internal/models"
	"github.com/athletetrack/athletetrack/internal/stats"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	stats   *stats.Service
	authCfg auth.Config
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, statsService *stats.Service, authCfg auth.Config, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		stats:   statsService,
		authCfg: authCfg,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Handle("/metrics", promhttp.Handler())

	// Public auth endpoints
	s.router.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.authCfg))
			r.Put("/profile", s.handleUpdateProfile)
		})
	})

	// Athlete endpoints
	s.router.Route("/api/v1/athlete", func(r chi.Router) {
		r.Use(auth.Middleware(s.authCfg))
		r.Use(auth.RequireRole(models.RoleAthlete))

		r.Get("/exercises", s.handleAthleteExercises)
		r.Get("/workouts", s.handleAthleteWorkouts)
		r.Post("/workouts", s.handleLogWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteOwnWorkout)
		r.Get("/dashboard-stats", s.handleAthleteDashboard)
	})

	// Admin endpoints
	s.router.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(auth.Middleware(s.authCfg))
		r.Use(auth.RequireRole(models.RoleAdmin))

		r.Get("/exercises", s.handleAdminExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Put("/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/exercises/{id}", s.handleDeleteExercise)
		r.Patch("/exercises/{id}/restore", s.handleRestoreExercise)
		r.Get("/athletes", s.handleListAthletes)
		r.Get("/workouts", s.handleAllWorkouts)
		r.Delete("/workouts/{id}", s.handleDeleteAnyWorkout)
		r.Get("/dashboard-stats", s.handleAdminDashboard)
	})
}
