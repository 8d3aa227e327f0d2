package mcp

import (
	"log/slog"

	"github.com/athletetrack/athletetrack/internal/stats"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(db *storage.DB, statsService *stats.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("AthleteTrack", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("AthleteTrack fitness data server. Query workout history, the exercise catalog, athlete accounts, and dashboard statistics aggregated over today/week/month/year/all timeframes."),
	)

	h := &handlers{db: db, stats: statsService, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetDashboardStats, Handler: h.getDashboardStats},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolListAthletes, Handler: h.listAthletes},
		server.ServerTool{Tool: toolGetAthleteSummary, Handler: h.getAthleteSummary},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	db    *storage.DB
	stats *stats.Service
	log   *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"athletetrack://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All active exercises with their calories-per-minute rates"),
	mcp.WithMIMEType("application/json"),
)
