package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseFlexTime accepts RFC 3339 timestamps or bare dates.
func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// defaultStart returns the parsed start time, defaulting to 30 days ago.
func defaultStart(startStr string) (time.Time, error) {
	if startStr == "" {
		return time.Now().AddDate(0, 0, -30), nil
	}
	return parseFlexTime(startStr)
}

// optionalAthleteID parses an optional athlete_id argument. Empty means
// platform-wide (uuid.Nil).
func optionalAthleteID(req mcp.CallToolRequest) (uuid.UUID, error) {
	raw := req.GetString("athlete_id", "")
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

// --- Tool definitions ---

var toolGetDashboardStats = mcp.NewTool("get_dashboard_stats",
	mcp.WithDescription("Compute dashboard statistics over the five reporting timeframes (today, week, month, year, all). Each timeframe carries total calories, total minutes, the top calorie-burning workout, the exercise with the most time spent, and a per-exercise breakdown with percentages. Scoped to one athlete when athlete_id is given; otherwise platform-wide with athlete join counts."),
	mcp.WithString("athlete_id", mcp.Description("Athlete UUID. Omit for the platform-wide admin view.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts since a start date, oldest first. Each row includes the exercise name, duration in minutes, calories burned, and when the session took place."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("athlete_id", mcp.Description("Athlete UUID. Omit for all athletes.")),
)

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise catalog with calories-per-minute rates."),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted exercises. Defaults to false.")),
)

var toolListAthletes = mcp.NewTool("list_athletes",
	mcp.WithDescription("List all athlete accounts with name, email, and registration date."),
)

var toolGetAthleteSummary = mcp.NewTool("get_athlete_summary",
	mcp.WithDescription("Fetch one athlete's profile together with their full five-timeframe dashboard statistics."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Athlete UUID.")),
)

// --- Tool handlers ---

func (h *handlers) getDashboardStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := optionalAthleteID(req)
	if err != nil {
		return mcp.NewToolResultError("invalid athlete_id: " + err.Error()), nil
	}

	var dashboard any
	if athleteID == uuid.Nil {
		dashboard, err = h.stats.AdminDashboard(ctx, time.Now())
	} else {
		dashboard, err = h.stats.AthleteDashboard(ctx, athleteID, time.Now())
	}
	if err != nil {
		h.log.Error("mcp get_dashboard_stats", "error", err)
		return mcp.NewToolResultError("computation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(dashboard)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := defaultStart(req.GetString("start", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	athleteID, err := optionalAthleteID(req)
	if err != nil {
		return mcp.NewToolResultError("invalid athlete_id: " + err.Error()), nil
	}

	workouts, err := h.db.WorkoutsSince(ctx, start, athleteID)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeDeleted := req.GetBool("include_deleted", false)

	exercises, err := h.db.ListExercises(ctx, includeDeleted)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAthleteSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}
	athleteID, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid athlete_id: " + err.Error()), nil
	}

	athlete, err := h.db.GetUserByID(ctx, athleteID)
	if err != nil {
		h.log.Error("mcp get_athlete_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	dashboard, err := h.stats.AthleteDashboard(ctx, athleteID, time.Now())
	if err != nil {
		h.log.Error("mcp get_athlete_summary", "error", err)
		return mcp.NewToolResultError("computation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"athlete":   athlete,
		"dashboard": dashboard,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listAthletes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athletes, err := h.db.ListAthletes(ctx)
	if err != nil {
		h.log.Error("mcp list_athletes", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(athletes)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
