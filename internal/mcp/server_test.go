package mcp

import (
	"testing"
	"time"
)

// TestParseFlexTime verifies both accepted date formats and rejection of
// garbage input.
func TestParseFlexTime(t *testing.T) {
	got, err := parseFlexTime("2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != 6 || got.Day() != 15 {
		t.Errorf("parsed = %v, want 2025-06-15", got)
	}

	got, err = parseFlexTime("2025-06-15T10:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("parsed = %v, want 10:30", got)
	}

	if _, err := parseFlexTime("not-a-date"); err == nil {
		t.Error("expected error for invalid date")
	}
}

// TestDefaultStart verifies the 30-day default window.
func TestDefaultStart(t *testing.T) {
	start, err := defaultStart("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	age := time.Since(start)
	if age < 29*24*time.Hour || age > 31*24*time.Hour {
		t.Errorf("default start is %v old, want ~30 days", age)
	}

	start, err = defaultStart("2025-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2025 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2025-01-01", start)
	}
}

// TestToolNames pins the registered tool identifiers clients depend on.
func TestToolNames(t *testing.T) {
	tests := []struct {
		tool string
		got  string
	}{
		{"get_dashboard_stats", toolGetDashboardStats.Name},
		{"get_workouts", toolGetWorkouts.Name},
		{"list_exercises", toolListExercises.Name},
		{"list_athletes", toolListAthletes.Name},
		{"get_athlete_summary", toolGetAthleteSummary.Name},
	}
	for _, tt := range tests {
		if tt.got != tt.tool {
			t.Errorf("tool name = %q, want %q", tt.got, tt.tool)
		}
	}
}
