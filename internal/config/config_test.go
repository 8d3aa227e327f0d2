package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "athletetrack"
  user: "athletetrack"
  password: "secret"
  sslmode: "disable"
auth:
  jwt_secret: "test-secret-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "athletetrack" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "athletetrack")
	}
	if cfg.Auth.JWTSecret != "test-secret-123" {
		t.Errorf("auth.jwt_secret = %q, want %q", cfg.Auth.JWTSecret, "test-secret-123")
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = true, want false by default")
	}
}

// TestTokenTTLDefault verifies the 7-day default and the explicit override.
func TestTokenTTLDefault(t *testing.T) {
	a := AuthConfig{}
	if got := a.TokenTTL(); got != 7*24*time.Hour {
		t.Errorf("default TokenTTL = %v, want 168h", got)
	}
	a.TokenTTLHours = 24
	if got := a.TokenTTL(); got != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", got)
	}
}

// TestEnvOverride verifies that ATHLETETRACK_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("ATHLETETRACK_SERVER_PORT", "9999")
	t.Setenv("ATHLETETRACK_DB_PASSWORD", "override")
	t.Setenv("ATHLETETRACK_AUTH_JWT_SECRET", "env-secret")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Database.Password != "override" {
		t.Errorf("database.password = %q, want %q", cfg.Database.Password, "override")
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("auth.jwt_secret = %q, want %q", cfg.Auth.JWTSecret, "env-secret")
	}
}

// TestValidation verifies that required fields are enforced.
func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing server port",
			yaml: `
database: {host: h, port: 5432, name: n, user: u}
auth: {jwt_secret: s}
`,
		},
		{
			name: "missing database host",
			yaml: `
server: {port: 8080}
database: {port: 5432, name: n, user: u}
auth: {jwt_secret: s}
`,
		},
		{
			name: "missing jwt secret",
			yaml: `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
`,
		},
		{
			name: "tailscale enabled without hostname",
			yaml: `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
auth: {jwt_secret: s}
tailscale: {enabled: true}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestDSN verifies the connection string format and the sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "at", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/at?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
