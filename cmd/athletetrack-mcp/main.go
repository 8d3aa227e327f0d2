// Package main runs the AthleteTrack MCP server over stdio, exposing
// dashboard statistics and workout queries to local MCP clients.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/athletetrack/athletetrack/internal/config"
	"github.com/athletetrack/athletetrack/internal/mcp"
	"github.com/athletetrack/athletetrack/internal/stats"
	"github.com/athletetrack/athletetrack/internal/storage"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("athletetrack-mcp", Version)
		return
	}

	// Log to stderr: stdout is the MCP transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	statsService := stats.NewService(db, db)
	mcpServer := mcp.New(db, statsService, Version, log)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
