// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/gitsync"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/note"
	"github.com/starford/ansuz/internal/storage"
)

// SetupLogger installs the structured JSON logger. Logs go to stderr; stdout
// carries result JSON and the MCP transport.
func SetupLogger(cfg *Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// NewBuilder constructs the note builder from configuration.
func NewBuilder(cfg *Config) *note.Builder {
	return note.NewBuilder(note.Config{
		RepoPath:        cfg.Notes.RepoPath,
		MaxExcerptLines: cfg.Notes.MaxExcerptLines,
		Timezone:        cfg.Notes.Timezone,
	})
}

// NewSyncer constructs the git sync orchestrator from configuration.
func NewSyncer(cfg *Config) *gitsync.Syncer {
	return gitsync.NewSyncer(gitsync.Config{
		RepoPath:    cfg.Notes.RepoPath,
		Remote:      cfg.Git.Remote,
		Branch:      cfg.Git.Branch,
		AuthorName:  cfg.Git.AuthorName,
		AuthorEmail: cfg.Git.AuthorEmail,
	})
}

// Run starts the MCP serve mode with the given options and blocks until the
// transport closes or a shutdown signal arrives.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config
	logger := SetupLogger(cfg)

	// Serve mode needs a configured repository up front: read tools walk it.
	if cfg.Notes.RepoPath == "" {
		return fmt.Errorf("%w: notes.repo_path must be configured for serve mode", apperr.ErrConfig)
	}
	store, err := storage.NewFS(cfg.Notes.RepoPath)
	if err != nil {
		return err
	}

	logger.Info("Configuration loaded",
		slog.String("repo_path", cfg.Notes.RepoPath),
		slog.String("remote", cfg.Git.Remote),
		slog.String("log_level", cfg.App.LogLevel.String()))

	srv := mcpserver.New(NewBuilder(cfg), NewSyncer(cfg), store)
	stdio := server.NewStdioServer(srv.MCPServer())

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(serveCtx)

	// Serve MCP over stdio.
	g.Go(func() error {
		logger.Info("MCP server starting on stdio")
		if err := stdio.Listen(gCtx, os.Stdin, os.Stdout); err != nil && gCtx.Err() == nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
