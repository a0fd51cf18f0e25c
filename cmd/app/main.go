package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	"github.com/starford/ansuz/internal/handlers"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func summarize(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	internal.SetupLogger(cfg)

	builder := internal.NewBuilder(cfg)
	if err := handlers.Summarize(ctx, builder, os.Stdin, os.Stdout, cmd.String("input")); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func sync(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	internal.SetupLogger(cfg)

	syncer := internal.NewSyncer(cfg)
	if err := handlers.Sync(ctx, syncer, os.Stdin, os.Stdout, cmd.String("input")); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func main() {
	inputFlag := &cli.StringFlag{
		Name:    "input",
		Aliases: []string{"i"},
		Usage:   "Path to input JSON. If omitted, read from stdin.",
	}

	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Notes summarizer and git sync skills for agent runtimes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("ANSUZ_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "summarize",
				Usage:  "Summarize raw text into a structured Markdown note",
				Flags:  []cli.Flag{inputFlag},
				Action: summarize,
			},
			{
				Name:   "sync",
				Usage:  "Sync the notes git repo with pull/add/commit/push",
				Flags:  []cli.Flag{inputFlag},
				Action: sync,
			},
			{
				Name:   "serve",
				Usage:  "Expose both skills as MCP tools over stdio",
				Action: serve,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
