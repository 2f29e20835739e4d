// Command memory plays and inspects memory card games in the terminal.
//
// Subcommands:
//  1. "play" – starts a session and reads "x1 y1 x2 y2" attempts from stdin
//  2. "configs" – lists the board presets found in the config directory
//  3. "validate" – checks preset files and exits non-zero if any is invalid
//  4. "analyze" – deals many boards per preset and reports layout statistics
//
// Settings come from the environment (MEMORY_*), optionally loaded from a
// .env file, and can be overridden with flags.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/memory-game/game/config"
	"github.com/wricardo/memory-game/game/service"
	"github.com/wricardo/memory-game/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "memory"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newCommand(settings).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCommand builds the command tree with flag defaults taken from settings
func newCommand(settings config.Settings) *cli.Command {
	return &cli.Command{
		Name:    AppName,
		Usage:   "play the memory card game",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-dir",
				Value: settings.ConfigDir,
				Usage: "directory containing board presets",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Value: settings.Debug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			playCommand(settings),
			configsCommand(),
			validateCommand(),
			analyzeCommand(),
		},
	}
}

// app bundles the services shared by subcommands
type app struct {
	logger   *zap.Logger
	configs  *config.Manager
	sessions *session.Manager
	games    service.GameService
}

// newApp wires the config manager, session manager and game service
func newApp(cmd *cli.Command, defaultConfig string) (*app, error) {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	configs, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return nil, err
	}
	if defaultConfig != "" {
		if err := configs.SetDefault(defaultConfig); err != nil {
			logger.Warn("default preset unavailable, using fallback",
				zap.String("config", defaultConfig),
				zap.String("fallback", configs.GetDefault().Name),
				zap.Error(err),
			)
		}
	}

	sessions := session.NewManager(logger)
	return &app{
		logger:   logger,
		configs:  configs,
		sessions: sessions,
		games:    service.NewGameService(sessions, configs, logger),
	}, nil
}

// newLogger returns a console logger on stderr; warnings only unless debug is set
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
