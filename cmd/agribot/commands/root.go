// Package commands wires the agribot CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dayti/agribot/internal/bucket"
	"github.com/dayti/agribot/internal/config"
	"github.com/dayti/agribot/internal/game"
	"github.com/dayti/agribot/internal/input/robot"
	"github.com/dayti/agribot/internal/logger"
	"github.com/dayti/agribot/internal/logtail"
	"github.com/dayti/agribot/internal/session"
)

const Version = "1.0.0"

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:           "agribot",
	Short:         "Farming automation for a modded survival server",
	Long:          "agribot drives the game client through simulated input: it harvests, replants and waters a list of farming stations on a schedule, tracks the bucket regime across the daily time windows, and optionally answers chat messages.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "farming_config.json", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// app bundles the wired components every command works with.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	client   game.Client
	machine  *bucket.Machine
	detector *logtail.Detector
	driver   *session.Driver
}

// buildApp loads configuration, initializes logging and assembles the full
// stack over the real input driver.
func buildApp() (*app, error) {
	logger.InitLogger(logger.NewConfig(logLevel, logFormat, "agribot", Version, "production", false))
	log := slog.Default()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	log.Info("configuration loaded", "path", cfgFile, "stations", len(cfg.Stations))

	client := game.NewClient(robot.New(), cfg, log)
	machine := bucket.NewMachine(bucket.NewStore(config.StatePath(cfgFile)), nil, log)
	detector := logtail.NewDetector(cfg.LogPath, logtail.DefaultPatterns(), log)

	return &app{
		cfg:      cfg,
		log:      log,
		client:   client,
		machine:  machine,
		detector: detector,
		driver:   session.NewDriver(cfg, client, machine, detector, log),
	}, nil
}
