// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/AleutianAI/aoc/cmd/aoc/config"
	"github.com/AleutianAI/aoc/pkg/logging"
	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/AleutianAI/aoc/pkg/telemetry"
	"github.com/AleutianAI/aoc/services/nospace"
)

const (
	tracerName = "aoc.cli"

	// finishTimeout bounds telemetry flushing and the metrics push at exit.
	finishTimeout = 5 * time.Second
)

// cli holds the flags and the per-run state built by setup.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	fsys   afero.Fs

	// --- Global flags ---
	configPath string
	logLevel   string
	logJSON    bool

	// --- Built by setup ---
	cfg        config.Config
	baseLogger *logging.Logger
	logger     *logging.Logger
	runID      string
	registry   *prometheus.Registry
	runMetrics *telemetry.RunMetrics
	puzzles    *puzzle.Registry
	shutdown   func(context.Context) error
}

func newCLI(stdout, stderr io.Writer) *cli {
	return &cli{
		stdout: stdout,
		stderr: stderr,
		fsys:   afero.NewOsFs(),
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "aoc",
		Short: "Solve Advent of Code puzzles",
		Long: `aoc reads a puzzle input from the data directory and prints the
answer to each requested part on stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath,
		"Path to the YAML configuration file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "",
		"Log level: debug, info, warn, or error (overrides the config file)")
	root.PersistentFlags().BoolVar(&c.logJSON, "log-json", false,
		"Write logs to stderr as JSON")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.daysCommand())
	root.AddCommand(c.configCommand())
	return root
}

// setup loads the configuration and builds the logger, telemetry, and the
// puzzle registry shared by every subcommand.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cmd.Flags().Changed("config") {
		c.cfg, err = config.LoadFile(c.fsys, c.configPath)
	} else {
		c.cfg, err = config.Load(c.fsys, c.configPath)
	}
	if err != nil {
		return err
	}

	levelName := c.cfg.Logging.Level
	if c.logLevel != "" {
		levelName = c.logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	c.runID = uuid.NewString()
	c.baseLogger = logging.New(logging.Config{
		Level:    level,
		LogDir:   c.cfg.Logging.LogDir,
		Service:  "aoc",
		JSON:     c.cfg.Logging.JSON || c.logJSON,
		AutoJSON: true,
		Output:   c.stderr,
	})
	c.logger = c.baseLogger.With("run_id", c.runID)

	c.registry = prometheus.NewRegistry()
	tcfg := telemetry.DefaultConfig()
	tcfg.TraceExporter = c.cfg.Telemetry.TraceExporter
	tcfg.MetricExporter = c.cfg.Telemetry.MetricExporter
	tcfg.OTLPEndpoint = c.cfg.Telemetry.OTLPEndpoint
	tcfg.Output = c.stderr
	tcfg.Registerer = c.registry

	c.shutdown, err = telemetry.Init(cmd.Context(), tcfg)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	c.runMetrics, err = telemetry.NewRunMetrics(otel.Meter(tracerName))
	if err != nil {
		return err
	}

	disk, err := c.cfg.Disk.Disk()
	if err != nil {
		return err
	}

	c.puzzles = puzzle.NewRegistry()
	c.puzzles.Register(nospace.Day, nospace.Factory(
		nospace.WithDisk(disk),
		nospace.WithLogger(c.logger.Slog()),
		nospace.WithMetrics(nospace.NewMetrics(c.registry)),
	))

	c.logger.Debug("configuration loaded",
		"config", c.configPath,
		"data_dir", c.cfg.DataDir,
		"trace_exporter", c.cfg.Telemetry.TraceExporter,
	)
	return nil
}

// finish hands the metrics registry to the configured sinks and flushes
// telemetry. Failures are logged, never returned.
func (c *cli) finish() {
	if c.baseLogger == nil {
		return
	}
	defer c.baseLogger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), finishTimeout)
	defer cancel()

	if path := c.cfg.Telemetry.MetricsTextfile; path != "" {
		if err := telemetry.WriteTextfile(c.registry, path); err != nil {
			c.logger.Warn("metrics textfile not written", "error", err)
		}
	}
	if url := c.cfg.Telemetry.PushgatewayURL; url != "" {
		if err := telemetry.Push(ctx, c.registry, url, c.runID); err != nil {
			c.logger.Warn("metrics push failed", "error", err)
		}
	}

	// The bridged OTel instruments stop reporting once the meter provider
	// is shut down, so the sinks above run first.
	if c.shutdown != nil {
		if err := c.shutdown(ctx); err != nil {
			c.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}
}

// inputFlags are shared by the commands that read a puzzle input.
type inputFlags struct {
	example int
	input   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.example, "example", 0,
		"Read exampleN_dayNN instead of input_dayNN (bare --example means 1)")
	cmd.Flags().Lookup("example").NoOptDefVal = "1"
	cmd.Flags().StringVar(&f.input, "input", "",
		"Read the input from this path instead of the data directory")
	cmd.MarkFlagsMutuallyExclusive("example", "input")
}

// path resolves the input file for day.
func (f *inputFlags) path(dataDir string, day int) (string, error) {
	if f.input != "" {
		return f.input, nil
	}
	if f.example < 0 {
		return "", fmt.Errorf("--example must be positive (got %d)", f.example)
	}
	return puzzle.InputPath(dataDir, day, f.example), nil
}
