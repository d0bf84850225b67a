// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package nospace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/AleutianAI/aoc/pkg/telemetry"
	"github.com/AleutianAI/aoc/services/fstree"
	"github.com/AleutianAI/aoc/services/transcript"
)

// Day is the puzzle day this package solves.
const Day = 7

// Solver answers both parts for one transcript.
//
// The transcript is parsed once by New. Every Solve or Tree call replays
// it into a fresh tree, so a Solver can be used from several goroutines.
type Solver struct {
	commands []transcript.Command
	disk     Disk
	logger   *slog.Logger
	metrics  *Metrics
}

// Option configures a Solver.
type Option func(*Solver)

// WithDisk overrides DefaultDisk.
func WithDisk(d Disk) Option {
	return func(s *Solver) {
		s.disk = d
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records replays and queries into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Solver) {
		s.metrics = m
	}
}

// New parses the transcript read from r.
func New(r io.Reader, opts ...Option) (*Solver, error) {
	cmds, err := transcript.Parse(r)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		commands: cmds,
		disk:     DefaultDisk(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Factory adapts New to puzzle.Factory so the solver can be registered.
func Factory(opts ...Option) puzzle.Factory {
	return func(r io.Reader) (puzzle.Solver, error) {
		return New(r, opts...)
	}
}

// Commands returns the number of parsed commands.
func (s *Solver) Commands() int {
	return len(s.commands)
}

// Tree replays the transcript and returns the reconstructed tree.
func (s *Solver) Tree(ctx context.Context) (*fstree.Tree, error) {
	start := time.Now()
	tree, stats, err := Replay(ctx, s.commands)
	elapsed := time.Since(start)
	s.metrics.recordReplay(stats, elapsed, err)

	if err != nil {
		s.logger.Debug("replay failed", "commands", len(s.commands), "error", err)
		return nil, err
	}

	s.logger.Debug("replay complete",
		"commands", len(s.commands),
		"nodes", tree.Len(),
		"files", stats.Files,
		"directories", stats.Directories,
		"duration", elapsed,
	)
	return tree, nil
}

// Solve implements puzzle.Solver.
func (s *Solver) Solve(ctx context.Context, part puzzle.Part) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "nospace.Solver.Solve",
		trace.WithAttributes(attribute.String("part", part.String())),
	)
	defer span.End()

	answer, err := s.solve(ctx, part)
	s.metrics.recordQuery(part.String(), err)
	if err != nil {
		telemetry.RecordError(span, err)
		return "", err
	}
	telemetry.SetSpanOK(span)

	s.logger.Info("part solved", "day", Day, "part", part.String(), "answer", answer.String())
	return answer.String(), nil
}

func (s *Solver) solve(ctx context.Context, part puzzle.Part) (*big.Int, error) {
	switch part {
	case puzzle.PartOne, puzzle.PartTwo:
	default:
		return nil, fmt.Errorf("unsupported part %d", int(part))
	}

	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}

	if part == puzzle.PartOne {
		return SmallDirectoriesTotal(tree, s.disk.SmallDirLimit)
	}
	return SmallestDeletable(tree, s.disk)
}
