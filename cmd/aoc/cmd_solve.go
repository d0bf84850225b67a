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
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/AleutianAI/aoc/pkg/telemetry"
	"github.com/AleutianAI/aoc/pkg/ux"
	"github.com/AleutianAI/aoc/services/nospace"
)

type solveFlags struct {
	inputFlags
	day   int
	part  string
	watch bool
}

func (c *cli) solveCommand() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Print the answers for one day",
		Example: `  aoc solve --day 7 --part one
  aoc solve --day 7 --example
  aoc solve --day 7 --input ./my_input.txt
  aoc solve --day 7 --example --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSolve(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.day, "day", nospace.Day, "Puzzle day")
	cmd.Flags().StringVar(&f.part, "part", "all", "Part to solve: one, two, or all")
	cmd.Flags().BoolVar(&f.watch, "watch", false,
		"Keep running and solve again whenever the input file changes")
	f.inputFlags.register(cmd)
	return cmd
}

// parseParts accepts a single part name or "all".
func parseParts(s string) ([]puzzle.Part, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return puzzle.Parts, nil
	}
	p, err := puzzle.ParsePart(s)
	if err != nil {
		return nil, err
	}
	return []puzzle.Part{p}, nil
}

func (c *cli) runSolve(cmd *cobra.Command, f solveFlags) error {
	parts, err := parseParts(f.part)
	if err != nil {
		return err
	}
	path, err := f.path(c.cfg.DataDir, f.day)
	if err != nil {
		return err
	}

	if !f.watch {
		return c.solveOnce(cmd.Context(), f.day, parts, path)
	}

	// In watch mode a failed solve is reported and the next change retried.
	w, err := newInputWatcher(path)
	if err != nil {
		return err
	}
	theme := ux.NewTheme(c.stderr)
	solve := func() {
		if err := c.solveOnce(cmd.Context(), f.day, parts, path); err != nil {
			theme.Status(c.stderr, ux.IconError, err.Error())
		}
	}

	solve()
	c.logger.Info("watching for changes", "input", path)
	return w.Run(cmd.Context(), watchDebounce, solve)
}

// solveOnce solves parts concurrently. Answers are printed in part order,
// and only once every part has succeeded.
func (c *cli) solveOnce(ctx context.Context, day int, parts []puzzle.Part, path string) error {
	ctx, span := telemetry.StartSpan(ctx, tracerName, "aoc.solve",
		trace.WithAttributes(
			attribute.Int("day", day),
			attribute.Int("parts", len(parts)),
			attribute.String("run_id", c.runID),
		),
	)
	defer span.End()

	logger := c.logger.With("day", day)
	logger.Info("solving", "parts", len(parts), "input", path)

	solver, err := c.puzzles.FromFile(c.fsys, path, day)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	answers := make([]string, len(parts))
	g, gctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			start := time.Now()
			answer, err := solver.Solve(gctx, part)
			c.runMetrics.RecordSolve(gctx, day, part.String(), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("day %d part %s: %w", day, part, err)
			}
			answers[i] = answer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	telemetry.SetSpanOK(span)

	for _, answer := range answers {
		fmt.Fprintln(c.stdout, answer)
	}
	return nil
}
