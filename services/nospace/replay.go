// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package nospace solves day 7: it replays a cd/ls transcript into a
// directory tree and answers the two disk-usage questions over it.
//
// # Flow
//
//	transcript.Parse -> Replay -> SmallDirectoriesTotal | SmallestDeletable
//
// Replay is sequential and runs to completion or stops at the first failing
// command. The resulting tree is never mutated again, so queries may read it
// freely.
package nospace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/AleutianAI/aoc/pkg/telemetry"
	"github.com/AleutianAI/aoc/services/fstree"
	"github.com/AleutianAI/aoc/services/transcript"
)

const tracerName = "aoc.nospace"

// ReplayStats counts what a replay did.
type ReplayStats struct {
	ChangeDirectories int
	Listings          int
	Files             int
	Directories       int
}

// Replay rebuilds the tree implied by cmds.
//
// # Description
//
// Starts from a tree holding only the root and an empty cursor, then
// executes every command in order. The first failure aborts the replay and
// no tree is returned. The context is checked once before starting; a
// replay in progress is never interrupted.
//
// # Inputs
//
//   - ctx: Carries the tracing span. Must not be nil.
//   - cmds: Parsed commands in transcript order.
//
// # Outputs
//
//   - *fstree.Tree: The reconstructed tree, nil on error.
//   - ReplayStats: Counters for what was executed, partial on error.
//   - error: Wraps puzzle.ErrNavigation for cursor failures, or ctx.Err().
func Replay(ctx context.Context, cmds []transcript.Command) (*fstree.Tree, ReplayStats, error) {
	var stats ReplayStats
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	_, span := telemetry.StartSpan(ctx, tracerName, "nospace.Replay",
		trace.WithAttributes(attribute.Int("commands", len(cmds))),
	)
	defer span.End()

	tree := fstree.New()
	cursor := fstree.NewCursor(tree)

	for i, cmd := range cmds {
		if err := execute(cursor, cmd, &stats); err != nil {
			err = fmt.Errorf("command %d (%s): %w", i+1, cmd, err)
			telemetry.RecordError(span, err)
			return nil, stats, err
		}
	}

	span.SetAttributes(
		attribute.Int("nodes", tree.Len()),
		attribute.Int("files", stats.Files),
		attribute.Int("directories", stats.Directories),
	)
	return tree, stats, nil
}

func execute(c *fstree.Cursor, cmd transcript.Command, stats *ReplayStats) error {
	switch cmd := cmd.(type) {
	case *transcript.ChangeDirectory:
		stats.ChangeDirectories++
		return changeDirectory(c, cmd.Target)
	case *transcript.ListDirectory:
		stats.Listings++
		return listDirectory(c, cmd.Entries, stats)
	default:
		panic(fmt.Sprintf("nospace: unhandled command type %T", cmd))
	}
}

func changeDirectory(c *fstree.Cursor, target string) error {
	switch target {
	case transcript.TargetRoot:
		c.ResetToRoot()
		return nil

	case transcript.TargetParent:
		left, err := c.MoveBack()
		if err != nil {
			return err
		}
		if _, ok := c.WorkingDirectory(); !ok {
			return fmt.Errorf("%w: directory '%s' has no parent",
				puzzle.ErrNavigation, c.Tree().Name(left))
		}
		return nil

	default:
		id, err := c.ChildDirectory(target)
		if err != nil {
			return err
		}
		c.GoTo(id)
		return nil
	}
}

func listDirectory(c *fstree.Cursor, entries []transcript.Entry, stats *ReplayStats) error {
	wd, ok := c.WorkingDirectory()
	if !ok {
		return fstree.ErrNoWorkingDirectory
	}

	tree := c.Tree()
	for _, e := range entries {
		var id fstree.NodeID
		if e.IsDir() {
			id = tree.NewDirectory(e.Name)
			stats.Directories++
		} else {
			id = tree.NewFile(e.Name, e.Size)
			stats.Files++
		}
		// Fresh nodes under a directory from the cursor cannot fail to attach.
		if err := tree.AddChild(wd, id); err != nil {
			return fmt.Errorf("attach '%s': %w", e.Name, err)
		}
	}
	return nil
}
