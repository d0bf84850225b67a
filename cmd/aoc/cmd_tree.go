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
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/aoc/pkg/ux"
	"github.com/AleutianAI/aoc/services/fstree"
	"github.com/AleutianAI/aoc/services/nospace"
)

// treeBuilder is implemented by solvers that reconstruct a filesystem.
type treeBuilder interface {
	Tree(ctx context.Context) (*fstree.Tree, error)
}

func (c *cli) treeCommand() *cobra.Command {
	var f inputFlags
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the directory tree rebuilt from a day 7 transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTree(cmd, f)
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) runTree(cmd *cobra.Command, f inputFlags) error {
	path, err := f.path(c.cfg.DataDir, nospace.Day)
	if err != nil {
		return err
	}

	solver, err := c.puzzles.FromFile(c.fsys, path, nospace.Day)
	if err != nil {
		return err
	}
	tb, ok := solver.(treeBuilder)
	if !ok {
		return fmt.Errorf("day %d has no tree view", nospace.Day)
	}

	tree, err := tb.Tree(cmd.Context())
	if err != nil {
		return err
	}

	// Rendered in full before anything reaches stdout.
	var buf bytes.Buffer
	if err := tree.RenderStyled(&buf, ux.NewTheme(c.stdout).TreeStyle()); err != nil {
		return err
	}
	_, err = buf.WriteTo(c.stdout)
	return err
}
