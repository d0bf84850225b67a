// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package fstree

import (
	"math/big"
	"testing"

	"github.com/AleutianAI/aoc/pkg/puzzle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_StartsEmpty(t *testing.T) {
	c := NewCursor(New())

	_, ok := c.WorkingDirectory()
	assert.False(t, ok)
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, RootID, c.Root())
}

func TestCursor_ResetToRootIsIdempotent(t *testing.T) {
	tree, dirs := exampleTree(t)
	c := NewCursor(tree)

	c.ResetToRoot()
	c.GoTo(dirs["a"])
	c.GoTo(dirs["e"])

	c.ResetToRoot()
	once := c.Path()
	c.ResetToRoot()
	twice := c.Path()

	assert.Equal(t, []NodeID{RootID}, once)
	assert.Equal(t, once, twice)
}

func TestCursor_GoToAndMoveBack(t *testing.T) {
	tree, dirs := exampleTree(t)
	c := NewCursor(tree)
	c.ResetToRoot()
	c.GoTo(dirs["a"])
	c.GoTo(dirs["e"])

	wd, ok := c.WorkingDirectory()
	require.True(t, ok)
	assert.Equal(t, dirs["e"], wd)
	assert.Equal(t, 3, c.Depth())

	popped, err := c.MoveBack()
	require.NoError(t, err)
	assert.Equal(t, dirs["e"], popped)

	wd, ok = c.WorkingDirectory()
	require.True(t, ok)
	assert.Equal(t, dirs["a"], wd)
}

func TestCursor_MoveBackPastRoot(t *testing.T) {
	c := NewCursor(New())
	c.ResetToRoot()

	popped, err := c.MoveBack()
	require.NoError(t, err, "popping the root itself succeeds")
	assert.Equal(t, RootID, popped)

	_, ok := c.WorkingDirectory()
	assert.False(t, ok, "root has no parent to fall back to")

	_, err = c.MoveBack()
	assert.ErrorIs(t, err, ErrNoWorkingDirectory)
	assert.ErrorIs(t, err, puzzle.ErrNavigation)
}

func TestCursor_ChildDirectory(t *testing.T) {
	tree, dirs := exampleTree(t)
	c := NewCursor(tree)

	_, err := c.ChildDirectory("a")
	assert.ErrorIs(t, err, ErrNoWorkingDirectory, "no working directory yet")

	c.ResetToRoot()

	id, err := c.ChildDirectory("a")
	require.NoError(t, err)
	assert.Equal(t, dirs["a"], id)

	_, err = c.ChildDirectory("b.txt")
	assert.ErrorIs(t, err, ErrNoSuchDirectory, "files never match")
	assert.ErrorIs(t, err, puzzle.ErrNavigation)

	_, err = c.ChildDirectory("e")
	assert.ErrorIs(t, err, ErrNoSuchDirectory, "only direct children match")

	_, err = c.ChildDirectory("A")
	assert.ErrorIs(t, err, ErrNoSuchDirectory, "names match exactly")
}

func TestCursor_ChildDirectoryFirstDuplicateWins(t *testing.T) {
	tree := New()
	first := tree.NewDirectory("dup")
	second := tree.NewDirectory("dup")
	require.NoError(t, tree.AddChild(tree.Root(), first))
	require.NoError(t, tree.AddChild(tree.Root(), second))

	c := NewCursor(tree)
	c.ResetToRoot()
	id, err := c.ChildDirectory("dup")
	require.NoError(t, err)
	assert.Equal(t, first, id)
}

func TestCursor_BrowseFromRoot(t *testing.T) {
	tree, dirs := exampleTree(t)
	c := NewCursor(tree)

	all := c.BrowseFromRoot(func(*Tree, NodeID) bool { return true })
	require.Len(t, all, tree.Len())
	assert.Equal(t, RootID, all[0], "root comes first")

	got := c.BrowseFromRoot(IsDirectory)
	assert.Equal(t, []NodeID{RootID, dirs["a"], dirs["e"], dirs["d"]}, got)

	small := c.BrowseFromRoot(All(IsDirectory, SizeBelow(big.NewInt(100000))))
	assert.Equal(t, []NodeID{dirs["a"], dirs["e"]}, small)

	large := c.BrowseFromRoot(All(IsDirectory, SizeAtLeast(big.NewInt(24933642))))
	assert.Equal(t, []NodeID{RootID, dirs["d"]}, large, "threshold is inclusive")

	none := c.BrowseFromRoot(All(IsDirectory, SizeBelow(big.NewInt(0))))
	assert.Empty(t, none)
}

func TestCursor_BrowseIgnoresDetachedNodes(t *testing.T) {
	tree := New()
	tree.NewDirectory("floating")
	c := NewCursor(tree)

	got := c.BrowseFromRoot(IsDirectory)
	assert.Equal(t, []NodeID{RootID}, got)
}
