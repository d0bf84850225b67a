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
	"fmt"
	"math/big"
)

// Cursor tracks the working directory as the chain of directories from the
// root down to it. The back of the chain is the working directory.
//
// A new cursor is empty: it has no working directory until ResetToRoot.
type Cursor struct {
	tree *Tree
	path []NodeID
}

// NewCursor creates an empty cursor over t.
func NewCursor(t *Tree) *Cursor {
	return &Cursor{tree: t}
}

// Tree returns the tree the cursor moves over.
func (c *Cursor) Tree() *Tree {
	return c.tree
}

// Root returns the root directory's ID.
func (c *Cursor) Root() NodeID {
	return c.tree.Root()
}

// ResetToRoot discards the current path and makes the root the working
// directory. Calling it repeatedly has the same effect as calling it once.
func (c *Cursor) ResetToRoot() {
	c.path = append(c.path[:0], RootID)
}

// GoTo pushes id as the new working directory. The caller guarantees id is
// a directory below the current working directory.
func (c *Cursor) GoTo(id NodeID) {
	c.path = append(c.path, id)
}

// MoveBack pops the working directory and returns it.
// The cursor may be left empty, for example after popping the root.
func (c *Cursor) MoveBack() (NodeID, error) {
	if len(c.path) == 0 {
		return 0, ErrNoWorkingDirectory
	}
	top := c.path[len(c.path)-1]
	c.path = c.path[:len(c.path)-1]
	return top, nil
}

// WorkingDirectory returns the current directory, or false when empty.
func (c *Cursor) WorkingDirectory() (NodeID, bool) {
	if len(c.path) == 0 {
		return 0, false
	}
	return c.path[len(c.path)-1], true
}

// Depth returns the number of directories on the path, root included.
func (c *Cursor) Depth() int {
	return len(c.path)
}

// Path returns a copy of the directory chain, root first.
func (c *Cursor) Path() []NodeID {
	out := make([]NodeID, len(c.path))
	copy(out, c.path)
	return out
}

// ChildDirectory resolves name among the working directory's direct
// children. Only directories match, by exact name; the first match in
// attachment order wins.
func (c *Cursor) ChildDirectory(name string) (NodeID, error) {
	wd, ok := c.WorkingDirectory()
	if !ok {
		return 0, ErrNoWorkingDirectory
	}
	for _, child := range c.tree.nodes[wd].children {
		if c.tree.IsDir(child) && c.tree.Name(child) == name {
			return child, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoSuchDirectory, name)
}

// Predicate selects nodes during a tree browse.
type Predicate func(t *Tree, id NodeID) bool

// BrowseFromRoot returns the root followed by all of its descendants in
// pre-order, keeping only the nodes for which pred holds.
func (c *Cursor) BrowseFromRoot(pred Predicate) []NodeID {
	var out []NodeID
	candidates := append([]NodeID{RootID}, c.tree.Successors(RootID)...)
	for _, id := range candidates {
		if pred(c.tree, id) {
			out = append(out, id)
		}
	}
	return out
}

// IsDirectory matches directories.
func IsDirectory(t *Tree, id NodeID) bool {
	return t.IsDir(id)
}

// SizeBelow matches nodes whose size is strictly less than limit.
func SizeBelow(limit *big.Int) Predicate {
	return func(t *Tree, id NodeID) bool {
		return t.Size(id).Cmp(limit) < 0
	}
}

// SizeAtLeast matches nodes whose size is greater than or equal to threshold.
func SizeAtLeast(threshold *big.Int) Predicate {
	return func(t *Tree, id NodeID) bool {
		return t.Size(id).Cmp(threshold) >= 0
	}
}

// All matches nodes satisfying every predicate, evaluated left to right.
func All(preds ...Predicate) Predicate {
	return func(t *Tree, id NodeID) bool {
		for _, p := range preds {
			if !p(t, id) {
				return false
			}
		}
		return true
	}
}
