// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package fstree stores a reconstructed filesystem and a cursor into it.
//
// Nodes live in a flat arena owned by Tree and are addressed by NodeID.
// Directories hold the IDs of their children in the order they were
// attached; the Cursor holds the IDs of the directories from the root down
// to the working directory. No node is referenced by pointer from outside
// the arena, so moving the cursor never aliases tree storage.
//
// # Ownership Model
//
// A node is created detached (NewFile, NewDirectory) and becomes part of
// the tree through exactly one AddChild call. A node can never have two
// parents and the root can never be attached, so the tree is acyclic.
//
// # Thread Safety
//
// Tree and Cursor are NOT safe for concurrent use while being built.
// Once construction is finished the tree is only read (Size, Successors,
// Render) and may be shared between goroutines.
package fstree

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/aoc/pkg/puzzle"
)

// Navigation errors. Both classify as puzzle.ErrNavigation.
var (
	// ErrNoWorkingDirectory is returned when an operation needs a working
	// directory and the cursor is empty.
	ErrNoWorkingDirectory = fmt.Errorf("%w: no working directory", puzzle.ErrNavigation)

	// ErrNoSuchDirectory is returned when the working directory has no
	// child directory with the requested name.
	ErrNoSuchDirectory = fmt.Errorf("%w: no such directory", puzzle.ErrNavigation)
)

// Structural errors returned by AddChild. They indicate misuse of the tree
// API rather than bad input.
var (
	// ErrUnknownNode is returned for an ID that was not allocated by this tree.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotDirectory is returned when attaching a child to a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrAttached is returned when the child already has a parent or is the root.
	ErrAttached = errors.New("node already attached")

	// ErrCycle is returned when attaching a node under one of its own descendants.
	ErrCycle = errors.New("attachment would create a cycle")
)
