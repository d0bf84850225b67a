// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package puzzle defines the contract shared by every puzzle solver.
//
// A solver is built from an input source (see Registry.FromReader and
// Registry.FromFile) and answers one of two puzzle parts as a decimal
// string. Solvers report failures by wrapping one of the sentinel errors
// below, so callers can classify any failure with errors.Is regardless of
// which day produced it.
package puzzle

import "errors"

// Sentinel errors shared by all solvers.
var (
	// ErrInvalidInput is returned when the puzzle input is malformed:
	// unknown commands, missing arguments, or lines of the wrong shape.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNavigation is returned when a replayed command cannot move to or
	// act on the requested location (no working directory, no such
	// directory, or moving above the root).
	ErrNavigation = errors.New("navigation error")

	// ErrDiskState is returned when the reconstructed disk is inconsistent
	// with the query, such as used space exceeding capacity.
	ErrDiskState = errors.New("inconsistent disk state")

	// ErrNoSolution is returned when a query matches nothing.
	ErrNoSolution = errors.New("no solution found")

	// ErrUnimplementedDay is returned when no solver is registered for a day.
	ErrUnimplementedDay = errors.New("unimplemented day")

	// ErrEmptyInput is returned when the input contains nothing to solve.
	ErrEmptyInput = errors.New("empty input")
)
