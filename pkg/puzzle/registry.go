// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package puzzle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/afero"
)

// Solver answers the two parts of one puzzle.
//
// Implementations are built once from their input and may be asked for
// either part any number of times.
type Solver interface {
	// Solve computes the answer to part as a decimal string.
	Solve(ctx context.Context, part Part) (string, error)
}

// Factory builds a Solver from a puzzle input.
type Factory func(r io.Reader) (Solver, error)

// Registry maps puzzle days to their solver factories.
//
// A Registry is populated at startup and read afterwards; it is not safe
// for concurrent Register calls.
type Registry struct {
	factories map[int]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[int]Factory)}
}

// Register binds a factory to a day, replacing any previous binding.
func (r *Registry) Register(day int, f Factory) {
	r.factories[day] = f
}

// Days returns the registered days in ascending order.
func (r *Registry) Days() []int {
	days := make([]int, 0, len(r.factories))
	for day := range r.factories {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// FromReader builds the solver registered for day from rd.
func (r *Registry) FromReader(day int, rd io.Reader) (Solver, error) {
	f, ok := r.factories[day]
	if !ok {
		return nil, fmt.Errorf("%w: day %d", ErrUnimplementedDay, day)
	}
	return f(rd)
}

// FromFile opens path on fsys and builds the solver registered for day.
//
// The day is checked before the file is opened, so an unknown day is
// reported even when the input does not exist.
func (r *Registry) FromFile(fsys afero.Fs, path string, day int) (Solver, error) {
	if _, ok := r.factories[day]; !ok {
		return nil, fmt.Errorf("%w: day %d", ErrUnimplementedDay, day)
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file '%s': %w", path, err)
	}
	defer f.Close()

	return r.FromReader(day, bufio.NewReader(f))
}
