// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package transcript parses a shell session log of cd and ls commands.
//
// A transcript alternates command lines, prefixed with "$", and output
// lines belonging to the most recent command:
//
//	$ cd /
//	$ ls
//	dir a
//	14848514 b.txt
//
// Parse turns it into an ordered slice of Command values. Command is a
// closed set: every value is either a *ChangeDirectory or a
// *ListDirectory, and consumers are expected to switch over both.
package transcript

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/AleutianAI/aoc/pkg/puzzle"
)

// Command is one parsed transcript command with the output it produced.
type Command interface {
	// AddOutput attaches one output line to the command.
	AddOutput(line string) error

	// String renders the command as it appeared after the prompt.
	String() string

	isCommand()
}

// ChangeDirectory moves the working directory. Target is "/", "..", or
// the name of a child directory.
type ChangeDirectory struct {
	Target string
}

// Targets with a special meaning for cd.
const (
	TargetRoot   = "/"
	TargetParent = ".."
)

func (*ChangeDirectory) isCommand() {}

// String implements Command.
func (c *ChangeDirectory) String() string {
	return "cd " + c.Target
}

// AddOutput always fails: cd never prints anything.
func (c *ChangeDirectory) AddOutput(line string) error {
	return fmt.Errorf("%w: cd %s: command does not produce any output (got '%s')",
		puzzle.ErrInvalidInput, c.Target, line)
}

// Entry is one line of ls output. Size is nil for directories.
type Entry struct {
	Name string
	Size *big.Int
}

// IsDir reports whether the entry names a directory.
func (e Entry) IsDir() bool {
	return e.Size == nil
}

// ListDirectory lists the working directory. Entries keep output order.
type ListDirectory struct {
	Entries []Entry
}

func (*ListDirectory) isCommand() {}

// String implements Command.
func (*ListDirectory) String() string {
	return "ls"
}

// AddOutput parses "dir <name>" or "<size> <name>" and appends the entry.
func (l *ListDirectory) AddOutput(line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return fmt.Errorf("%w: wrong ls output: expected '{[0-9]+|dir} {name}' (got '%s')",
			puzzle.ErrInvalidInput, line)
	}
	head, name := fields[0], fields[1]
	if err := validateName(name); err != nil {
		return err
	}

	if head == "dir" {
		l.Entries = append(l.Entries, Entry{Name: name})
		return nil
	}

	size, ok := parseSize(head)
	if !ok {
		return fmt.Errorf("%w: wrong ls output: file size must be a valid unsigned integer (got '%s')",
			puzzle.ErrInvalidInput, head)
	}
	l.Entries = append(l.Entries, Entry{Name: name, Size: size})
	return nil
}

// ParseCommand parses a command line with the leading "$" already removed.
func ParseCommand(s string) (Command, error) {
	fields := strings.Fields(s)

	switch {
	case len(fields) == 0:
		return nil, fmt.Errorf("%w: missing command", puzzle.ErrInvalidInput)
	case len(fields) == 1 && fields[0] == "ls":
		return &ListDirectory{}, nil
	case len(fields) == 2 && fields[0] == "cd":
		return &ChangeDirectory{Target: fields[1]}, nil
	case len(fields) == 1 && fields[0] == "cd":
		return nil, fmt.Errorf("%w: wrong cd command: missing target directory", puzzle.ErrInvalidInput)
	default:
		return nil, fmt.Errorf("%w: unknown command '%s'", puzzle.ErrInvalidInput, strings.Join(fields, " "))
	}
}

// parseSize accepts decimal digits only, without sign, of any length.
func parseSize(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
	}
	return new(big.Int).SetString(s, 10)
}

func validateName(name string) error {
	switch {
	case name == "." || name == "..":
		return fmt.Errorf("%w: wrong ls output: reserved name '%s'", puzzle.ErrInvalidInput, name)
	case strings.Contains(name, "/"):
		return fmt.Errorf("%w: wrong ls output: name '%s' contains a path separator", puzzle.ErrInvalidInput, name)
	}
	return nil
}
