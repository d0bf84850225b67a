// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package transcript

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/AleutianAI/aoc/pkg/puzzle"
)

// Prompt starts every command line.
const Prompt = "$"

// maxLineBytes bounds a single transcript line.
const maxLineBytes = 1024 * 1024

// Parse reads a whole transcript.
//
// Lines starting with the prompt open a new command; every other non-blank
// line is output of the most recent command. The first malformed line
// rejects the whole transcript and the error names its line number.
func Parse(r io.Reader) ([]Command, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var commands []Command
	lineNum := 0

	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, Prompt); ok {
			cmd, err := ParseCommand(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			commands = append(commands, cmd)
			continue
		}

		if len(commands) == 0 {
			return nil, fmt.Errorf("line %d: %w: missing outputs' command: %s",
				lineNum, puzzle.ErrInvalidInput, line)
		}
		if err := commands[len(commands)-1].AddOutput(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if len(commands) == 0 {
		return nil, fmt.Errorf("%w: transcript has no commands", puzzle.ErrEmptyInput)
	}

	return commands, nil
}
