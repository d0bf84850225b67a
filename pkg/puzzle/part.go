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
	"fmt"
	"strings"
)

// Part selects which of the two puzzle questions to answer.
type Part int

const (
	// PartOne is the first question of a puzzle.
	PartOne Part = iota + 1

	// PartTwo is the second question of a puzzle.
	PartTwo
)

// Parts lists every part in answer order.
var Parts = []Part{PartOne, PartTwo}

// String returns "one", "two", or "unknown".
func (p Part) String() string {
	switch p {
	case PartOne:
		return "one"
	case PartTwo:
		return "two"
	default:
		return "unknown"
	}
}

// ParsePart accepts "one"/"two" and "1"/"2", case-insensitively.
func ParsePart(s string) (Part, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "one", "1":
		return PartOne, nil
	case "two", "2":
		return PartTwo, nil
	default:
		return 0, fmt.Errorf("unknown puzzle part %q (want one or two)", s)
	}
}

// Set implements pflag.Value so a Part can be bound to a command flag.
func (p *Part) Set(s string) error {
	parsed, err := ParsePart(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Type implements pflag.Value.
func (p *Part) Type() string {
	return "part"
}
