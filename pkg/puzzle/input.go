// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package puzzle

import (
	"fmt"
	"path/filepath"
)

// InputPath returns the conventional location of a day's input inside dataDir.
//
// Real inputs live at "<dataDir>/input_dayNN". Examples live at
// "<dataDir>/exampleN_dayNN"; example 0 means the real input.
func InputPath(dataDir string, day, example int) string {
	prefix := "input"
	if example > 0 {
		prefix = fmt.Sprintf("example%d", example)
	}
	return filepath.Join(dataDir, fmt.Sprintf("%s_day%02d", prefix, day))
}
