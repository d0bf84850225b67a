// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fstree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Style decorates the parts of a rendered line. A nil field leaves its
// text unchanged.
type Style struct {
	Directory func(name string) string
	File      func(name string) string
	Size      func(size string) string
}

func (s Style) apply(f func(string) string, text string) string {
	if f == nil {
		return text
	}
	return f(text)
}

// Render writes the tree below the root as an indented listing:
//
//	- / (dir)
//	  - a (dir)
//	    - f (file, size=29116)
//	  - b.txt (file, size=14848514)
//
// Nodes appear in pre-order with two spaces of indentation per level.
func (t *Tree) Render(w io.Writer) error {
	return t.RenderStyled(w, Style{})
}

// RenderStyled is Render with names and sizes passed through style.
func (t *Tree) RenderStyled(w io.Writer, style Style) error {
	bw := bufio.NewWriter(w)
	t.render(bw, style, RootID, 0)
	return bw.Flush()
}

func (t *Tree) render(w *bufio.Writer, style Style, id NodeID, depth int) {
	n := &t.nodes[id]
	indent := strings.Repeat("  ", depth)
	switch n.kind {
	case KindFile:
		fmt.Fprintf(w, "%s- %s (file, size=%s)\n", indent,
			style.apply(style.File, n.name), style.apply(style.Size, n.size.String()))
	case KindDirectory:
		fmt.Fprintf(w, "%s- %s (dir)\n", indent, style.apply(style.Directory, n.name))
		for _, child := range n.children {
			t.render(w, style, child, depth+1)
		}
	}
}
