// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux styles terminal output for the aoc command line.
//
// Styling is applied only when the writer is a terminal. Anything piped or
// redirected is written as plain text, so answers and tree listings stay
// machine readable.
package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/aoc/services/fstree"
)

// Palette: deep ocean teals and arctic waters.
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // directories
	ColorSlate       = lipgloss.Color("#2C4A54") // muted text
	ColorWarning     = lipgloss.Color("#F4D03F")
	ColorError       = lipgloss.Color("#E74C3C")
)

// Icon is a status marker printed before a message.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
)

// Theme renders styled text for one writer.
type Theme struct {
	plain bool

	Directory lipgloss.Style
	File      lipgloss.Style
	Size      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// NewTheme returns a Theme for w. It is plain unless w is a terminal.
func NewTheme(w io.Writer) *Theme {
	return newTheme(lipgloss.NewRenderer(w), !isTerminal(w))
}

func newTheme(r *lipgloss.Renderer, plain bool) *Theme {
	return &Theme{
		plain:     plain,
		Directory: r.NewStyle().Bold(true).Foreground(ColorTealPrimary),
		File:      r.NewStyle(),
		Size:      r.NewStyle().Foreground(ColorSlate),
		Success:   r.NewStyle().Foreground(ColorTealBright),
		Warning:   r.NewStyle().Foreground(ColorWarning),
		Error:     r.NewStyle().Foreground(ColorError),
	}
}

// Plain reports whether the theme writes unstyled text.
func (t *Theme) Plain() bool {
	return t.plain
}

func (t *Theme) render(s lipgloss.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Render(text)
}

// TreeStyle styles directory names and file sizes in a tree listing.
func (t *Theme) TreeStyle() fstree.Style {
	if t.plain {
		return fstree.Style{}
	}
	return fstree.Style{
		Directory: func(s string) string { return t.Directory.Render(s) },
		File:      func(s string) string { return t.File.Render(s) },
		Size:      func(s string) string { return t.Size.Render(s) },
	}
}

// Status writes text preceded by icon.
func (t *Theme) Status(w io.Writer, icon Icon, text string) {
	var s lipgloss.Style
	switch icon {
	case IconSuccess:
		s = t.Success
	case IconWarning:
		s = t.Warning
	case IconError:
		s = t.Error
	}
	fmt.Fprintf(w, "%s %s\n", t.render(s, string(icon)), text)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
