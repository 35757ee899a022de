package utils

import (
	"os"

	"golang.org/x/term"
)

// ANSI escape sequences used for terminal output.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
	WarnColor    = "\x1b[33m"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Decorate wraps s in the given color when enabled.
func Decorate(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + DefaultColor
}
