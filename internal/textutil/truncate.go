// Package textutil provides terminal display-width helpers for table output.
package textutil

import (
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Truncate returns the longest prefix of s that occupies at most maxWidth
// terminal cells when printed. East Asian wide characters count as two
// cells, combining characters as zero. A non-positive maxWidth yields an
// empty string.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// Width reports the number of terminal cells s occupies when printed.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// TerminalWidth returns the column count of the terminal attached to
// stdout, or 0 when stdout is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 0 {
		return 0
	}
	return w
}
