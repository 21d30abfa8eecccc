package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"

	"snapadmin/internal/snapcast"
)

func formatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

var foldCaser = cases.Fold()

// titleContains reports whether the episode title contains find under
// Unicode case folding.
func titleContains(title, find string) bool {
	return strings.Contains(foldCaser.String(title), foldCaser.String(find))
}

func filterEpisodes(episodes []snapcast.Episode, find string) []snapcast.Episode {
	filtered := episodes[:0:0]
	for _, ep := range episodes {
		if titleContains(ep.Title, find) {
			filtered = append(filtered, ep)
		}
	}
	return filtered
}

// confirm prompts before a destructive operation. When stdin is not an
// interactive terminal the prompt cannot be answered, so the caller must
// pass --yes instead.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	in := cmd.InOrStdin()
	if in == os.Stdin && !stdinIsTerminal() {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to confirm")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
