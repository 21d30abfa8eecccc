package main

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// renderRounded draws the rounded table every tabular view shares: the
// episode list, the episode field dump, the bucket listing, and the
// redacted config. numericCols are 1-based positions of columns holding
// counts, sizes, or durations; their cells right-align while headers stay
// left-aligned.
func renderRounded(header table.Row, rows []table.Row, numericCols ...int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(header)
	tw.AppendRows(rows)

	if len(numericCols) > 0 {
		configs := make([]table.ColumnConfig, 0, len(numericCols))
		for _, col := range numericCols {
			configs = append(configs, table.ColumnConfig{
				Number:      col,
				Align:       text.AlignRight,
				AlignHeader: text.AlignLeft,
			})
		}
		tw.SetColumnConfigs(configs)
	}

	return tw.Render()
}

// writeJSON prints v indented on the command's stdout. The --json flags
// exist so episode and object data can be piped into scripts, so nothing
// else may share the stream.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
