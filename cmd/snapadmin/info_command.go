package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"snapadmin/internal/snapcast"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "info EPISODE",
		Short: "Fetch information about an episode",
		Long: `Fetch every stored field of one episode.

EPISODE is an integer episode number, a UUID, or -1 for the latest
episode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			episode, err := client.GetEpisode(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, episode)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEpisodeInfo(episode))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the episode as JSON")
	return cmd
}

func renderEpisodeInfo(episode *snapcast.Episode) string {
	rows := []table.Row{
		{"id", episode.ID},
		{"uuid", episode.UUID},
		{"podcast_uuid", episode.PodcastUUID},
	}
	for _, field := range snapcast.DatabaseFields {
		rows = append(rows, table.Row{field, episode.FieldValue(field)})
	}
	return renderRounded(table.Row{"Field", "Value"}, rows)
}
