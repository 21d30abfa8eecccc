package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"snapadmin/internal/snapcast"
)

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update EPISODE FIELD VALUE",
		Short: "Update episode info on the remote host",
		Long: fmt.Sprintf(`Update one field of an episode.

FIELD must be one of:
  %s

media_duration accepts [[HH:]MM:]SS and is stored as seconds. pub_date
accepts a local "YYYY-MM-DD[ HH:MM]" timestamp and is stored in UTC.`,
			strings.Join(snapcast.DatabaseFields, ", ")),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, field, value := args[0], args[1], args[2]

			if !snapcast.IsDatabaseField(field) {
				return fmt.Errorf("%q is not an updatable field (one of: %s)",
					field, strings.Join(snapcast.DatabaseFields, ", "))
			}
			converted, err := snapcast.ConvertFieldValue(field, value)
			if err != nil {
				return err
			}

			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			episode, err := client.GetEpisode(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if err := client.UpdateEpisode(cmd.Context(), episode, field, converted); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of episode %d (%s)\n", field, episode.ID, episode.UUID)
			return nil
		},
	}
	return cmd
}
