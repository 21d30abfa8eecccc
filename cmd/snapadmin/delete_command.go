package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapadmin/internal/storage"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete EPISODE",
		Short: "Delete an episode and its media object",
		Long: `Delete an episode from the host, then remove every version of its
media object from the storage bucket.`,
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

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete episode %d %q and its media?", episode.ID, episode.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			if err := client.DeleteEpisode(cmd.Context(), episode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted episode %d from the host\n", episode.ID)

			if episode.MediaURL == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Episode has no media URL; nothing to purge")
				return nil
			}
			objectName, err := storage.ObjectNameFromURL(episode.MediaURL)
			if err != nil {
				return fmt.Errorf("episode removed from host, but media cleanup failed: %w", err)
			}
			store, err := ctx.objectStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("episode removed from host, but media cleanup failed: %w", err)
			}
			if err := store.DeleteAllVersions(cmd.Context(), objectName); err != nil {
				return fmt.Errorf("episode removed from host, but media cleanup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged all versions of %q from the bucket\n", objectName)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
