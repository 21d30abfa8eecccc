package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"snapadmin/internal/download"
	"snapadmin/internal/storage"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download EPISODE",
		Short: "Download an episode's media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.apiClient()
			if err != nil {
				return err
			}
			episode, err := client.GetEpisode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if episode.MediaURL == "" {
				return fmt.Errorf("episode %d has no media URL", episode.ID)
			}

			dest := output
			if dest == "" {
				name, err := storage.ObjectNameFromURL(episode.MediaURL)
				if err != nil {
					return err
				}
				dest = name
			}

			// Media files are large; the API request timeout would cut
			// the transfer short. Cancellation still flows through the
			// command context.
			httpClient := &http.Client{Timeout: 0}

			if err := download.Fetch(cmd.Context(), httpClient, episode.MediaURL, dest, downloadProgress(dest)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (defaults to the media file name)")
	return cmd
}

// downloadProgress returns a progress factory that renders a byte bar on
// stderr, or nothing when stderr is not a terminal.
func downloadProgress(dest string) download.ProgressFunc {
	return func(total int64) io.Writer {
		if !stderrIsTerminal() {
			return nil
		}
		return progressbar.NewOptions64(total,
			progressbar.OptionSetDescription(filepath.Base(dest)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
}
