package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"snapadmin/internal/snapcast"
	"snapadmin/internal/textutil"
)

// Column budget consumed by everything except the title: ID, date,
// duration, and size cells plus table borders and padding.
const listFixedWidth = 44

func newListCommand(ctx *commandContext) *cobra.Command {
	var sortKey string
	var find string
	var jsonOut bool
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print a list of all episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortKey != "pub_date" && sortKey != "id" {
				return fmt.Errorf("--sort must be pub_date or id, got %q", sortKey)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var episodes []snapcast.Episode
			var refreshedAt time.Time
			if cached {
				if !cfg.Cache.Enabled {
					return fmt.Errorf("--cached requires cache.enabled in the configuration")
				}
				store, err := ctx.openCache()
				if err != nil {
					return err
				}
				defer store.Close()
				episodes, refreshedAt, err = store.Episodes(cmd.Context(), cfg.Server.FeedID)
				if err != nil {
					return err
				}
			} else {
				client, err := ctx.apiClient()
				if err != nil {
					return err
				}
				episodes, err = client.ListEpisodes(cmd.Context())
				if err != nil {
					return err
				}
				ctx.refreshCache(cmd.Context(), episodes)
			}

			if find != "" {
				episodes = filterEpisodes(episodes, find)
			}
			sortEpisodes(episodes, sortKey)

			if jsonOut {
				return writeJSON(cmd, episodes)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderEpisodeList(episodes))
			if cached {
				fmt.Fprintf(cmd.ErrOrStderr(), "cached %s\n", refreshedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortKey, "sort", "pub_date", "Sort results by pub_date or id")
	cmd.Flags().StringVar(&find, "find", "", "Filter output to episodes whose title contains TEXT")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the episode list as JSON")
	cmd.Flags().BoolVar(&cached, "cached", false, "Serve the list from the local cache without network access")
	return cmd
}

func sortEpisodes(episodes []snapcast.Episode, key string) {
	sort.SliceStable(episodes, func(i, j int) bool {
		if key == "id" {
			return episodes[i].ID < episodes[j].ID
		}
		return episodes[i].PubDate.Before(episodes[j].PubDate)
	})
}

func renderEpisodeList(episodes []snapcast.Episode) string {
	titleBudget := 0
	if width := textutil.TerminalWidth(); width > 0 {
		titleBudget = width - listFixedWidth
		if titleBudget < 20 {
			titleBudget = 20
		}
	}

	rows := make([]table.Row, 0, len(episodes))
	for _, ep := range episodes {
		title := ep.Title
		if titleBudget > 0 {
			title = textutil.Truncate(title, titleBudget)
		}
		rows = append(rows, table.Row{
			ep.ID,
			ep.PubDate.Format("2006-01-02"),
			snapcast.FormatClockDuration(ep.MediaDuration),
			formatSize(ep.MediaSize),
			title,
		})
	}

	return renderRounded(table.Row{"ID", "Date", "Duration", "Size", "Title"}, rows, 1, 3, 4)
}
