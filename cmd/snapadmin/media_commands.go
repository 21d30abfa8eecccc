package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newMediaCommand(ctx *commandContext) *cobra.Command {
	mediaCmd := &cobra.Command{
		Use:   "media",
		Short: "Bucket maintenance for episode media objects",
	}

	mediaCmd.AddCommand(newMediaListCommand(ctx))
	mediaCmd.AddCommand(newMediaPurgeCommand(ctx))

	return mediaCmd
}

func newMediaListCommand(ctx *commandContext) *cobra.Command {
	var prefix string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media objects in the bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.objectStore(cmd.Context())
			if err != nil {
				return err
			}
			objects, err := store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, objects)
			}

			rows := make([]table.Row, 0, len(objects))
			for _, obj := range objects {
				rows = append(rows, table.Row{
					obj.Name,
					formatSize(obj.Size),
					obj.UploadedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRounded(table.Row{"Name", "Size", "Uploaded"}, rows, 2))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list objects whose name starts with PREFIX")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the object list as JSON")
	return cmd
}

func newMediaPurgeCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge NAME",
		Short: "Delete every version of a media object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete all versions of %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
					return nil
				}
			}

			store, err := ctx.objectStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.DeleteAllVersions(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged all versions of %q\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
