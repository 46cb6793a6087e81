package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/layout"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List episode directories in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.ProjectRoot
			refs, err := layout.ListEpisodes(root)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, refs)
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "No episodes found")
				return nil
			}
			rows := make([][]string, 0, len(refs))
			for _, ref := range refs {
				number, err := strconv.Atoi(strings.TrimPrefix(ref.ID, "ep"))
				if err != nil {
					return fmt.Errorf("parse episode directory %q: %w", ref.ID, err)
				}
				ep := layout.NewEpisode(root, number)
				files, err := ep.ListFiles()
				if err != nil {
					return fmt.Errorf("list files for %s: %w", ref.ID, err)
				}
				hasShotlist, err := layout.Exists(ep.Path(layout.ShotlistFile))
				if err != nil {
					return err
				}
				rows = append(rows, []string{ref.ID, ref.Path, strconv.Itoa(len(files)), yesNo(hasShotlist)})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{header: "Episode"}, {header: "Path"}, {header: "Files", numeric: true}, {header: "Shot list"}},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
