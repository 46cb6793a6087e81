package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reel/internal/layout"
	"reel/internal/shotlist"
)

func newSummaryCommand(ctx *commandContext) *cobra.Command {
	var episode int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize an episode's shot list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if episode < 1 {
				return fmt.Errorf("invalid episode %d: must be >= 1", episode)
			}
			rows, err := shotlist.ReadFile(layout.NewEpisode(cfg.Paths.ProjectRoot, episode).Path(layout.ShotlistFile))
			if err != nil {
				return err
			}
			sum := shotlist.Summarize(rows)
			if jsonOut {
				return writeJSON(cmd, sum)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderRunHeader(episode, "", colorize)+" shot list")
			fmt.Fprintln(out, renderField("Shots", sum.Shots))
			fmt.Fprintln(out, renderField("Video", sum.Video))
			fmt.Fprintln(out, renderField("Storyboard", sum.Storyboard))
			fmt.Fprintln(out, renderField("Runtime", fmt.Sprintf("%ds", sum.TotalSec)))
			if len(sum.Scenes) == 0 {
				return nil
			}
			tableRows := make([][]string, 0, len(sum.Scenes))
			for _, scene := range sum.Scenes {
				tableRows = append(tableRows, []string{
					scene.SceneID,
					string(scene.Beat),
					strconv.Itoa(scene.Shots),
					strconv.Itoa(scene.Video),
					strconv.Itoa(scene.TotalSec),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable(
				[]column{{header: "Scene"}, {header: "Beat"}, {header: "Shots", numeric: true}, {header: "Video", numeric: true}, {header: "Seconds", numeric: true}},
				tableRows,
				[]string{"Total", "", strconv.Itoa(sum.Shots), strconv.Itoa(sum.Video), strconv.Itoa(sum.TotalSec)},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&episode, "episode", "e", 0, "Episode number (1-based)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("episode")
	return cmd
}
