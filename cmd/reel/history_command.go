package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reel/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var episode int
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded pipeline runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if store == nil {
				fmt.Fprintln(out, "Run history is disabled (history.enabled = false)")
				return nil
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), history.ListOptions{Episode: episode, Limit: limit})
			if err != nil {
				return err
			}
			if jsonOut {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]column{{header: "Run"}, {header: "Episode", numeric: true}, {header: "Steps"}, {header: "Status"}, {header: "Started"}, {header: "Duration", numeric: true}},
				historyRows(runs),
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&episode, "episode", "e", 0, "Only show runs for this episode")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func historyRows(runs []history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		id := run.ID
		if len(id) > 8 {
			id = id[:8]
		}
		status := string(run.Status)
		if run.Error != "" {
			status += ": " + truncate(run.Error, 40)
		}
		duration := "-"
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			id,
			strconv.Itoa(run.Episode),
			strings.Join(run.Steps, ","),
			status,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
		})
	}
	return rows
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
