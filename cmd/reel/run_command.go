package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reel/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var episode int
	var steps []string
	var force bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run pipeline steps for one episode",
		Example: `  reel run --episode 1
  reel run --episode 3 --steps shotlist,package --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("steps") {
				steps = cfg.Steps()
			}
			runner, _, closeFn, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer closeFn()

			report, runErr := runner.Run(cmd.Context(), pipeline.Request{
				Root:    cfg.Paths.ProjectRoot,
				Episode: episode,
				Steps:   steps,
				Force:   force,
			})
			if jsonOut {
				if runErr != nil {
					return runErr
				}
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderRunHeader(episode, report.RunID, colorize))
			for _, step := range report.Steps {
				status := statusForOutcome(step.Outcome)
				fmt.Fprintln(out, renderStepLine(step.Name, status, step.Duration.Round(time.Millisecond).String(), colorize))
			}
			if runErr != nil {
				fmt.Fprintln(out, renderStepLine("run", stepFailed, runErr.Error(), colorize))
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&episode, "episode", "e", 0, "Episode number (1-based)")
	cmd.Flags().StringSliceVarP(&steps, "steps", "s", nil, "Comma-separated steps to run (default: pipeline.default_steps)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate artifacts that already exist")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the run report as JSON")
	_ = cmd.MarkFlagRequired("episode")
	return cmd
}
