package main

import (
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/api"
	"reel/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API for the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, store, closeFn, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer closeFn()

			opts := api.Options{
				Root:         cfg.Paths.ProjectRoot,
				Runner:       runner,
				Token:        cfg.API.Token,
				DefaultSteps: cfg.Steps(),
				Logger:       runner.Logger,
			}
			if store != nil {
				opts.Runs = store
			}
			address := strings.TrimSpace(bind)
			if address == "" {
				address = cfg.API.Bind
			}
			runner.Logger.Info("starting api server",
				logging.String("bind", address),
				logging.String("project_root", cfg.Paths.ProjectRoot),
				logging.Bool("auth", cfg.API.Token != ""),
			)
			return api.New(opts).ListenAndServe(cmd.Context(), address)
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (default: api.bind)")
	return cmd
}
