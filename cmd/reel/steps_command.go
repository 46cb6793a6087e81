package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
)

func newStepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List registered pipeline steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runner, _, closeFn, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer closeFn()

			defaults := cfg.Steps()
			var rows [][]string
			for _, name := range runner.Registry.Names() {
				order := "-"
				if idx := slices.Index(defaults, name); idx >= 0 {
					order = strconv.Itoa(idx + 1)
				}
				rows = append(rows, []string{name, yesNo(order != "-"), order})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]column{{header: "Step"}, {header: "Default"}, {header: "Order", numeric: true}},
				rows,
				nil,
			))
			return nil
		},
	}
}
