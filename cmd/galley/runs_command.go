package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"galley/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent run history for this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			history, err := runlog.Open(cfg)
			if err != nil {
				return err
			}
			defer history.Close()

			entries, err := history.Recent(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.StartedAt.Local().Format("2006-01-02 15:04"),
					entry.FinishedAt.Sub(entry.StartedAt).Round(time.Second).String(),
					entry.Instance,
					entry.Selection,
					strconv.Itoa(entry.Processed),
					strconv.Itoa(entry.Failed),
					strconv.Itoa(entry.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Started", "Duration", "Instance", "Selection", "Done", "Failed", "Skipped"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to show")
	return cmd
}
