package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"galley/internal/progress"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <slug>",
		Short: "Clear an item's progress entry so it can be claimed again",
		Long: "Reset removes an item's progress entry entirely. Use it to recover " +
			"items stuck in_progress after an instance died mid-run, or to force " +
			"regeneration of a completed item.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := progress.Open(cfg)
			if err != nil {
				return err
			}

			slug := args[0]
			removed, err := store.Reset(cmd.Context(), slug)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintf(out, "Reset %s; it is claimable again.\n", slug)
			} else {
				fmt.Fprintf(out, "No progress entry for %s.\n", slug)
			}
			return nil
		},
	}
	return cmd
}
