package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"galley/internal/progress"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show claim and completion state across all instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := progress.Open(cfg)
			if err != nil {
				return err
			}

			records, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}

			items, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			counts := map[progress.Status]int{}
			for _, record := range records {
				counts[record.Status]++
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Catalog: %d items  Claimed: %d\n", len(items), len(records))
			for _, status := range progress.AllStatuses() {
				fmt.Fprintf(out, "  %-12s %d\n", status, counts[status])
			}
			unclaimed := len(items) - len(records)
			if unclaimed < 0 {
				unclaimed = 0
			}
			fmt.Fprintf(out, "  %-12s %d\n", "unclaimed", unclaimed)

			if !verbose || len(records) == 0 {
				return nil
			}

			slugs := make([]string, 0, len(records))
			for slug := range records {
				slugs = append(slugs, slug)
			}
			sort.Strings(slugs)

			rows := make([][]string, 0, len(slugs))
			for _, slug := range slugs {
				record := records[slug]
				rows = append(rows, []string{
					slug,
					string(record.Status),
					record.Owner,
					record.UpdatedAt.Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Slug", "Status", "Owner", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every claimed item")
	return cmd
}
