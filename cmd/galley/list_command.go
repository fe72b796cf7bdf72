package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var tierFlag int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items and their tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := ctx.loadCatalog()
			if err != nil {
				return err
			}

			tierCounts := map[int]int{}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				tierCounts[item.Tier]++
				if tierFlag > 0 && item.Tier != tierFlag {
					continue
				}
				rows = append(rows, []string{
					item.Slug,
					item.Name,
					strconv.Itoa(item.Tier),
					item.Category,
					item.License,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Slug", "Name", "Tier", "Category", "License"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))

			tiers := make([]int, 0, len(tierCounts))
			for tier := range tierCounts {
				tiers = append(tiers, tier)
			}
			sort.Ints(tiers)
			fmt.Fprintf(out, "%d items", len(items))
			for _, tier := range tiers {
				fmt.Fprintf(out, "  tier %d: %d", tier, tierCounts[tier])
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&tierFlag, "tier", "t", 0, "Show only items in the given tier")
	return cmd
}
