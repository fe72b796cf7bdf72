package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"galley/internal/catalog"
	"galley/internal/generate"
	"galley/internal/identity"
	"galley/internal/logging"
	"galley/internal/progress"
	"galley/internal/runlog"
	"galley/internal/runner"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		libraryFlag string
		tierFlag    int
		allFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Claim and process catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := describeSelection(libraryFlag, tierFlag, allFlag)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Generation.APIKey == "" {
				return errors.New("generation api key required: set generation.api_key or GALLEY_API_KEY")
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			items, err := ctx.loadCatalog()
			if err != nil {
				return err
			}
			selected, err := selectItems(items, libraryFlag, tierFlag)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to process.")
				return nil
			}

			store, err := progress.Open(cfg)
			if err != nil {
				return err
			}

			instance := identity.New()
			coordinator, err := progress.NewCoordinator(store, instance)
			if err != nil {
				return err
			}

			client := generate.NewClient(generate.ClientConfig{
				APIKey:         cfg.Generation.APIKey,
				BaseURL:        cfg.Generation.BaseURL,
				Model:          cfg.Generation.Model,
				TimeoutSeconds: cfg.Generation.TimeoutSeconds,
				RetryAttempts:  cfg.Generation.RetryAttempts,
			})
			pipeline, err := generate.NewPipeline(cfg, client, logger)
			if err != nil {
				return err
			}

			work, err := runner.New(coordinator, store, pipeline, logger)
			if err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger.Info("run starting",
				logging.String("instance", instance.String()),
				logging.String("selection", selection),
				logging.Int("items", len(selected)))

			startedAt := time.Now().UTC()
			summary, runErr := work.Run(runCtx, selected)
			finishedAt := time.Now().UTC()

			logger.Info("run finished",
				logging.Duration("elapsed", finishedAt.Sub(startedAt)),
				logging.Int("processed", summary.Processed),
				logging.Int("failed", summary.Failed),
				logging.Int("skipped", summary.Skipped))

			if history, histErr := runlog.Open(cfg); histErr != nil {
				logger.Warn("run history unavailable", logging.Error(histErr))
			} else {
				entry := runlog.Entry{
					Instance:   instance.String(),
					Selection:  selection,
					StartedAt:  startedAt,
					FinishedAt: finishedAt,
					Processed:  summary.Processed,
					Failed:     summary.Failed,
					Skipped:    summary.Skipped,
				}
				if recErr := history.Record(cmd.Context(), entry); recErr != nil {
					logger.Warn("record run history", logging.Error(recErr))
				}
				_ = history.Close()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Processed: %d  Failed: %d  Skipped: %d\n",
				summary.Processed, summary.Failed, summary.Skipped)

			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Process a single item by slug")
	cmd.Flags().IntVarP(&tierFlag, "tier", "t", 0, "Process all items in the given tier")
	cmd.Flags().BoolVarP(&allFlag, "all", "a", false, "Process every catalog item")
	return cmd
}

func describeSelection(library string, tier int, all bool) (string, error) {
	set := 0
	if library != "" {
		set++
	}
	if tier > 0 {
		set++
	}
	if all {
		set++
	}
	if set == 0 {
		return "", errors.New("select work with --library, --tier, or --all")
	}
	if set > 1 {
		return "", errors.New("--library, --tier, and --all are mutually exclusive")
	}
	switch {
	case library != "":
		return "library " + library, nil
	case tier > 0:
		return fmt.Sprintf("tier %d", tier), nil
	default:
		return "all", nil
	}
}

func selectItems(items []catalog.Item, library string, tier int) ([]catalog.Item, error) {
	switch {
	case library != "":
		item, ok := catalog.BySlug(items, library)
		if !ok {
			return nil, fmt.Errorf("no catalog item with slug %q", library)
		}
		return []catalog.Item{item}, nil
	case tier > 0:
		return catalog.ByTier(items, tier), nil
	default:
		return items, nil
	}
}
