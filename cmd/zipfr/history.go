package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/zipfr/internal/config"
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/report"
	"github.com/verte-zerg/zipfr/internal/store"
)

const defaultHistoryLast = 10

type historyOptions struct {
	last    int
	dataset string
	words   int
}

func newHistoryCmd() *cobra.Command {
	opts := &historyOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryCmd(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.last, "last", defaultHistoryLast, "number of most recent runs (0 = all)")
	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "only runs of this dataset")
	cmd.Flags().IntVar(&opts.words, "words", 0, "also show up to N stored top words per run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, opts *historyOptions) error {
	if opts.last < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if opts.words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close for a read-only listing.
			_ = cerr
		}
	}()

	ctx := cmd.Context()
	runs, err := st.ListRuns(ctx, opts.last, opts.dataset)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	var words map[int64][]model.WordCount
	if opts.words > 0 {
		words = make(map[int64][]model.WordCount, len(runs))
		for _, r := range runs {
			top, err := st.ListRunWords(ctx, r.ID)
			if err != nil {
				return fmt.Errorf("failed to list run words: %w", err)
			}
			if len(top) > opts.words {
				top = top[:opts.words]
			}
			words[r.ID] = top
		}
	}
	return report.RenderHistory(cmd.OutOrStdout(), runs, words)
}
