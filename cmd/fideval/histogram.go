package main

import (
	"fmt"
	"os"

	"github.com/crosslingo/fideval/internal/report"
	"github.com/spf13/cobra"
)

func newHistogramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "histogram <report.csv>",
		Short: "Recompute the fidelity-score histogram from an existing report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("histogram: open %q: %w", args[0], err)
			}
			defer f.Close()

			scores, err := report.ReadScores(f)
			if err != nil {
				return err
			}

			var hist report.Histogram
			for i, score := range scores {
				if err := hist.Add(score); err != nil {
					return fmt.Errorf("histogram: row %d: %w", i+1, err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), hist.Render())
			return nil
		},
	}
}
