package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPreviewCmd(st *cliState) *cobra.Command {
	var (
		source string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the first records of the configured dataset",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = 5
			}

			loader, err := newLoader(st.cfg, source, limit)
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}

			records, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tQUESTION\tCHOICES\tANSWER")
			for _, rec := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
					rec.ID,
					truncate(rec.Question, 60),
					truncate(strings.Join(rec.Choices, " | "), 60),
					rec.Answer,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "dataset source: jsonl|hub (overrides config)")
	cmd.Flags().IntVar(&limit, "limit", 5, "number of records to print")

	return cmd
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
