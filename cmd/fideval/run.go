package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/crosslingo/fideval/internal/config"
	"github.com/crosslingo/fideval/internal/dataset"
	"github.com/crosslingo/fideval/internal/llm"
	"github.com/crosslingo/fideval/internal/pipeline"
	"github.com/crosslingo/fideval/internal/progress"
	"github.com/crosslingo/fideval/internal/report"
	"github.com/spf13/cobra"
)

type runOptions struct {
	provider    string
	source      string
	sample      int
	concurrency int
	out         string
	histFile    string
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the translate-then-evaluate pipeline and write the CSV report",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.provider, "provider", "", "LLM provider name (overrides config)")
	cmd.Flags().StringVar(&opts.source, "source", "", "dataset source: jsonl|hub (overrides config)")
	cmd.Flags().IntVar(&opts.sample, "sample", -1, "limit the number of records (overrides config)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", -1, "max in-flight model calls per stage (overrides config)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output CSV path (overrides config)")
	cmd.Flags().StringVar(&opts.histFile, "histogram-file", "", "also save the histogram rendering to this file")

	return cmd
}

func runPipeline(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	provider, err := llm.ProviderFromConfig(st.cfg, opts.provider)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	sample := st.cfg.Dataset.SampleSize
	if opts.sample >= 0 {
		sample = opts.sample
	}
	concurrency := st.cfg.Pipeline.Concurrency
	if opts.concurrency >= 0 {
		concurrency = opts.concurrency
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	outPath := strings.TrimSpace(opts.out)
	if outPath == "" {
		outPath = st.cfg.Report.Path
	}
	if outPath == "" {
		outPath = config.DefaultReportPath
	}

	loader, err := newLoader(st.cfg, opts.source, sample)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	stdout := cmd.OutOrStdout()

	records, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("run: dataset %q is empty", loader.Name())
	}
	fmt.Fprintf(stdout, "Loaded %d records (%s)\n", len(records), loader.Name())

	tracker := progress.NewTracker(cmd.ErrOrStderr(), len(records), "translating")
	translator := &pipeline.LLMTranslator{
		Provider:    provider,
		Concurrency: concurrency,
		MaxTokens:   st.cfg.Pipeline.MaxTokens,
		Timeout:     time.Duration(st.cfg.Pipeline.Timeout),
		OnProgress:  tracker.Incr,
	}
	translations, err := translator.Translate(ctx, records)
	tracker.Close()
	if err != nil {
		return err
	}

	tracker = progress.NewTracker(cmd.ErrOrStderr(), len(translations), "evaluating")
	evaluator := &pipeline.LLMEvaluator{
		Provider:    provider,
		Concurrency: concurrency,
		MaxTokens:   st.cfg.Pipeline.MaxTokens,
		Timeout:     time.Duration(st.cfg.Pipeline.Timeout),
		OnProgress:  tracker.Incr,
	}
	evaluations, err := evaluator.Evaluate(ctx, translations)
	tracker.Close()
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("run: create %q: %w", outPath, err)
	}
	writer := &report.Writer{Diagnostics: stdout}
	if err := writer.Write(f, records, evaluations); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("run: close %q: %w", outPath, err)
	}
	fmt.Fprintf(stdout, "Wrote %d rows to %s\n", len(evaluations), outPath)

	var hist report.Histogram
	for _, ev := range evaluations {
		if err := hist.Add(ev.Score); err != nil {
			return err
		}
	}
	rendered := hist.Render()
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, rendered)

	if path := strings.TrimSpace(opts.histFile); path != "" {
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("run: write %q: %w", path, err)
		}
	}

	return nil
}

func newLoader(cfg *config.Config, sourceFlag string, sample int) (dataset.Loader, error) {
	source := strings.ToLower(strings.TrimSpace(sourceFlag))
	if source == "" {
		source = strings.ToLower(strings.TrimSpace(cfg.Dataset.Source))
	}
	if source == "" {
		source = "jsonl"
	}

	switch source {
	case "jsonl":
		return &dataset.JSONLLoader{
			Path:       cfg.Dataset.Path,
			SampleSize: sample,
		}, nil
	case "hub":
		return &dataset.HubLoader{
			Dataset:    cfg.Dataset.Dataset,
			Config:     cfg.Dataset.Config,
			Split:      cfg.Dataset.Split,
			SampleSize: sample,
		}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q (expected jsonl|hub)", source)
	}
}
