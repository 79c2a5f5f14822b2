package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/csvio"
	"github.com/sells-group/listing-cli/internal/model"
	"github.com/sells-group/listing-cli/internal/pipeline"
	"github.com/sells-group/listing-cli/internal/store"
)

var (
	enrichCSV         string
	enrichOutput      string
	enrichLimit       int
	enrichConcurrency int
	enrichChunkSize   int
	enrichOffline     bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich a listings CSV with verified phones and emails",
	Long: `Reads a listings CSV, fetches each listing's website, extracts phone and
email candidates, verifies them, and writes the enriched CSV.

Examples:
  # Verified run (requires LISTING_PHONE_KEY)
  listing-cli enrich --csv listings.csv

  # Offline run — syntax/digit checks only, no external calls
  listing-cli enrich --csv listings.csv --offline

  # Split output into 500-row chunks
  listing-cli enrich --csv listings.csv --chunk-size 500`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		table, err := csvio.ReadTable(enrichCSV)
		if err != nil {
			return eris.Wrap(err, "enrich: read csv")
		}
		if enrichLimit > 0 && enrichLimit < len(table.Rows) {
			table.Rows = table.Rows[:enrichLimit]
		}
		records := table.Listings()
		zap.L().Info("parsed csv", zap.String("file", enrichCSV), zap.Int("records", len(records)))

		var env *pipelineEnv
		if enrichOffline {
			env, err = initOfflinePipeline(ctx)
		} else {
			env, err = initPipeline(ctx)
		}
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Store.CreateRun(ctx, enrichCSV)
		if err != nil {
			return eris.Wrap(err, "enrich: create run")
		}

		stats := env.Enricher.EnrichAll(ctx, records, concurrencyOrDefault())

		output := enrichOutput
		if output == "" {
			output = csvio.EnrichedOutputPath(enrichCSV)
		}
		chunkSize := enrichChunkSize
		if chunkSize == 0 {
			chunkSize = cfg.Enrich.ChunkSize
		}

		paths, writeErr := csvio.WriteEnriched(table, records, output, chunkSize)
		completeRun(ctx, env.Store, run.ID, stats, output, writeErr)
		if writeErr != nil {
			return eris.Wrap(writeErr, "enrich: write output")
		}

		zap.L().Info("enrichment complete",
			zap.String("run_id", run.ID),
			zap.Strings("output", paths),
			zap.Int("phones_found", stats.PhonesFound),
			zap.Int("emails_found", stats.EmailsFound),
			zap.Int("fetch_failed", stats.FetchFailed),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichCSV, "csv", "", "path to listings CSV (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "", "output path (default: <input>-enriched.csv)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max records to process (0 = all)")
	enrichCmd.Flags().IntVar(&enrichConcurrency, "concurrency", 0, "records processed concurrently (default from config)")
	enrichCmd.Flags().IntVar(&enrichChunkSize, "chunk-size", 0, "max rows per output file (0 = single file)")
	enrichCmd.Flags().BoolVar(&enrichOffline, "offline", false, "skip external verification (no API keys needed)")
	_ = enrichCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(enrichCmd)
}

func concurrencyOrDefault() int {
	if enrichConcurrency > 0 {
		return enrichConcurrency
	}
	return cfg.Enrich.Concurrency
}

// completeRun records the run outcome; a failure to record never masks the
// run's own error.
func completeRun(ctx context.Context, st store.Store, runID string, stats pipeline.Stats, output string, runErr error) {
	result := &model.RunResult{
		Records:     stats.Records,
		PhonesFound: stats.PhonesFound,
		EmailsFound: stats.EmailsFound,
		FetchFailed: stats.FetchFailed,
		Output:      output,
	}
	status := model.RunStatusComplete
	if runErr != nil {
		status = model.RunStatusFailed
		result.Error = runErr.Error()
	}
	if err := st.CompleteRun(ctx, runID, status, result); err != nil {
		zap.L().Error("record run outcome failed", zap.String("run_id", runID), zap.Error(err))
	}
}
