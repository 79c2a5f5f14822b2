package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/csvio"
	"github.com/sells-group/listing-cli/internal/discovery"
	"github.com/sells-group/listing-cli/internal/model"
	"github.com/sells-group/listing-cli/pkg/places"
)

var (
	discoverCity     string
	discoverKeywords []string
	discoverOutput   string
	discoverEnrich   bool
	discoverOffline  bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover business listings for a city and write them as a CSV",
	Long: `Searches the Places API for each keyword in the given city, merges the
results by business name, and writes a listings CSV ready for enrich.

Examples:
  listing-cli discover --city houston
  listing-cli discover --city "san antonio" --keyword "roof repair" --output sa.csv

  # Discover and enrich in one pass
  listing-cli discover --city houston --enrich`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Places.Key == "" {
			return eris.New("LISTING_PLACES_KEY is required for discovery")
		}

		var placesOpts []places.Option
		if cfg.Places.BaseURL != "" {
			placesOpts = append(placesOpts, places.WithBaseURL(cfg.Places.BaseURL))
		}
		provider := discovery.NewPlacesProvider(places.NewClient(cfg.Places.Key, placesOpts...), 0)

		keywords := discoverKeywords
		if len(keywords) == 0 {
			keywords = discovery.DefaultKeywords
		}

		var all []model.Business
		for _, query := range discovery.BuildQueries(discoverCity, keywords) {
			listings, err := provider.Search(ctx, query)
			if err != nil {
				zap.L().Error("search failed", zap.String("query", query), zap.Error(err))
				continue
			}
			zap.L().Info("search complete", zap.String("query", query), zap.Int("results", len(listings)))
			all = append(all, listings...)
		}

		merged := discovery.MergeListings(all)
		if len(merged) == 0 {
			return eris.Errorf("discover: no listings found for %q", discoverCity)
		}

		output := discoverOutput
		if output == "" {
			output = discoverCity + "-listings.csv"
		}
		if err := csvio.WriteListings(merged, output); err != nil {
			return eris.Wrap(err, "discover: write output")
		}

		zap.L().Info("discovery complete",
			zap.String("city", discoverCity),
			zap.Int("listings", len(merged)),
			zap.String("output", output),
		)

		if !discoverEnrich {
			return nil
		}

		// Feed the discovered listings straight into the enrichment pipeline.
		var env *pipelineEnv
		var err error
		if discoverOffline {
			env, err = initOfflinePipeline(ctx)
		} else {
			env, err = initPipeline(ctx)
		}
		if err != nil {
			return err
		}
		defer env.Close()

		run, err := env.Store.CreateRun(ctx, output)
		if err != nil {
			return eris.Wrap(err, "discover: create run")
		}

		table, err := csvio.ReadTable(output)
		if err != nil {
			return eris.Wrap(err, "discover: reread listings")
		}
		records := table.Listings()

		stats := env.Enricher.EnrichAll(ctx, records, cfg.Enrich.Concurrency)

		enriched := csvio.EnrichedOutputPath(output)
		_, writeErr := csvio.WriteEnriched(table, records, enriched, cfg.Enrich.ChunkSize)
		completeRun(ctx, env.Store, run.ID, stats, enriched, writeErr)
		if writeErr != nil {
			return eris.Wrap(writeErr, "discover: write enriched output")
		}

		zap.L().Info("enrichment complete",
			zap.String("run_id", run.ID),
			zap.String("output", enriched),
			zap.Int("phones_found", stats.PhonesFound),
			zap.Int("emails_found", stats.EmailsFound),
		)
		return nil
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverCity, "city", "", "city to search (required)")
	discoverCmd.Flags().StringArrayVar(&discoverKeywords, "keyword", nil, "search keyword (repeatable; default roofing set)")
	discoverCmd.Flags().StringVar(&discoverOutput, "output", "", "output CSV path (default: <city>-listings.csv)")
	discoverCmd.Flags().BoolVar(&discoverEnrich, "enrich", false, "run the enrichment pipeline on the discovered listings")
	discoverCmd.Flags().BoolVar(&discoverOffline, "offline", false, "with --enrich, skip external verification")
	_ = discoverCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(discoverCmd)
}
