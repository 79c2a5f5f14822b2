package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/contact"
	"github.com/sells-group/listing-cli/internal/fetch"
	"github.com/sells-group/listing-cli/internal/pipeline"
	"github.com/sells-group/listing-cli/internal/store"
	"github.com/sells-group/listing-cli/internal/verify"
)

// pipelineEnv holds the initialized store, clients, and enricher shared by
// the enrich/serve commands.
type pipelineEnv struct {
	Store    store.Store
	Enricher *pipeline.Enricher
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initStore opens the configured run/cache store and migrates it.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		st, err = store.NewSQLite(cfg.Store.Path)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline sets up the store, verification clients, and page fetcher.
// A missing phone verification key is a startup error, not a per-record
// failure. Callers should defer env.Close().
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if cfg.Phone.Key == "" {
		return nil, eris.New("LISTING_PHONE_KEY is required; set it or use --offline")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	phoneOpts := []verify.PhoneOption{verify.WithPhoneRateLimit(cfg.Phone.RequestsPerSec)}
	if cfg.Phone.BaseURL != "" {
		phoneOpts = append(phoneOpts, verify.WithPhoneBaseURL(cfg.Phone.BaseURL))
	}
	phones := verify.NewPhoneClient(cfg.Phone.Key, phoneOpts...)
	emails := verify.NewEmailChecker()

	var fetcher fetch.Fetcher = fetch.NewPageFetcher(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs) * time.Second),
	)
	if cfg.Fetch.CacheTTLHours > 0 {
		ttl := time.Duration(cfg.Fetch.CacheTTLHours) * time.Hour
		fetcher = fetch.NewCachedFetcher(fetcher, st, ttl)
		if n, err := st.DeleteExpiredPages(ctx); err == nil && n > 0 {
			zap.L().Debug("expired cached pages purged", zap.Int("count", n))
		}
	}

	return &pipelineEnv{
		Store:    st,
		Enricher: pipeline.New(fetcher, contact.NewMerger(phones, emails)),
	}, nil
}

// initOfflinePipeline builds a pipeline that skips external verification:
// phones pass on digit count alone, emails on syntax alone, and pages are
// still fetched but never cached across runs unless a store is configured.
func initOfflinePipeline(ctx context.Context) (*pipelineEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	fetcher := fetch.NewPageFetcher(
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSecs) * time.Second),
	)

	return &pipelineEnv{
		Store:    st,
		Enricher: pipeline.New(fetcher, contact.NewMerger(verify.OfflinePhoneValidator{}, verify.OfflineEmailValidator{})),
	}, nil
}
