// Package pipeline derives contact fields for business listings: fetch the
// website, extract candidates, merge with the CSV phone, verify, normalize.
package pipeline

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/listing-cli/internal/contact"
	"github.com/sells-group/listing-cli/internal/fetch"
	"github.com/sells-group/listing-cli/internal/model"
)

// Enricher runs the per-record enrichment pipeline.
type Enricher struct {
	fetcher fetch.Fetcher
	merger  *contact.Merger
}

// New creates an Enricher.
func New(fetcher fetch.Fetcher, merger *contact.Merger) *Enricher {
	return &Enricher{fetcher: fetcher, merger: merger}
}

// Stats summarizes a batch run.
type Stats struct {
	Records     int
	PhonesFound int
	EmailsFound int
	FetchFailed int
}

// EnrichRecord populates the derived contact fields on one listing. A record
// with no resolvable website, or whose fetch fails, still proceeds on its
// CSV-supplied phone alone. Returns false when the record had a website but
// its page yielded no text.
func (e *Enricher) EnrichRecord(ctx context.Context, b *model.Business) bool {
	var extracted contact.ExtractionResult
	fetched := true

	if url, ok := fetch.NormalizeURL(b.Website); ok {
		text := e.fetcher.FetchText(ctx, url)
		if text == "" {
			fetched = false
		} else {
			extracted = contact.Extract(text)
		}
	}

	set := e.merger.Merge(ctx, b.RawPhone, extracted)
	b.Phone = set.Phone
	b.AdditionalPhones = set.AdditionalPhones
	b.Email = set.Email
	b.AdditionalEmails = set.AdditionalEmails

	zap.L().Debug("record enriched",
		zap.String("name", b.Name),
		zap.String("phone", b.Phone),
		zap.Int("additional_phones", len(b.AdditionalPhones)),
		zap.String("email", b.Email),
	)
	return fetched
}

// EnrichAll enriches records in place with bounded concurrency. A
// concurrency of 1 preserves strict input-order sequential processing;
// higher values fan records out across a worker pool. Individual record
// failures never abort the batch.
func (e *Enricher) EnrichAll(ctx context.Context, records []model.Business, concurrency int) Stats {
	if concurrency < 1 {
		concurrency = 1
	}

	var phones, emails, fetchFailed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range records {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if !e.EnrichRecord(gctx, &records[i]) {
				fetchFailed.Add(1)
			}
			if records[i].Phone != "" {
				phones.Add(1)
			}
			if records[i].Email != "" {
				emails.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{
		Records:     len(records),
		PhonesFound: int(phones.Load()),
		EmailsFound: int(emails.Load()),
		FetchFailed: int(fetchFailed.Load()),
	}
	zap.L().Info("batch complete",
		zap.Int("records", stats.Records),
		zap.Int("phones_found", stats.PhonesFound),
		zap.Int("emails_found", stats.EmailsFound),
		zap.Int("fetch_failed", stats.FetchFailed),
	)
	return stats
}
