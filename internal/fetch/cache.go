package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PageCache is the slice of the store the cached fetcher needs.
type PageCache interface {
	GetCachedPage(ctx context.Context, url string) (string, bool, error)
	SetCachedPage(ctx context.Context, url, text string, ttl time.Duration) error
}

// CachedFetcher wraps a Fetcher with a store-backed page cache keyed by
// normalized URL. Cache failures degrade to a plain fetch; empty fetch
// results are not cached so a transient site outage doesn't stick.
type CachedFetcher struct {
	inner Fetcher
	cache PageCache
	ttl   time.Duration
}

// NewCachedFetcher creates a CachedFetcher with the given TTL.
func NewCachedFetcher(inner Fetcher, cache PageCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache, ttl: ttl}
}

// FetchText returns cached page text when fresh, otherwise fetches and
// stores the result.
func (c *CachedFetcher) FetchText(ctx context.Context, url string) string {
	text, ok, err := c.cache.GetCachedPage(ctx, url)
	if err != nil {
		zap.L().Warn("page cache read failed", zap.String("url", url), zap.Error(err))
	} else if ok {
		return text
	}

	text = c.inner.FetchText(ctx, url)
	if text != "" {
		if err := c.cache.SetCachedPage(ctx, url, text, c.ttl); err != nil {
			zap.L().Warn("page cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return text
}
