package store

import (
	"context"
	"time"

	"github.com/sells-group/listing-cli/internal/model"
)

// Store persists enrichment run history and the fetched-page cache.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, input string) (*model.EnrichmentRun, error)
	CompleteRun(ctx context.Context, runID string, status model.RunStatus, result *model.RunResult) error
	GetRun(ctx context.Context, runID string) (*model.EnrichmentRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.EnrichmentRun, error)

	// Page cache
	GetCachedPage(ctx context.Context, url string) (string, bool, error)
	SetCachedPage(ctx context.Context, url, text string, ttl time.Duration) error
	DeleteExpiredPages(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
