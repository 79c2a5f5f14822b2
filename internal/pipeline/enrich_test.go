package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/listing-cli/internal/contact"
	"github.com/sells-group/listing-cli/internal/model"
	"github.com/sells-group/listing-cli/internal/verify"
)

// fakeFetcher serves canned page text keyed by normalized URL.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) FetchText(_ context.Context, url string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	return f.pages[url]
}

func offlineMerger() *contact.Merger {
	return contact.NewMerger(verify.OfflinePhoneValidator{}, verify.OfflineEmailValidator{})
}

func TestEnrichRecord(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.acme.com/": "Call us at (832) 810-7822 or email info@acme.com",
	}}
	e := New(fetcher, offlineMerger())

	b := model.Business{Name: "Acme Roofing", Website: "acme.com", RawPhone: "713-555-1234"}
	fetched := e.EnrichRecord(context.Background(), &b)

	assert.True(t, fetched)
	assert.Equal(t, "+17135551234", b.Phone)
	assert.Equal(t, []string{"+18328107822"}, b.AdditionalPhones)
	assert.Equal(t, "info@acme.com", b.Email)
	assert.Empty(t, b.AdditionalEmails)
}

func TestEnrichRecord_NoWebsite(t *testing.T) {
	fetcher := &fakeFetcher{}
	e := New(fetcher, offlineMerger())

	b := model.Business{Name: "Acme Roofing", RawPhone: "832-810-7822"}
	fetched := e.EnrichRecord(context.Background(), &b)

	// Missing website isn't a fetch failure; the CSV phone still flows through.
	assert.True(t, fetched)
	assert.Empty(t, fetcher.calls)
	assert.Equal(t, "+18328107822", b.Phone)
	assert.Empty(t, b.Email)
}

func TestEnrichRecord_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{} // every fetch returns empty text
	e := New(fetcher, offlineMerger())

	b := model.Business{Name: "Acme Roofing", Website: "acme.com", RawPhone: "832-810-7822"}
	fetched := e.EnrichRecord(context.Background(), &b)

	assert.False(t, fetched)
	assert.Equal(t, "+18328107822", b.Phone)
}

func TestEnrichAll(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		"https://www.acme.com/":   "Reach us at 832-810-7822 or info@acme.com",
		"https://www.budget.com/": "no contacts here",
	}}
	e := New(fetcher, offlineMerger())

	records := []model.Business{
		{Name: "Acme Roofing", Website: "acme.com"},
		{Name: "Budget Roofs", Website: "budget.com", RawPhone: "713-555-1234"},
		{Name: "No Site Roofing", Website: "nan"},
		{Name: "Dead Site Roofing", Website: "gone.example"},
	}

	stats := e.EnrichAll(context.Background(), records, 1)

	assert.Equal(t, 4, stats.Records)
	assert.Equal(t, 2, stats.PhonesFound)
	assert.Equal(t, 1, stats.EmailsFound)
	assert.Equal(t, 1, stats.FetchFailed)

	assert.Equal(t, "+18328107822", records[0].Phone)
	assert.Equal(t, "info@acme.com", records[0].Email)
	assert.Equal(t, "+17135551234", records[1].Phone)
	assert.Empty(t, records[2].Phone)
}

func TestEnrichAll_Concurrent(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{}}
	e := New(fetcher, offlineMerger())

	var records []model.Business
	for range 20 {
		records = append(records, model.Business{Name: "Acme", RawPhone: "832-810-7822"})
	}

	stats := e.EnrichAll(context.Background(), records, 8)

	require.Equal(t, 20, stats.Records)
	assert.Equal(t, 20, stats.PhonesFound)
	for _, r := range records {
		assert.Equal(t, "+18328107822", r.Phone)
	}
}
