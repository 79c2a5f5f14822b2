// Package discovery finds raw business listings for a keyword+city search
// and prepares them for the enrichment pipeline.
package discovery

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/listing-cli/internal/model"
	"github.com/sells-group/listing-cli/internal/resilience"
	"github.com/sells-group/listing-cli/pkg/places"
)

// Provider yields raw listing records for a search query. The pipeline only
// depends on this contract: name, address, website, raw phone, geo.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]model.Business, error)
}

// PlacesProvider implements Provider over the Places Text Search API.
type PlacesProvider struct {
	client  places.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// NewPlacesProvider creates a PlacesProvider with the given request rate.
func NewPlacesProvider(client places.Client, rps float64) *PlacesProvider {
	if rps <= 0 {
		rps = 5
	}
	return &PlacesProvider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		retry:   resilience.DefaultRetryConfig(),
	}
}

func (p *PlacesProvider) Name() string { return "places" }

// Search runs a text search and maps the results to listing records.
func (p *PlacesProvider) Search(ctx context.Context, query string) ([]model.Business, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "places provider: rate limit wait")
	}

	resp, err := resilience.DoVal(ctx, p.retry, "places.text_search",
		func(ctx context.Context) (*places.TextSearchResponse, error) {
			return p.client.TextSearch(ctx, query)
		})
	if err != nil {
		return nil, eris.Wrapf(err, "places provider: search %q", query)
	}

	listings := make([]model.Business, 0, len(resp.Places))
	for _, place := range resp.Places {
		if place.DisplayName.Text == "" {
			continue
		}
		listings = append(listings, model.Business{
			Name:           place.DisplayName.Text,
			Address:        place.FormattedAddress,
			Website:        place.WebsiteURI,
			RawPhone:       place.NationalPhoneNumber,
			ReviewsCount:   place.UserRatingCount,
			ReviewsAverage: place.Rating,
			Latitude:       place.Location.Latitude,
			Longitude:      place.Location.Longitude,
		})
	}
	return listings, nil
}
