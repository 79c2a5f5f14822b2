package discovery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/listing-cli/internal/model"
)

// DefaultKeywords is the search keyword set run against each city.
var DefaultKeywords = []string{
	"roofing contractor",
	"roof repair",
	"roof replacement",
	"roofing services",
}

var titleCaser = cases.Title(language.AmericanEnglish)

// BuildQueries produces one "<keyword> in <city>" query per keyword, with the
// city title-cased so scraped inputs like "houston texas" query cleanly.
func BuildQueries(city string, keywords []string) []string {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	city = titleCaser.String(strings.TrimSpace(city))
	queries := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		queries = append(queries, kw+" in "+city)
	}
	return queries
}

// MergeListings collapses listings that share a business name. The first-seen
// listing supplies every field; distinct raw phones from later duplicates are
// joined with "; " so the enricher sees them all as candidates. Order follows
// first appearance. Name matching is exact: the name is the upstream dedup
// key and is never re-derived.
func MergeListings(listings []model.Business) []model.Business {
	index := make(map[string]int, len(listings))
	var merged []model.Business

	for _, l := range listings {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}

		i, ok := index[name]
		if !ok {
			l.Name = name
			index[name] = len(merged)
			merged = append(merged, l)
			continue
		}

		phone := strings.TrimSpace(l.RawPhone)
		if phone == "" {
			continue
		}
		existing := &merged[i]
		if existing.RawPhone == "" {
			existing.RawPhone = phone
			continue
		}
		if !containsPhone(existing.RawPhone, phone) {
			existing.RawPhone += "; " + phone
		}
	}

	return merged
}

// containsPhone reports whether joined already lists phone verbatim.
func containsPhone(joined, phone string) bool {
	for _, p := range strings.Split(joined, ";") {
		if strings.TrimSpace(p) == phone {
			return true
		}
	}
	return false
}
