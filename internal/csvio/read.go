// Package csvio reads and writes the delimited listing files the pipeline
// consumes and produces.
package csvio

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listing-cli/internal/model"
)

// Column names recognized in input files. website, address, and phone_number
// are optional; an absent column reads as empty for every row.
const (
	ColName           = "name"
	ColAddress        = "address"
	ColWebsite        = "website"
	ColPhone          = "phone_number"
	ColReviewsCount   = "reviews_count"
	ColReviewsAverage = "reviews_average"
	ColLatitude       = "latitude"
	ColLongitude      = "longitude"
)

// Table is a delimited file held as raw strings, so columns the pipeline
// doesn't know about pass through to the output untouched.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable reads a CSV file into a Table.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csvio: open")
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csvio: read")
	}
	if len(records) == 0 {
		return nil, eris.New("csvio: empty file")
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	return &Table{Header: header, Rows: records[1:]}, nil
}

// Col returns the index of the named column, or -1.
func (t *Table) Col(name string) int {
	for i, col := range t.Header {
		if strings.EqualFold(col, name) {
			return i
		}
	}
	return -1
}

// cell safely reads row[idx], tolerating short rows and missing columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Listings projects the table onto listing records, one per row, aligned by
// index with t.Rows. Optional numeric columns parse best-effort.
func (t *Table) Listings() []model.Business {
	nameIdx := t.Col(ColName)
	addrIdx := t.Col(ColAddress)
	siteIdx := t.Col(ColWebsite)
	phoneIdx := t.Col(ColPhone)
	reviewsIdx := t.Col(ColReviewsCount)
	ratingIdx := t.Col(ColReviewsAverage)
	latIdx := t.Col(ColLatitude)
	lngIdx := t.Col(ColLongitude)

	listings := make([]model.Business, len(t.Rows))
	for i, row := range t.Rows {
		b := model.Business{
			Name:     cell(row, nameIdx),
			Address:  cell(row, addrIdx),
			Website:  cell(row, siteIdx),
			RawPhone: cell(row, phoneIdx),
		}
		if v, err := strconv.Atoi(cell(row, reviewsIdx)); err == nil {
			b.ReviewsCount = v
		}
		if v, err := strconv.ParseFloat(cell(row, ratingIdx), 64); err == nil {
			b.ReviewsAverage = v
		}
		if v, err := strconv.ParseFloat(cell(row, latIdx), 64); err == nil {
			b.Latitude = v
		}
		if v, err := strconv.ParseFloat(cell(row, lngIdx), 64); err == nil {
			b.Longitude = v
		}
		listings[i] = b
	}
	return listings
}
