package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/listing-cli/internal/model"
)

// Derived output columns appended by the enrichment pipeline.
const (
	ColOutPhone       = "Phone"
	ColOutAddlPhones  = "Additional Phones"
	ColOutEmail       = "Email"
	ColOutAddlEmails  = "Additional Emails"
	listJoinSeparator = ", "
)

// WriteEnriched writes the table with the derived contact columns appended
// and the original phone_number column removed. records must be aligned by
// index with t.Rows. A chunkSize > 0 splits the output into files of at most
// chunkSize data rows each, named <base>-part1.csv, <base>-part2.csv, ...;
// a row is never split across chunks and every chunk repeats the header.
func WriteEnriched(t *Table, records []model.Business, path string, chunkSize int) ([]string, error) {
	if len(records) != len(t.Rows) {
		return nil, eris.Errorf("csvio: %d records for %d rows", len(records), len(t.Rows))
	}

	phoneIdx := t.Col(ColPhone)

	header := make([]string, 0, len(t.Header)+4)
	for i, col := range t.Header {
		if i == phoneIdx {
			continue
		}
		header = append(header, col)
	}
	header = append(header, ColOutPhone, ColOutAddlPhones, ColOutEmail, ColOutAddlEmails)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, 0, len(header))
		for j := 0; j < len(t.Header); j++ {
			if j == phoneIdx {
				continue
			}
			out = append(out, cell(row, j))
		}
		out = append(out,
			records[i].Phone,
			strings.Join(records[i].AdditionalPhones, listJoinSeparator),
			records[i].Email,
			strings.Join(records[i].AdditionalEmails, listJoinSeparator),
		)
		rows[i] = out
	}

	if chunkSize <= 0 {
		if err := writeCSV(path, header, rows); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	var paths []string
	for start, part := 0, 1; start < len(rows) || part == 1; part++ {
		end := start + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunkPath := chunkFileName(path, part)
		if err := writeCSV(chunkPath, header, rows[start:end]); err != nil {
			return nil, err
		}
		paths = append(paths, chunkPath)
		start = end
		if start >= len(rows) {
			break
		}
	}
	return paths, nil
}

// chunkFileName inserts -partN before the extension.
func chunkFileName(path string, part int) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".csv"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return fmt.Sprintf("%s-part%d%s", base, part, ext)
}

// writeCSV writes a single CSV file with header and rows.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "csvio: create")
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "csvio: write header")
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return eris.Wrap(err, "csvio: write row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return eris.Wrap(err, "csvio: flush")
	}
	return eris.Wrap(f.Close(), "csvio: close")
}

// WriteListings writes discovered listings in the enrichment input format.
func WriteListings(listings []model.Business, path string) error {
	header := []string{
		ColName, ColAddress, ColWebsite, ColPhone,
		ColReviewsCount, ColReviewsAverage, ColLatitude, ColLongitude,
	}
	rows := make([][]string, len(listings))
	for i, l := range listings {
		rows[i] = []string{
			l.Name, l.Address, l.Website, l.RawPhone,
			strconv.Itoa(l.ReviewsCount),
			strconv.FormatFloat(l.ReviewsAverage, 'f', -1, 64),
			strconv.FormatFloat(l.Latitude, 'f', -1, 64),
			strconv.FormatFloat(l.Longitude, 'f', -1, 64),
		}
	}
	return writeCSV(path, header, rows)
}

// EnrichedOutputPath derives the default output path: <base>-enriched.csv
// alongside the input.
func EnrichedOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	if ext == "" {
		ext = ".csv"
	}
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "-enriched" + ext
}
