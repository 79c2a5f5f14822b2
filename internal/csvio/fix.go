package csvio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/listing-cli/internal/contact"
)

// FixFile repairs an already-enriched CSV produced before the canonical
// output format settled:
//   - Phone and Additional Phones entries gain the +1 prefix where missing
//   - Additional Phones entries duplicating Phone are dropped
//   - a combined Email column is split into Email and Additional Emails
//
// The repaired file is written under outputDir with the same base name.
func FixFile(inputPath, outputDir string) (string, error) {
	t, err := ReadTable(inputPath)
	if err != nil {
		return "", err
	}

	phoneIdx := t.Col(ColOutPhone)
	addlIdx := t.Col(ColOutAddlPhones)
	emailIdx := t.Col(ColOutEmail)
	addlEmailIdx := t.Col(ColOutAddlEmails)

	// Split Email only when Additional Emails doesn't exist yet.
	splitEmails := emailIdx >= 0 && addlEmailIdx < 0
	if splitEmails {
		t.Header = append(t.Header, ColOutAddlEmails)
	}

	for i, row := range t.Rows {
		// Rows may be shorter than the header; pad before indexing.
		for len(row) < len(t.Header) {
			row = append(row, "")
		}

		main := ""
		if phoneIdx >= 0 {
			main = addPlusOne(cell(row, phoneIdx))
			row[phoneIdx] = main
		}

		if addlIdx >= 0 {
			var kept []string
			for _, p := range strings.Split(cell(row, addlIdx), ",") {
				p = addPlusOne(strings.TrimSpace(p))
				if p == "" || p == main {
					continue
				}
				kept = append(kept, p)
			}
			row[addlIdx] = strings.Join(kept, listJoinSeparator)
		}

		if splitEmails {
			first, rest := splitEmailList(cell(row, emailIdx))
			row[emailIdx] = first
			row[len(t.Header)-1] = rest
		}

		t.Rows[i] = row
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", eris.Wrap(err, "csvio: create output dir")
	}
	outputPath := filepath.Join(outputDir, filepath.Base(inputPath))
	if err := writeCSV(outputPath, t.Header, t.Rows); err != nil {
		return "", err
	}
	return outputPath, nil
}

// FixDir repairs every CSV in inputDir, returning the repaired paths.
// Individual file failures are logged and skipped.
func FixDir(inputDir, outputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, eris.Wrap(err, "csvio: read input dir")
	}

	var fixed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		out, err := FixFile(path, outputDir)
		if err != nil {
			zap.L().Error("fix failed", zap.String("file", path), zap.Error(err))
			continue
		}
		fixed = append(fixed, out)
	}
	if len(fixed) == 0 {
		return nil, eris.Errorf("csvio: no CSV files fixed in %s", inputDir)
	}
	return fixed, nil
}

// addPlusOne normalizes a phone value to +1 form when its digit count
// allows, passing through values already prefixed with + and leaving
// unrecognized values unchanged.
func addPlusOne(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") {
		return s
	}
	if p, ok := contact.Normalize(s); ok {
		return p
	}
	return s
}

// splitEmailList splits a comma-joined email value into first and rest.
func splitEmailList(s string) (string, string) {
	var emails []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	if len(emails) == 0 {
		return "", ""
	}
	return emails[0], strings.Join(emails[1:], listJoinSeparator)
}
