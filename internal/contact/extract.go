package contact

import "regexp"

// ExtractionResult holds contact candidates pulled from page text. Phones are
// already reduced to canonical +1XXXXXXXXXX form; emails are raw matches in
// their original casing (validation and case folding happen in the merger).
// Both slices are deduplicated, in first-seen order.
type ExtractionResult struct {
	Phones []string
	Emails []string
}

var (
	emailRe = regexp.MustCompile(`(?i)\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)

	// US phone grammars, tried independently and unioned:
	//   +1 (832) 810-7822 / +1 832-810-7822 / +18328107822
	phonePlusRe = regexp.MustCompile(`\+1[\s\-.]?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4}`)
	//   (832) 810-7822 / 832-810-7822 — separators required, so bare
	//   10-digit runs in unrelated text (order numbers, IDs) don't match.
	phoneSepRe = regexp.MustCompile(`\(?\d{3}\)?[\s\-.]+\d{3}[\s\-.]+\d{4}`)
)

// Extract scans raw page text for email addresses and US phone numbers.
// Pure function: no I/O, no side effects. Matches that cannot reduce to a
// canonical phone form are discarded as routine filtering, not errors.
func Extract(text string) ExtractionResult {
	var res ExtractionResult

	seenEmail := make(map[string]bool)
	for _, m := range emailRe.FindAllString(text, -1) {
		if seenEmail[m] {
			continue
		}
		seenEmail[m] = true
		res.Emails = append(res.Emails, m)
	}

	seenPhone := make(map[string]bool)
	for _, re := range []*regexp.Regexp{phonePlusRe, phoneSepRe} {
		for _, m := range re.FindAllString(text, -1) {
			p, ok := Normalize(m)
			if !ok || seenPhone[p] {
				continue
			}
			seenPhone[p] = true
			res.Phones = append(res.Phones, p)
		}
	}

	return res
}
