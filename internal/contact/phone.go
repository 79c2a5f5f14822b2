package contact

import "strings"

// Digits returns only the digit characters of s. The digits-only projection is
// the identity key for phone deduplication: two differently formatted strings
// that reduce to the same digit sequence are the same number.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// Normalize converts a US phone-like string to canonical +1XXXXXXXXXX form.
// Ten digits gain a +1 prefix; eleven digits with a leading 1 gain a +. Any
// other digit count cannot form a US number and is rejected. Normalize is
// idempotent: an already-canonical string passes through unchanged.
func Normalize(candidate string) (string, bool) {
	d := Digits(candidate)
	switch {
	case len(d) == 10:
		return "+1" + d, true
	case len(d) == 11 && d[0] == '1':
		return "+" + d, true
	}
	return "", false
}

// CleanRawPhone prepares the CSV-supplied phone_number value for merging:
// dashes are stripped and surrounding whitespace trimmed. Normalization
// happens later, after dedup, alongside the extracted candidates.
func CleanRawPhone(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "-", ""))
}

// DedupePhones collapses candidates that share a digit identity, keeping the
// first-seen surface form in its original position. Blank candidates and
// candidates with no digits are dropped without consuming an identity.
func DedupePhones(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	var out []string
	for _, c := range candidates {
		key := Digits(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// DedupeEmails collapses addresses case-insensitively, first occurrence wins.
// Callers validate before deduping so that rejected entries never shadow a
// deliverable address with the same lower-cased form.
func DedupeEmails(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	var out []string
	for _, a := range addresses {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}
