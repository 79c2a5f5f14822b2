package contact

import (
	"context"

	"github.com/sells-group/listing-cli/internal/verify"
)

// ContactSet is the merger's projection into the output fields: one primary
// phone and email plus the ordered remainder. Empty slices mean "nothing
// survived", which is a normal outcome, not an error.
type ContactSet struct {
	Phone            string
	AdditionalPhones []string
	Email            string
	AdditionalEmails []string
}

// Merger combines the CSV-supplied phone with page-extracted candidates and
// runs them through dedup, verification, and normalization. Validators are
// injected so tests can use deterministic accept/reject doubles.
type Merger struct {
	phones verify.PhoneValidator
	emails verify.EmailValidator
}

// NewMerger creates a Merger with the given validators.
func NewMerger(phones verify.PhoneValidator, emails verify.EmailValidator) *Merger {
	return &Merger{phones: phones, emails: emails}
}

// Merge builds the candidate list with the CSV phone first, then the
// extracted phones in first-seen order, and reduces it to the output fields.
//
// Phones are deduped by digit identity before verification; emails are
// validated before the case-insensitive dedup. The asymmetry is deliberate:
// an email rejected by the validator must not shadow a deliverable address
// that folds to the same lower-cased form.
func (m *Merger) Merge(ctx context.Context, rawPhone string, extracted ExtractionResult) ContactSet {
	var set ContactSet

	candidates := make([]string, 0, len(extracted.Phones)+1)
	if cleaned := CleanRawPhone(rawPhone); cleaned != "" {
		candidates = append(candidates, cleaned)
	}
	candidates = append(candidates, extracted.Phones...)

	// Digit identity treats 8328107822 and 18328107822 as distinct, but both
	// canonicalize to +18328107822. The second seen map enforces the output
	// invariant that Phone never reappears in AdditionalPhones.
	var phones []string
	seenCanonical := make(map[string]bool)
	for _, c := range DedupePhones(candidates) {
		d := Digits(c)
		if d == "" {
			continue
		}
		if !m.phones.Verify(ctx, d) {
			continue
		}
		canonical, ok := Normalize(c)
		if !ok || seenCanonical[canonical] {
			continue
		}
		seenCanonical[canonical] = true
		phones = append(phones, canonical)
	}
	if len(phones) > 0 {
		set.Phone = phones[0]
		set.AdditionalPhones = phones[1:]
	}

	var emails []string
	for _, e := range extracted.Emails {
		normalized, ok := m.emails.Validate(ctx, e)
		if !ok {
			continue
		}
		emails = append(emails, normalized)
	}
	emails = DedupeEmails(emails)
	if len(emails) > 0 {
		set.Email = emails[0]
		set.AdditionalEmails = emails[1:]
	}

	return set
}
