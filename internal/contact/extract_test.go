package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_PhoneAndEmail(t *testing.T) {
	res := Extract("Call us at 832-810-7822 or email info@example.com")

	assert.Equal(t, []string{"+18328107822"}, res.Phones)
	assert.Equal(t, []string{"info@example.com"}, res.Emails)
}

func TestExtract_PhoneFormats(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"dashed", "832-810-7822", []string{"+18328107822"}},
		{"dotted", "832.810.7822", []string{"+18328107822"}},
		{"parenthesized", "(832) 810-7822", []string{"+18328107822"}},
		{"plus one dashed", "+1-832-810-7822", []string{"+18328107822"}},
		{"plus one parenthesized", "+1 (832) 810-7822", []string{"+18328107822"}},
		{"plus one compact", "+18328107822", []string{"+18328107822"}},
		{"spaced groups", "832 810 7822", []string{"+18328107822"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.text).Phones)
		})
	}
}

func TestExtract_BareDigitRunNotMatched(t *testing.T) {
	// A 10-digit run with no separators could be an order number or ID.
	res := Extract("invoice 8328107822 confirmed")
	assert.Empty(t, res.Phones)
}

func TestExtract_DedupesAcrossFormats(t *testing.T) {
	res := Extract("Call 832-810-7822 or (832) 810-7822 or +1 832 810 7822")
	assert.Equal(t, []string{"+18328107822"}, res.Phones)
}

func TestExtract_MultiplePhonesFirstSeenOrder(t *testing.T) {
	res := Extract("Main: 832-810-7822. Sales: 713-555-1234.")
	assert.Equal(t, []string{"+18328107822", "+17135551234"}, res.Phones)
}

func TestExtract_EmailVariants(t *testing.T) {
	res := Extract("Contact sales+quotes@my-site.co.uk or SUPPORT@EXAMPLE.COM today")
	assert.Equal(t, []string{"sales+quotes@my-site.co.uk", "SUPPORT@EXAMPLE.COM"}, res.Emails)
}

func TestExtract_PreservesEmailCase(t *testing.T) {
	// Case folding happens post-validation in the merger, not here.
	res := Extract("Info@Example.com and info@example.com")
	assert.Equal(t, []string{"Info@Example.com", "info@example.com"}, res.Emails)
}

func TestExtract_EmptyText(t *testing.T) {
	res := Extract("")
	assert.Empty(t, res.Phones)
	assert.Empty(t, res.Emails)
}

func TestExtract_RejectsMalformedNumbers(t *testing.T) {
	// Matches that reduce to a bad digit count are silently discarded.
	res := Extract("fax 810-7822 ext 12")
	assert.Empty(t, res.Phones)
}
