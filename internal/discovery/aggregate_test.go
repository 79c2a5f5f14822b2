package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/listing-cli/internal/model"
)

func TestBuildQueries(t *testing.T) {
	queries := BuildQueries("houston texas", nil)

	assert.Equal(t, []string{
		"roofing contractor in Houston Texas",
		"roof repair in Houston Texas",
		"roof replacement in Houston Texas",
		"roofing services in Houston Texas",
	}, queries)
}

func TestBuildQueries_CustomKeywords(t *testing.T) {
	queries := BuildQueries("Austin, Texas", []string{"gutter installation", "  ", "roof inspection"})

	assert.Equal(t, []string{
		"gutter installation in Austin, Texas",
		"roof inspection in Austin, Texas",
	}, queries)
}

func TestMergeListings_DedupesByName(t *testing.T) {
	merged := MergeListings([]model.Business{
		{Name: "Acme Roofing", Address: "123 Main St", Website: "acme.com", RawPhone: "832-810-7822"},
		{Name: "Budget Roofs", RawPhone: "713-555-1234"},
		{Name: "Acme Roofing", Address: "999 Other St", RawPhone: "281-555-0000"},
	})

	assert.Len(t, merged, 2)
	assert.Equal(t, "Acme Roofing", merged[0].Name)
	assert.Equal(t, "123 Main St", merged[0].Address)
	assert.Equal(t, "832-810-7822; 281-555-0000", merged[0].RawPhone)
	assert.Equal(t, "Budget Roofs", merged[1].Name)
}

func TestMergeListings_SamePhoneNotRepeated(t *testing.T) {
	merged := MergeListings([]model.Business{
		{Name: "Acme Roofing", RawPhone: "832-810-7822"},
		{Name: "Acme Roofing", RawPhone: "832-810-7822"},
	})

	assert.Len(t, merged, 1)
	assert.Equal(t, "832-810-7822", merged[0].RawPhone)
}

func TestMergeListings_FillsMissingPhone(t *testing.T) {
	merged := MergeListings([]model.Business{
		{Name: "Acme Roofing"},
		{Name: "Acme Roofing", RawPhone: "832-810-7822"},
	})

	assert.Len(t, merged, 1)
	assert.Equal(t, "832-810-7822", merged[0].RawPhone)
}

func TestMergeListings_DropsUnnamed(t *testing.T) {
	merged := MergeListings([]model.Business{
		{Name: "  ", RawPhone: "832-810-7822"},
		{Name: "Acme Roofing"},
	})

	assert.Len(t, merged, 1)
	assert.Equal(t, "Acme Roofing", merged[0].Name)
}
