// core/lca/lca_test.go
package lca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEmpty(t *testing.T) {
	res := Compute(nil, 1.0)
	assert.Equal(t, NoHits, res.Assignment)
	assert.Equal(t, 0.0, res.Percent)
	assert.Empty(t, res.Included)
}

func TestComputeSingleTaxon(t *testing.T) {
	res := Compute([]Entry{{95.0, "Gobius niger"}}, 0)
	assert.Equal(t, "Gobius niger", res.Assignment)
	assert.Equal(t, 95.0, res.Percent)
	assert.Equal(t, []string{"Gobius niger"}, res.Included)
}

func TestComputeAmbiguousWithinWindow(t *testing.T) {
	res := Compute([]Entry{
		{95.0, "Gobius niger"},
		{94.5, "Gobius cobitis"},
	}, 1.0)
	assert.Equal(t, Dropped, res.Assignment)
	assert.Equal(t, []string{"Gobius cobitis", "Gobius niger"}, res.Included)
	assert.InDelta(t, 94.75, res.Percent, 1e-9)
}

func TestComputeWindowExcludesDistantHit(t *testing.T) {
	res := Compute([]Entry{
		{98.0, "Gobius niger"},
		{90.0, "Gobius cobitis"},
	}, 1.0)
	assert.Equal(t, "Gobius niger", res.Assignment)
	assert.Equal(t, 98.0, res.Percent)
}

func TestComputeBoundaryIsInclusive(t *testing.T) {
	// 94.0 == 95.0 - 1.0 exactly; it must be included.
	res := Compute([]Entry{
		{95.0, "Gobius niger"},
		{94.0, "Gobius cobitis"},
	}, 1.0)
	require.Len(t, res.Included, 2)
	assert.Equal(t, Dropped, res.Assignment)
	assert.InDelta(t, 94.5, res.Percent, 1e-9)
}

func TestComputeDuplicateOccurrencesEachContribute(t *testing.T) {
	// Same taxon twice: one included name, but both scores in the mean.
	res := Compute([]Entry{
		{96.0, "Gobius niger"},
		{95.0, "Gobius niger"},
	}, 2.0)
	assert.Equal(t, "Gobius niger", res.Assignment)
	assert.Equal(t, []string{"Gobius niger"}, res.Included)
	assert.InDelta(t, 95.5, res.Percent, 1e-9)
}

func TestComputeIncludedSatisfyWindow(t *testing.T) {
	entries := []Entry{
		{99.1, "a"}, {98.7, "b"}, {97.0, "c"}, {99.5, "d"},
	}
	res := Compute(entries, 1.0)
	require.NotEmpty(t, res.Included)
	for _, name := range res.Included {
		found := false
		for _, e := range entries {
			if e.Taxon == name && e.Percent >= 99.5-1.0 {
				found = true
			}
		}
		assert.True(t, found, "included taxon %q below window", name)
	}
	assert.NotContains(t, res.Included, "c")
}
