package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormOptionsCrossFiltering(t *testing.T) {
	options := NewFormOptions(testTaxonomy())

	categories := options.Categories(1)
	assert.Len(t, categories, 2)
	for _, cat := range categories {
		assert.EqualValues(t, 1, cat.ServiceID)
	}

	subcategories := options.Subcategories(5)
	assert.Len(t, subcategories, 2)

	networks := options.Networks(6)
	assert.Len(t, networks, 1)
	assert.Equal(t, "WiFi", networks[0].Name)
}

func TestFormOptionsUnfilteredLists(t *testing.T) {
	options := NewFormOptions(testTaxonomy())

	assert.Len(t, options.Branches(), 2)
	assert.Len(t, options.Services(), 2)
	assert.Len(t, options.Priorities(), 4)
}

// Changing the parent selection invalidates child selections that no
// longer belong to it.
func TestCategoryChangeInvalidatesChildSelections(t *testing.T) {
	options := NewFormOptions(testTaxonomy())

	assert.True(t, options.ValidSubcategory(5, 11))
	assert.False(t, options.ValidSubcategory(6, 11))

	assert.True(t, options.ValidNetwork(5, 21))
	assert.False(t, options.ValidNetwork(6, 21))

	assert.True(t, options.ValidCategory(1, 5))
	assert.False(t, options.ValidCategory(2, 5))
}

func TestNoParentSelectedYieldsNoChildren(t *testing.T) {
	options := NewFormOptions(testTaxonomy())

	assert.Empty(t, options.Categories(0))
	assert.Empty(t, options.Subcategories(0))
	assert.Empty(t, options.Networks(0))
}
