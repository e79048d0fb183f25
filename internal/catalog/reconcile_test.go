package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/lookbook/internal/models"
)

var testCategories = []string{"Tops", "Bottoms", "Footwear", "Accessories", "Other"}

func TestRebuildIndex(t *testing.T) {
	items := models.PageItems{
		"page_1": {{Name: "Blue Shirt"}},
		"page_2": {{Name: "Blue Shirt"}, {Name: "Red Hat"}},
	}

	index := RebuildIndex(items)

	assert.Equal(t, models.Index{
		"Blue Shirt": {"page_1", "page_2"},
		"Red Hat":    {"page_2"},
	}, index)
}

func TestRebuildIndexIdempotent(t *testing.T) {
	items := models.PageItems{
		"page_3":  {{Name: "Loafers", Category: "Footwear"}, {Name: "Belt"}},
		"page_10": {{Name: "Loafers"}},
		"page_2":  {{Name: "Belt"}, {Name: "Belt"}},
	}

	once := RebuildIndex(items)
	twice := RebuildIndex(items)
	assert.Equal(t, once, twice)

	// Pages are distinct and numerically sorted.
	assert.Equal(t, []models.PageLabel{"page_3", "page_10"}, once["Loafers"])
	assert.Equal(t, []models.PageLabel{"page_2", "page_3"}, once["Belt"])
}

func TestRebuildIndexMatchesOccurrences(t *testing.T) {
	items := models.PageItems{
		"page_1": {{Name: "A"}, {Name: "B"}},
		"page_2": {{Name: "B"}},
		"page_3": {{Name: ""}, {Name: "A"}},
	}

	index := RebuildIndex(items)

	for name, pages := range index {
		for _, page := range pages {
			found := false
			for _, occ := range items[page] {
				if occ.Name == name {
					found = true
				}
			}
			assert.True(t, found, "index lists %s on %s but it is not there", name, page)
		}
	}
	assert.NotContains(t, index, "")
}

func TestRenameRoundTrip(t *testing.T) {
	items := models.PageItems{
		"page_1": {{Name: "Blue Shirt"}},
		"page_2": {{Name: "Blue Shirt"}, {Name: "Red Hat"}},
	}
	original := RebuildIndex(items)

	updated := Rename(items, "Blue Shirt", "Navy Shirt")
	assert.Equal(t, 2, updated)

	index := RebuildIndex(items)
	assert.NotContains(t, index, "Blue Shirt")
	assert.Equal(t, original["Blue Shirt"], index["Navy Shirt"])

	Rename(items, "Navy Shirt", "Blue Shirt")
	assert.Equal(t, original, RebuildIndex(items))
}

func TestRenameNotFound(t *testing.T) {
	items := models.PageItems{"page_1": {{Name: "Blue Shirt"}}}
	assert.Zero(t, Rename(items, "Green Shirt", "Olive Shirt"))
}

func TestSetCategoryUpgradesBareOccurrences(t *testing.T) {
	items := models.PageItems{
		"page_1": {{Name: "Belt"}},
		"page_2": {{Name: "Belt", Category: "Other"}},
	}

	updated := SetCategory(items, "Belt", "Accessories")
	require.Equal(t, 2, updated)

	assert.Equal(t, "Accessories", items["page_1"][0].Category)
	assert.Equal(t, "Accessories", items["page_2"][0].Category)
}

func TestDeletePage(t *testing.T) {
	items := models.PageItems{"page_1": {{Name: "Belt"}}}

	assert.True(t, DeletePage(items, "page_1"))
	assert.False(t, DeletePage(items, "page_1"))
	assert.Empty(t, items)
}

func TestSplitCategorySuffix(t *testing.T) {
	base, category, ok := SplitCategorySuffix("The Row loafer (Footwear)")
	require.True(t, ok)
	assert.Equal(t, "The Row loafer", base)
	assert.Equal(t, "Footwear", category)

	_, _, ok = SplitCategorySuffix("Plain name")
	assert.False(t, ok)

	_, _, ok = SplitCategorySuffix("(odd)")
	assert.False(t, ok)
}

func TestCategorizeSuffixWins(t *testing.T) {
	index := models.Index{"The Row loafer (Footwear)": {"page_1"}}
	items := models.PageItems{
		"page_1": {{Name: "The Row loafer (Footwear)", Category: "Tops"}},
	}

	categorized := Categorize(index, testCategories, items)

	require.Len(t, categorized["Footwear"], 1)
	got := categorized["Footwear"][0]
	assert.Equal(t, "The Row loafer", got.DisplayName)
	assert.Equal(t, "The Row loafer (Footwear)", got.FullName)
}

func TestCategorizeUnknownSuffixFallsThrough(t *testing.T) {
	// "(Vintage)" is not a category, so the suffix stays in the display
	// name and the occurrence category applies.
	index := models.Index{"Jacket (Vintage)": {"page_1"}}
	items := models.PageItems{
		"page_1": {{Name: "Jacket (Vintage)", Category: "Tops"}},
	}

	categorized := Categorize(index, testCategories, items)

	require.Len(t, categorized["Tops"], 1)
	assert.Equal(t, "Jacket (Vintage)", categorized["Tops"][0].DisplayName)
}

func TestCategorizeBaseNameLookup(t *testing.T) {
	// Index key carries an unknown suffix; only the base name has a
	// recorded category.
	index := models.Index{"Jacket (blue)": {"page_1"}}
	items := models.PageItems{
		"page_1": {{Name: "Jacket", Category: "Tops"}},
	}

	categorized := Categorize(index, testCategories, items)
	require.Len(t, categorized["Tops"], 1)
}

func TestCategorizeDefaultsToOther(t *testing.T) {
	index := models.Index{"Mystery Object": {"page_1"}}
	items := models.PageItems{"page_1": {{Name: "Mystery Object"}}}

	categorized := Categorize(index, testCategories, items)
	require.Len(t, categorized[DefaultCategory], 1)
}

func TestCategorizeUnknownRecordedCategoryDefaults(t *testing.T) {
	index := models.Index{"Thing": {"page_1"}}
	items := models.PageItems{"page_1": {{Name: "Thing", Category: "Gadgets"}}}

	categorized := Categorize(index, testCategories, items)
	require.Len(t, categorized[DefaultCategory], 1)
}

func TestCategorizeSortOrder(t *testing.T) {
	index := models.Index{
		"zeta shirt (Tops)":  {"page_1"},
		"Alpha shirt (Tops)": {"page_2"},
		"rare shirt (Tops)":  {"page_1", "page_2"},
	}

	categorized := Categorize(index, testCategories, nil)

	tops := categorized["Tops"]
	require.Len(t, tops, 3)
	// Descending page count first, then case-insensitive name.
	assert.Equal(t, "rare shirt", tops[0].DisplayName)
	assert.Equal(t, "Alpha shirt", tops[1].DisplayName)
	assert.Equal(t, "zeta shirt", tops[2].DisplayName)
}
