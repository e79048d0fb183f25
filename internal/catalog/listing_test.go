package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meur/lookbook/internal/models"
)

func TestItems(t *testing.T) {
	items := models.PageItems{
		"page_2": {{Name: "belt", Category: "Accessories"}, {Name: "Coat"}},
		"page_1": {{Name: "Coat", Category: "Outerwear"}, {Name: ""}},
	}

	got := Items(items)

	// Distinct, sorted case-insensitively; the first recorded category
	// (in page order) wins, bare occurrences default.
	assert.Equal(t, []models.ItemSummary{
		{Name: "belt", Category: "Accessories"},
		{Name: "Coat", Category: "Outerwear"},
	}, got)
}

func TestPages(t *testing.T) {
	items := models.PageItems{
		"page_10": nil,
		"page_2":  nil,
		"page_1":  nil,
	}
	assert.Equal(t, []models.PageLabel{"page_1", "page_2", "page_10"}, Pages(items))
}

func TestValidate(t *testing.T) {
	index := models.Index{
		"Coat":  {"page_1"},
		"Ghost": {"page_9"},
	}
	items := models.PageItems{
		"page_1": {{Name: "Coat"}, {Name: "Orphan"}},
	}

	issues := Validate(index, items)

	assert.Len(t, issues, 2)
	assert.Contains(t, issues[0], "Ghost")
	assert.Contains(t, issues[1], "Orphan")
}

func TestValidateClean(t *testing.T) {
	items := models.PageItems{"page_1": {{Name: "Coat"}}}
	assert.Empty(t, Validate(RebuildIndex(items), items))
}
