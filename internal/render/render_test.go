package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/models"
)

func TestNewViewKeepsCategoryOrder(t *testing.T) {
	categorized := map[string][]catalog.CategorizedItem{
		"Accessories": {{DisplayName: "Belt", FullName: "Belt", Pages: []models.PageLabel{"page_1"}, Category: "Accessories"}},
		"Tops":        {{DisplayName: "Shirt", FullName: "Shirt", Pages: []models.PageLabel{"page_1"}, Category: "Tops"}},
	}

	v := NewView("summer", "Summer", "/collection-images/summer", false,
		[]string{"Tops", "Bottoms", "Accessories"}, categorized)

	require.Len(t, v.Sections, 2)
	assert.Equal(t, "Tops", v.Sections[0].Category)
	assert.Equal(t, "Accessories", v.Sections[1].Category)
}

func TestNewViewAppendsDefaultBucket(t *testing.T) {
	categorized := map[string][]catalog.CategorizedItem{
		catalog.DefaultCategory: {{DisplayName: "Mystery", FullName: "Mystery", Category: catalog.DefaultCategory}},
	}

	// Order omits "Other"; defaulted items must still render.
	v := NewView("summer", "Summer", "", false, []string{"Tops"}, categorized)

	require.Len(t, v.Sections, 1)
	assert.Equal(t, catalog.DefaultCategory, v.Sections[0].Category)
}

func TestCatalogRender(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	views := []CollectionView{
		NewView("fw", "Fall", "/collection-images/fw", true, []string{"Outerwear"},
			map[string][]catalog.CategorizedItem{
				"Outerwear": {{
					DisplayName: "Wool Coat",
					FullName:    "Wool Coat",
					Pages:       []models.PageLabel{"page_1", "page_2"},
					Category:    "Outerwear",
				}},
			}),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Catalog(&buf, views))

	out := buf.String()
	assert.Contains(t, out, "Wool Coat")
	assert.Contains(t, out, "Appears on 2 pages")
	assert.Contains(t, out, "season-btn")
	assert.Contains(t, out, `data-collection="fw"`)
}
