package catalog

import (
	"sort"
	"strings"

	"github.com/meur/lookbook/internal/models"
)

// Items returns the distinct items in a collection with their recorded
// categories, sorted case-insensitively by name. Bare occurrences with no
// category land in DefaultCategory.
func Items(items models.PageItems) []models.ItemSummary {
	seen := map[string]bool{}
	var out []models.ItemSummary

	var pages []models.PageLabel
	for page := range items {
		pages = append(pages, page)
	}
	models.SortPageLabels(pages)

	for _, page := range pages {
		for _, occ := range items[page] {
			if occ.Name == "" || seen[occ.Name] {
				continue
			}
			seen[occ.Name] = true
			category := occ.Category
			if category == "" {
				category = DefaultCategory
			}
			out = append(out, models.ItemSummary{Name: occ.Name, Category: category})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// Pages returns the collection's pages sorted by page number.
func Pages(items models.PageItems) []models.PageLabel {
	out := make([]models.PageLabel, 0, len(items))
	for page := range items {
		out = append(out, page)
	}
	models.SortPageLabels(out)
	return out
}
