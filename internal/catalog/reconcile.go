// Package catalog holds the reconciliation logic between the page->items
// mapping and the derived item->pages index, plus categorization and
// season filtering for rendering.
package catalog

import (
	"sort"
	"strings"

	"github.com/meur/lookbook/internal/models"
)

// DefaultCategory is the bucket for items with no resolvable category.
const DefaultCategory = "Other"

// RebuildIndex derives the item->pages index from the page->items mapping.
// Each item maps to the distinct pages it appears on, sorted by page number.
// The result is a pure function of its input: rebuilding twice is a no-op.
func RebuildIndex(items models.PageItems) models.Index {
	index := models.Index{}
	for page, occurrences := range items {
		for _, occ := range occurrences {
			if occ.Name == "" {
				continue
			}
			index[occ.Name] = append(index[occ.Name], page)
		}
	}

	for name, pages := range index {
		seen := make(map[models.PageLabel]struct{}, len(pages))
		distinct := pages[:0]
		for _, p := range pages {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			distinct = append(distinct, p)
		}
		models.SortPageLabels(distinct)
		index[name] = distinct
	}
	return index
}

// CategorizedItem is one catalog entry ready for rendering.
type CategorizedItem struct {
	// DisplayName has any "(Category)" suffix stripped.
	DisplayName string
	// FullName is the index key, used by edit actions.
	FullName string
	Pages    []models.PageLabel
	Category string
}

// SplitCategorySuffix splits names of the form "The Row loafer (Footwear)"
// into base name and trailing category. ok is false when there is no suffix.
func SplitCategorySuffix(name string) (base, category string, ok bool) {
	if !strings.HasSuffix(name, ")") {
		return name, "", false
	}
	i := strings.LastIndex(name, " (")
	if i < 0 {
		return name, "", false
	}
	return name[:i], name[i+2 : len(name)-1], true
}

// Categorize buckets every indexed item into the collection's categories.
//
// Resolution order per item: a recognized "(Category)" suffix in the name,
// then the first category recorded for the exact name on any page, then the
// category recorded for the suffix-stripped base name, then DefaultCategory.
// Within a bucket items sort by descending page count, then name.
func Categorize(index models.Index, categories []string, items models.PageItems) map[string][]CategorizedItem {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	// First recorded category per name wins, matching page order in the
	// index so the choice is deterministic.
	recorded := map[string]string{}
	var pages []models.PageLabel
	for page := range items {
		pages = append(pages, page)
	}
	models.SortPageLabels(pages)
	for _, page := range pages {
		for _, occ := range items[page] {
			if occ.Name == "" || occ.Category == "" {
				continue
			}
			if _, ok := recorded[occ.Name]; !ok {
				recorded[occ.Name] = occ.Category
			}
		}
	}

	categorized := map[string][]CategorizedItem{}
	for name, itemPages := range index {
		display := name
		category := ""

		if base, cat, ok := SplitCategorySuffix(name); ok && known[cat] {
			display = base
			category = cat
		}
		if category == "" {
			category = recorded[name]
		}
		if category == "" {
			if base, _, ok := SplitCategorySuffix(name); ok {
				category = recorded[base]
			}
		}
		if category == "" || !known[category] {
			category = DefaultCategory
		}

		categorized[category] = append(categorized[category], CategorizedItem{
			DisplayName: display,
			FullName:    name,
			Pages:       itemPages,
			Category:    category,
		})
	}

	for _, bucket := range categorized {
		sort.Slice(bucket, func(i, j int) bool {
			if len(bucket[i].Pages) != len(bucket[j].Pages) {
				return len(bucket[i].Pages) > len(bucket[j].Pages)
			}
			return strings.ToLower(bucket[i].DisplayName) < strings.ToLower(bucket[j].DisplayName)
		})
	}
	return categorized
}

// Rename replaces oldName with newName in every occurrence across all
// pages and returns how many occurrences changed. The caller rebuilds the
// index.
func Rename(items models.PageItems, oldName, newName string) int {
	updated := 0
	for _, occurrences := range items {
		for i := range occurrences {
			if occurrences[i].Name == oldName {
				occurrences[i].Name = newName
				updated++
			}
		}
	}
	return updated
}

// SetCategory sets the category on every occurrence matching name,
// upgrading bare-string occurrences to structured ones, and returns how
// many occurrences changed.
func SetCategory(items models.PageItems, name, category string) int {
	updated := 0
	for _, occurrences := range items {
		for i := range occurrences {
			if occurrences[i].Name == name {
				occurrences[i].Category = category
				updated++
			}
		}
	}
	return updated
}

// DeletePage removes a page from the mapping. It reports whether the page
// existed.
func DeletePage(items models.PageItems, page models.PageLabel) bool {
	if _, ok := items[page]; !ok {
		return false
	}
	delete(items, page)
	return true
}
