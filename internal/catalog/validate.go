package catalog

import (
	"fmt"
	"sort"

	"github.com/meur/lookbook/internal/models"
)

// Validate cross-checks a stored index against its page->items mapping and
// returns a human-readable issue per inconsistency. An empty slice means
// the index is exactly what RebuildIndex would produce the names of.
func Validate(index models.Index, items models.PageItems) []string {
	indexed := map[string]bool{}
	for name := range index {
		indexed[name] = true
	}
	onPages := map[string]bool{}
	for _, occurrences := range items {
		for _, occ := range occurrences {
			if occ.Name != "" {
				onPages[occ.Name] = true
			}
		}
	}

	var issues []string
	for _, name := range sortedNames(indexed) {
		if !onPages[name] {
			issues = append(issues, fmt.Sprintf("item %q is in the index but on no page", name))
		}
	}
	for _, name := range sortedNames(onPages) {
		if !indexed[name] {
			issues = append(issues, fmt.Sprintf("item %q appears on pages but is missing from the index", name))
		}
	}
	return issues
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
