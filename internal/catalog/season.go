package catalog

import "github.com/meur/lookbook/internal/models"

// FilterBySeason narrows an index and page->items mapping to the pages
// assigned to season (or "both"). Items left with no pages are dropped.
// Labels are canonical on ingestion, so membership tests need no further
// normalization.
func FilterBySeason(index models.Index, items models.PageItems, season models.Season, seasons models.SeasonMap) (models.Index, models.PageItems) {
	inSeason := make(map[models.PageLabel]struct{})
	for page, s := range seasons {
		if s.Matches(season) {
			inSeason[page] = struct{}{}
		}
	}

	filteredItems := models.PageItems{}
	for page, occurrences := range items {
		if _, ok := inSeason[page]; ok {
			filteredItems[page] = occurrences
		}
	}

	filteredIndex := models.Index{}
	for name, pages := range index {
		var kept []models.PageLabel
		for _, p := range pages {
			if _, ok := inSeason[p]; ok {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			filteredIndex[name] = kept
		}
	}
	return filteredIndex, filteredItems
}
