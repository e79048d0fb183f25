package api

import (
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/models"
	"github.com/meur/lookbook/internal/render"
)

// handleCatalog renders the full catalog: one view per collection, and one
// view per season for the season-bearing collection.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	seasons, err := s.store.LoadSeasons()
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	var views []render.CollectionView
	for _, c := range s.store.Config().Collections {
		index, items, err := s.store.Load(c.Name)
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		imagePath := "/collection-images/" + c.Name

		if !c.HasSeasons {
			categorized := catalog.Categorize(index, c.Categories, items)
			views = append(views, render.NewView(c.Name, c.Title, imagePath, false, c.Categories, categorized))
			continue
		}

		for _, season := range []struct {
			season models.Season
			title  string
		}{{models.SeasonFall, "Fall"}, {models.SeasonWinter, "Winter"}} {
			filteredIndex, filteredItems := catalog.FilterBySeason(index, items, season.season, seasons)
			categorized := catalog.Categorize(filteredIndex, c.Categories, filteredItems)
			views = append(views, render.NewView(c.Name, season.title, imagePath, true, c.Categories, categorized))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Catalog(w, views); err != nil {
		s.log.Error().Err(err).Msg("render catalog")
	}
}

// handleGetData returns fresh data for a collection, used by the frontend
// after an edit.
func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "collection")
	c, ok := s.store.Config().Collection(name)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid collection")
		return
	}

	index, items, err := s.store.Load(name)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	data := models.CollectionData{ClothingIndex: index, PageItems: items}
	if c.HasSeasons {
		seasons, err := s.store.LoadSeasons()
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
		data.Seasons = seasons
	}
	respondJSON(w, http.StatusOK, data)
}

// handleSearch fuzzy-matches item names and returns the matching index
// entries, best match first in rank but keyed by name.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := urlParam(r, "query")
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		collection = s.store.Config().Collections[0].Name
	}

	index, _, err := s.store.Load(collection)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	matches := models.Index{}
	for _, rank := range ranks {
		matches[rank.Target] = index[rank.Target]
	}
	respondJSON(w, http.StatusOK, matches)
}

// handleGetItem returns the sorted pages a single item appears on.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		collection = s.store.Config().Collections[0].Name
	}

	index, _, err := s.store.Load(collection)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	pages, ok := index[name]
	if !ok {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	models.SortPageLabels(pages)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"item":  name,
		"pages": pages,
	})
}

// urlParam returns a route parameter with percent-escapes decoded; item
// names routinely contain spaces and parentheses.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// handleGetPage returns the occurrences on a single page.
func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := models.ParsePageLabel(chi.URLParam(r, "page"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		collection = s.store.Config().Collections[0].Name
	}

	_, items, err := s.store.Load(collection)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	occurrences, ok := items[page]
	if !ok {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"page":  page,
		"items": occurrences,
	})
}
