package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/models"
	"github.com/meur/lookbook/internal/storage"
)

// handleDeletePage removes a page from a collection, rebuilds the index,
// and drops the page's season entry when the collection carries seasons.
func (s *Server) handleDeletePage(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	page, err := models.ParsePageLabel(chi.URLParam(r, "page"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, ok := s.store.Config().Collection(collection)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid collection")
		return
	}

	err = s.store.Update(collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		if !catalog.DeletePage(items, page) {
			return nil, nil, fmt.Errorf("page %q %w", page, storage.ErrNotFound)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if c.HasSeasons {
		err = s.store.UpdateSeasons(func(seasons models.SeasonMap) (models.SeasonMap, error) {
			delete(seasons, page)
			return seasons, nil
		})
		if err != nil {
			s.respondStoreError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Deleted %s", page),
	})
}
