package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/models"
	"github.com/meur/lookbook/internal/storage"
)

// handleRenameItem renames an item across all occurrences in a collection
// and rebuilds the index.
func (s *Server) handleRenameItem(w http.ResponseWriter, r *http.Request) {
	var req models.RenameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.NewName = strings.TrimSpace(req.NewName)
	if req.Collection == "" || req.OldName == "" || req.NewName == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.OldName == req.NewName {
		respondError(w, http.StatusBadRequest, "New name is the same as old name")
		return
	}

	updated := 0
	err := s.store.Update(req.Collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		updated = catalog.Rename(items, req.OldName, req.NewName)
		if updated == 0 {
			return nil, nil, fmt.Errorf("item %q %w", req.OldName, storage.ErrNotFound)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Renamed %q to %q (%d occurrences)", req.OldName, req.NewName, updated),
	})
}

// handleChangeCategory sets the category on every occurrence of an item,
// upgrading bare-string occurrences to structured ones.
func (s *Server) handleChangeCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Collection == "" || req.ItemName == "" || req.NewCategory == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	updated := 0
	err := s.store.Update(req.Collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		updated = catalog.SetCategory(items, req.ItemName, req.NewCategory)
		if updated == 0 {
			return nil, nil, fmt.Errorf("item %q %w", req.ItemName, storage.ErrNotFound)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Changed %q to %s (%d occurrences)", req.ItemName, req.NewCategory, updated),
	})
}

// handleChangeSeason retags every page of an item in the season map. Pages
// come from the season-bearing collection's current index.
func (s *Server) handleChangeSeason(w http.ResponseWriter, r *http.Request) {
	var req models.SeasonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ItemName == "" || req.NewSeason == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	season, err := models.ParseSeason(req.NewSeason)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	seasonal := s.store.Config().SeasonCollection()
	if seasonal == nil {
		respondError(w, http.StatusBadRequest, "No season-bearing collection configured")
		return
	}

	index, _, err := s.store.Load(seasonal.Name)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	pages := index[req.ItemName]
	if len(pages) == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Item %q not found", req.ItemName))
		return
	}

	err = s.store.UpdateSeasons(func(seasons models.SeasonMap) (models.SeasonMap, error) {
		for _, page := range pages {
			seasons[page] = season
		}
		return seasons, nil
	})
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Changed %d pages to %s", len(pages), season),
	})
}
