// Package manager is the form-based management UI, run separately from the
// catalog browser. It edits the same data files: renaming items, deleting
// pages, retagging page seasons and changing item categories.
package manager

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/meur/lookbook/internal/api"
	"github.com/meur/lookbook/internal/catalog"
	"github.com/meur/lookbook/internal/models"
	"github.com/meur/lookbook/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server is the management UI server.
type Server struct {
	store  *storage.Store
	log    zerolog.Logger
	tmpl   *template.Template
	router chi.Router
}

// New creates the management UI server.
func New(store *storage.Store, log zerolog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		store:  store,
		log:    log,
		tmpl:   tmpl,
		router: chi.NewRouter(),
	}

	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/api/items/{collection}", s.handleItems)
	s.router.Get("/api/pages/{collection}", s.handlePages)
	s.router.Get("/api/seasons", s.handleSeasons)

	s.router.Post("/rename", s.handleRename)
	s.router.Post("/delete-page", s.handleDeletePages)
	s.router.Post("/update-seasons", s.handleUpdateSeasons)
	s.router.Post("/change-category", s.handleChangeCategory)

	for _, c := range store.Config().Collections {
		if c.ImageDir == "" {
			continue
		}
		api.FileServer(s.router, "/images/"+c.Name, http.Dir(c.ImageDir))
	}

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Message          string
		Success          bool
		Collections      []collectionOption
		Categories       []string
		SeasonCollection string
	}{
		Message: r.URL.Query().Get("message"),
		Success: r.URL.Query().Get("success") != "false",
	}
	for _, c := range s.store.Config().Collections {
		data.Collections = append(data.Collections, collectionOption{Name: c.Name, Title: c.Title})
	}
	if len(s.store.Config().Collections) > 0 {
		data.Categories = s.store.Config().Collections[0].Categories
	}
	if seasonal := s.store.Config().SeasonCollection(); seasonal != nil {
		data.SeasonCollection = seasonal.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "manager.html", data); err != nil {
		s.log.Error().Err(err).Msg("render manager page")
	}
}

type collectionOption struct {
	Name  string
	Title string
}

// handleItems lists the distinct items of a collection with categories.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	_, items, err := s.store.Load(chi.URLParam(r, "collection"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, catalog.Items(items))
}

// handlePages lists a collection's pages in page order.
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	_, items, err := s.store.Load(chi.URLParam(r, "collection"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, catalog.Pages(items))
}

// handleSeasons returns the season map plus the season-bearing
// collection's pages.
func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	seasonal := s.store.Config().SeasonCollection()
	if seasonal == nil {
		s.respondError(w, errors.New("no season-bearing collection configured"))
		return
	}
	seasons, err := s.store.LoadSeasons()
	if err != nil {
		s.respondError(w, err)
		return
	}
	_, items, err := s.store.Load(seasonal.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, map[string]interface{}{
		"seasons": seasons,
		"pages":   catalog.Pages(items),
	})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	collection := r.FormValue("collection")
	oldName := r.FormValue("old_name")
	newName := strings.TrimSpace(r.FormValue("new_name"))

	if oldName == "" || newName == "" {
		s.redirect(w, r, "Please select an item and enter a new name", false)
		return
	}
	if oldName == newName {
		s.redirect(w, r, "New name is the same as old name", false)
		return
	}

	err := s.store.Update(collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		if catalog.Rename(items, oldName, newName) == 0 {
			return nil, nil, fmt.Errorf("item %q %w", oldName, storage.ErrNotFound)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.redirect(w, r, err.Error(), false)
		return
	}
	s.redirect(w, r, fmt.Sprintf("Renamed %q to %q", oldName, newName), true)
}

// handleDeletePages deletes a comma-separated batch of pages.
func (s *Server) handleDeletePages(w http.ResponseWriter, r *http.Request) {
	collection := r.FormValue("collection")
	pagesRaw := r.FormValue("pages")
	if pagesRaw == "" {
		s.redirect(w, r, "Please select pages to delete", false)
		return
	}

	var pages []models.PageLabel
	for _, raw := range strings.Split(pagesRaw, ",") {
		page, err := models.ParsePageLabel(raw)
		if err != nil {
			s.redirect(w, r, err.Error(), false)
			return
		}
		pages = append(pages, page)
	}

	c, ok := s.store.Config().Collection(collection)
	if !ok {
		s.redirect(w, r, "Invalid collection", false)
		return
	}

	err := s.store.Update(collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		for _, page := range pages {
			catalog.DeletePage(items, page)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.redirect(w, r, err.Error(), false)
		return
	}

	if c.HasSeasons {
		err = s.store.UpdateSeasons(func(seasons models.SeasonMap) (models.SeasonMap, error) {
			for _, page := range pages {
				delete(seasons, page)
			}
			return seasons, nil
		})
		if err != nil {
			s.redirect(w, r, err.Error(), false)
			return
		}
	}

	s.redirect(w, r, fmt.Sprintf("Deleted %d pages", len(pages)), true)
}

// handleUpdateSeasons retags a batch of pages; fall+winter checked together
// means "both".
func (s *Server) handleUpdateSeasons(w http.ResponseWriter, r *http.Request) {
	pagesRaw := r.FormValue("pages")
	fall := r.FormValue("fall") == "1"
	winter := r.FormValue("winter") == "1"

	if pagesRaw == "" {
		s.redirect(w, r, "Please select pages to update", false)
		return
	}
	if !fall && !winter {
		s.redirect(w, r, "Please select at least one season", false)
		return
	}

	season := models.SeasonWinter
	switch {
	case fall && winter:
		season = models.SeasonBoth
	case fall:
		season = models.SeasonFall
	}

	var pages []models.PageLabel
	for _, raw := range strings.Split(pagesRaw, ",") {
		page, err := models.ParsePageLabel(raw)
		if err != nil {
			s.redirect(w, r, err.Error(), false)
			return
		}
		pages = append(pages, page)
	}

	err := s.store.UpdateSeasons(func(seasons models.SeasonMap) (models.SeasonMap, error) {
		for _, page := range pages {
			seasons[page] = season
		}
		return seasons, nil
	})
	if err != nil {
		s.redirect(w, r, err.Error(), false)
		return
	}
	s.redirect(w, r, fmt.Sprintf("Updated %d pages to %s", len(pages), season), true)
}

func (s *Server) handleChangeCategory(w http.ResponseWriter, r *http.Request) {
	collection := r.FormValue("collection")
	itemName := r.FormValue("item_name")
	newCategory := r.FormValue("new_category")

	if itemName == "" {
		s.redirect(w, r, "Please select an item", false)
		return
	}

	updated := 0
	err := s.store.Update(collection, func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		updated = catalog.SetCategory(items, itemName, newCategory)
		if updated == 0 {
			return nil, nil, fmt.Errorf("item %q %w", itemName, storage.ErrNotFound)
		}
		return catalog.RebuildIndex(items), items, nil
	})
	if err != nil {
		s.redirect(w, r, err.Error(), false)
		return
	}
	s.redirect(w, r, fmt.Sprintf("Changed category of %q to %s (%d occurrences)", itemName, newCategory, updated), true)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, message string, success bool) {
	target := fmt.Sprintf("/?message=%s&success=%t", url.QueryEscape(message), success)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	s.log.Error().Err(err).Msg("request failed")
	status := http.StatusInternalServerError
	if errors.Is(err, storage.ErrUnknownCollection) {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
