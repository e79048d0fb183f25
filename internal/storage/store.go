// Package storage persists collection data as plain JSON files, the same
// files the extraction step writes: clothing_index.json, page_items.json
// and page_seasons.json. Every overwrite is preceded by a timestamped
// backup copy; backups are never pruned.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/meur/lookbook/internal/config"
	"github.com/meur/lookbook/internal/models"
)

var (
	// ErrNotFound reports a missing item or page.
	ErrNotFound = errors.New("not found")
	// ErrNoOp reports a mutation that would change nothing.
	ErrNoOp = errors.New("no-op")
	// ErrUnknownCollection reports a collection name outside the config.
	ErrUnknownCollection = errors.New("unknown collection")
)

// Store handles all data file operations. Mutations run whole
// read-modify-write cycles under a per-collection mutex, so two edits to
// the same collection can never interleave.
type Store struct {
	cfg *config.Config
	log zerolog.Logger

	mu       map[string]*sync.Mutex
	seasonMu sync.Mutex
}

// New creates a Store over the configured collections.
func New(cfg *config.Config, log zerolog.Logger) *Store {
	s := &Store{
		cfg: cfg,
		log: log,
		mu:  make(map[string]*sync.Mutex, len(cfg.Collections)),
	}
	for _, c := range cfg.Collections {
		s.mu[c.Name] = &sync.Mutex{}
	}
	return s
}

// Config exposes the configuration the store was built from.
func (s *Store) Config() *config.Config {
	return s.cfg
}

// Load reads a collection's index and page items. Missing files degrade to
// empty maps so the server comes up before any data exists; a warning is
// logged because the same symptom can also mean a misconfigured path.
func (s *Store) Load(collection string) (models.Index, models.PageItems, error) {
	c, ok := s.cfg.Collection(collection)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	index := models.Index{}
	if err := s.readJSON(c.IndexFile, &index); err != nil {
		return nil, nil, fmt.Errorf("load index for %s: %w", collection, err)
	}
	items := models.PageItems{}
	if err := s.readJSON(c.PageItemsFile, &items); err != nil {
		return nil, nil, fmt.Errorf("load page items for %s: %w", collection, err)
	}
	return index, items, nil
}

// Save persists a collection's index and page items, backing up both files
// first.
func (s *Store) Save(collection string, index models.Index, items models.PageItems) error {
	c, ok := s.cfg.Collection(collection)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	if err := s.writeJSON(c.IndexFile, index); err != nil {
		return fmt.Errorf("save index for %s: %w", collection, err)
	}
	if err := s.writeJSON(c.PageItemsFile, items); err != nil {
		return fmt.Errorf("save page items for %s: %w", collection, err)
	}
	return nil
}

// Update runs fn under the collection's mutex with freshly loaded data and
// persists whatever fn returns. When fn errors, nothing is written.
func (s *Store) Update(collection string, fn func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error)) error {
	mu, ok := s.mu[collection]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	mu.Lock()
	defer mu.Unlock()

	index, items, err := s.Load(collection)
	if err != nil {
		return err
	}
	index, items, err = fn(index, items)
	if err != nil {
		return err
	}
	return s.Save(collection, index, items)
}

// LoadSeasons reads the page->season map. A missing file is an empty map.
func (s *Store) LoadSeasons() (models.SeasonMap, error) {
	seasons := models.SeasonMap{}
	if s.cfg.SeasonsFile == "" {
		return seasons, nil
	}
	if err := s.readJSON(s.cfg.SeasonsFile, &seasons); err != nil {
		return nil, fmt.Errorf("load seasons: %w", err)
	}
	return seasons, nil
}

// UpdateSeasons runs fn under the season-map mutex and persists the result.
func (s *Store) UpdateSeasons(fn func(models.SeasonMap) (models.SeasonMap, error)) error {
	s.seasonMu.Lock()
	defer s.seasonMu.Unlock()

	seasons, err := s.LoadSeasons()
	if err != nil {
		return err
	}
	seasons, err = fn(seasons)
	if err != nil {
		return err
	}
	if err := s.writeJSON(s.cfg.SeasonsFile, seasons); err != nil {
		return fmt.Errorf("save seasons: %w", err)
	}
	return nil
}

func (s *Store) readJSON(path string, v any) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Str("path", path).Msg("data file missing, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (s *Store) writeJSON(path string, v any) error {
	if err := s.backup(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// backup copies path into the backup directory as
// <stem>_<YYYYmmdd_HHMMSS><ext> before it gets overwritten. A file that
// does not exist yet has nothing to back up.
func (s *Store) backup(path string) error {
	src, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return err
	}
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext)
	backupPath := filepath.Join(s.cfg.BackupDir, name)

	dst, err := os.Create(backupPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("backup %s: %w", path, err)
	}
	s.log.Debug().Str("file", base).Str("backup", name).Msg("backup written")
	return dst.Close()
}
