// Package config loads the lookbook configuration from an INI file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Collection describes one seasonal catalog grouping and where its data
// files live.
type Collection struct {
	Name          string
	Title         string
	IndexFile     string
	PageItemsFile string
	ImageDir      string
	Categories    []string
	// HasSeasons marks the one collection whose pages carry seasonal
	// tags (fall/winter/both).
	HasSeasons bool
}

// Config is the full application configuration.
type Config struct {
	Collections []Collection
	SeasonsFile string
	BackupDir   string
	ServeAddr   string
	ManageAddr  string
}

var defaultCategories = []string{
	"Tops", "Bottoms", "Outerwear", "Knitwear", "Footwear",
	"Suits", "Layering", "Accessories", "Other",
}

// Default returns the built-in configuration: summer, spring and fw
// collections under dataDir, mirroring the layout the extraction step
// produces.
func Default(dataDir string) *Config {
	cfg := &Config{
		SeasonsFile: filepath.Join(dataDir, "page_seasons.json"),
		BackupDir:   filepath.Join(dataDir, "backups"),
		ServeAddr:   getEnv("LOOKBOOK_ADDR", ":5001"),
		ManageAddr:  getEnv("LOOKBOOK_MANAGE_ADDR", ":5002"),
	}
	for _, c := range []struct {
		name, title string
		seasons     bool
	}{
		{"summer", "Summer", false},
		{"spring", "Spring", false},
		{"fw", "Fall/Winter", true},
	} {
		cfg.Collections = append(cfg.Collections, Collection{
			Name:          c.name,
			Title:         c.title,
			IndexFile:     filepath.Join(dataDir, c.name, "clothing_index.json"),
			PageItemsFile: filepath.Join(dataDir, c.name, "page_items.json"),
			ImageDir:      filepath.Join(dataDir, c.name, "pages"),
			Categories:    defaultCategories,
			HasSeasons:    c.seasons,
		})
	}
	return cfg
}

// Load reads configuration from an INI file:
//
//	[server]
//	serve_addr  = :5001
//	manage_addr = :5002
//
//	[catalog]
//	collections  = summer, spring, fw
//	seasons_file = data/page_seasons.json
//	backup_dir   = data/backups
//
//	[fw]
//	title           = Fall/Winter
//	index_file      = data/fw/clothing_index.json
//	page_items_file = data/fw/page_items.json
//	image_dir       = data/fw/pages
//	seasons         = true
func Load(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	server := f.Section("server")
	catalog := f.Section("catalog")

	cfg := &Config{
		ServeAddr:   server.Key("serve_addr").MustString(getEnv("LOOKBOOK_ADDR", ":5001")),
		ManageAddr:  server.Key("manage_addr").MustString(getEnv("LOOKBOOK_MANAGE_ADDR", ":5002")),
		SeasonsFile: catalog.Key("seasons_file").String(),
		BackupDir:   catalog.Key("backup_dir").MustString("backups"),
	}

	names := catalog.Key("collections").Strings(",")
	if len(names) == 0 {
		return nil, fmt.Errorf("config %s: [catalog] collections is empty", path)
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		sec := f.Section(name)
		c := Collection{
			Name:          name,
			Title:         sec.Key("title").MustString(name),
			IndexFile:     sec.Key("index_file").String(),
			PageItemsFile: sec.Key("page_items_file").String(),
			ImageDir:      sec.Key("image_dir").String(),
			Categories:    sec.Key("categories").Strings(","),
			HasSeasons:    sec.Key("seasons").MustBool(false),
		}
		if c.IndexFile == "" || c.PageItemsFile == "" {
			return nil, fmt.Errorf("config %s: collection %q needs index_file and page_items_file", path, name)
		}
		if len(c.Categories) == 0 {
			c.Categories = defaultCategories
		}
		cfg.Collections = append(cfg.Collections, c)
	}

	if seasonal := cfg.SeasonCollection(); seasonal != nil && cfg.SeasonsFile == "" {
		return nil, fmt.Errorf("config %s: collection %q has seasons but [catalog] seasons_file is unset", path, seasonal.Name)
	}
	return cfg, nil
}

// Collection looks up a collection by name.
func (c *Config) Collection(name string) (*Collection, bool) {
	for i := range c.Collections {
		if c.Collections[i].Name == name {
			return &c.Collections[i], true
		}
	}
	return nil, false
}

// SeasonCollection returns the season-bearing collection, or nil when no
// collection carries seasons.
func (c *Config) SeasonCollection() *Collection {
	for i := range c.Collections {
		if c.Collections[i].HasSeasons {
			return &c.Collections[i]
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
