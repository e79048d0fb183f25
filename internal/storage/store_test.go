package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/lookbook/internal/config"
	"github.com/meur/lookbook/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Collections: []config.Collection{
			{
				Name:          "summer",
				Title:         "Summer",
				IndexFile:     filepath.Join(dir, "summer", "clothing_index.json"),
				PageItemsFile: filepath.Join(dir, "summer", "page_items.json"),
			},
			{
				Name:          "fw",
				Title:         "Fall/Winter",
				IndexFile:     filepath.Join(dir, "fw", "clothing_index.json"),
				PageItemsFile: filepath.Join(dir, "fw", "page_items.json"),
				HasSeasons:    true,
			},
		},
		SeasonsFile: filepath.Join(dir, "page_seasons.json"),
		BackupDir:   filepath.Join(dir, "backups"),
	}
	return New(cfg, zerolog.Nop())
}

func TestLoadMissingFilesIsEmpty(t *testing.T) {
	s := testStore(t)

	index, items, err := s.Load("summer")
	require.NoError(t, err)
	assert.Empty(t, index)
	assert.Empty(t, items)
}

func TestLoadUnknownCollection(t *testing.T) {
	s := testStore(t)

	_, _, err := s.Load("autumn")
	assert.ErrorIs(t, err, ErrUnknownCollection)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	index := models.Index{"Blue Shirt": {"page_1", "page_2"}}
	items := models.PageItems{
		"page_1": {{Name: "Blue Shirt"}},
		"page_2": {{Name: "Blue Shirt"}, {Name: "Red Hat", Category: "Accessories"}},
	}

	require.NoError(t, s.Save("summer", index, items))

	gotIndex, gotItems, err := s.Load("summer")
	require.NoError(t, err)
	assert.Equal(t, index, gotIndex)
	assert.Equal(t, items, gotItems)
}

func TestSaveKeepsOccurrenceShapes(t *testing.T) {
	s := testStore(t)
	items := models.PageItems{
		"page_1": {{Name: "Blue Shirt"}, {Name: "Red Hat", Category: "Accessories"}},
	}
	require.NoError(t, s.Save("summer", models.Index{}, items))

	raw, err := os.ReadFile(s.cfg.Collections[0].PageItemsFile)
	require.NoError(t, err)

	var decoded map[string][]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	occurrences := decoded["page_1"]
	require.Len(t, occurrences, 2)
	assert.True(t, strings.HasPrefix(string(occurrences[0]), `"`), "bare occurrence should stay a string")
	assert.True(t, strings.HasPrefix(string(occurrences[1]), "{"), "categorized occurrence should be an object")
}

func TestSaveWritesBackup(t *testing.T) {
	s := testStore(t)
	items := models.PageItems{"page_1": {{Name: "Blue Shirt"}}}

	// First save: files do not exist yet, nothing to back up.
	require.NoError(t, s.Save("summer", models.Index{}, items))
	entries, err := os.ReadDir(s.cfg.BackupDir)
	if err == nil {
		assert.Empty(t, entries)
	}

	// Second save backs up both files.
	require.NoError(t, s.Save("summer", models.Index{}, items))
	entries, err = os.ReadDir(s.cfg.BackupDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var stems []string
	for _, e := range entries {
		stems = append(stems, e.Name())
	}
	assert.Regexp(t, `^clothing_index_\d{8}_\d{6}\.json$`, stems[0])
	assert.Regexp(t, `^page_items_\d{8}_\d{6}\.json$`, stems[1])
}

func TestUpdateAbortsOnError(t *testing.T) {
	s := testStore(t)
	items := models.PageItems{"page_1": {{Name: "Blue Shirt"}}}
	require.NoError(t, s.Save("summer", models.Index{"Blue Shirt": {"page_1"}}, items))

	sentinel := errors.New("boom")
	err := s.Update("summer", func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		delete(items, "page_1")
		return index, items, sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	_, got, err := s.Load("summer")
	require.NoError(t, err)
	assert.Contains(t, got, models.PageLabel("page_1"))
}

func TestUpdatePersistsResult(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save("summer", models.Index{}, models.PageItems{"page_1": {{Name: "Blue Shirt"}}}))

	err := s.Update("summer", func(index models.Index, items models.PageItems) (models.Index, models.PageItems, error) {
		items["page_2"] = []models.Occurrence{{Name: "Red Hat"}}
		return index, items, nil
	})
	require.NoError(t, err)

	_, got, err := s.Load("summer")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSeasonsRoundTrip(t *testing.T) {
	s := testStore(t)

	seasons, err := s.LoadSeasons()
	require.NoError(t, err)
	assert.Empty(t, seasons)

	err = s.UpdateSeasons(func(seasons models.SeasonMap) (models.SeasonMap, error) {
		seasons["page_4"] = models.SeasonBoth
		return seasons, nil
	})
	require.NoError(t, err)

	seasons, err = s.LoadSeasons()
	require.NoError(t, err)
	assert.Equal(t, models.SeasonMap{"page_4": models.SeasonBoth}, seasons)
}

func TestLoadLegacyPageNumbers(t *testing.T) {
	s := testStore(t)
	c := s.cfg.Collections[1]
	require.NoError(t, os.MkdirAll(filepath.Dir(c.IndexFile), 0o755))
	// Older fall/winter files stored bare page numbers.
	require.NoError(t, os.WriteFile(c.IndexFile, []byte(`{"Coat": [3, "page_1"]}`), 0o644))
	require.NoError(t, os.WriteFile(c.PageItemsFile, []byte(`{"1": ["Coat"], "page_3": ["Coat"]}`), 0o644))

	index, items, err := s.Load("fw")
	require.NoError(t, err)
	assert.Equal(t, models.Index{"Coat": {"page_3", "page_1"}}, index)
	assert.Contains(t, items, models.PageLabel("page_1"))
	assert.Contains(t, items, models.PageLabel("page_3"))
}
