package models

import (
	"encoding/json"
	"fmt"
)

// Occurrence is a single appearance of an item on a page. The data files
// store it either as a bare name string or as {"name": ..., "category": ...};
// both shapes round-trip unchanged.
type Occurrence struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Index maps an item name to the sorted pages it appears on. It is always
// derived from PageItems, never edited directly.
type Index map[string][]PageLabel

// PageItems is the authoritative page -> occurrences mapping.
type PageItems map[PageLabel][]Occurrence

// SeasonMap assigns a season to each page of the season-bearing collection.
type SeasonMap map[PageLabel]Season

func (o *Occurrence) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		o.Name = name
		o.Category = ""
		return nil
	}
	type occurrence Occurrence
	var v occurrence
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid item occurrence %s", b)
	}
	*o = Occurrence(v)
	return nil
}

// MarshalJSON writes a bare string while no category is attached, so files
// that never carried categories keep their original shape.
func (o Occurrence) MarshalJSON() ([]byte, error) {
	if o.Category == "" {
		return json.Marshal(o.Name)
	}
	type occurrence Occurrence
	return json.Marshal(occurrence(o))
}
