package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PageLabel identifies a lookbook page. The canonical form is "page_N";
// bare numbers found in legacy data files are normalized on ingestion.
type PageLabel string

// PageLabelFromNum builds the canonical label for a page number.
func PageLabelFromNum(n int) PageLabel {
	return PageLabel("page_" + strconv.Itoa(n))
}

// ParsePageLabel normalizes "page_N" or a bare number to the canonical form.
func ParsePageLabel(s string) (PageLabel, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "page_")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid page label %q", s)
	}
	return PageLabelFromNum(n), nil
}

// Num returns the page number embedded in the label.
func (p PageLabel) Num() int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(p), "page_"))
	if err != nil {
		return 0
	}
	return n
}

func (p PageLabel) String() string {
	return string(p)
}

// MarshalText makes map keys and slice entries serialize canonically.
func (p PageLabel) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// UnmarshalText normalizes map keys read from JSON objects.
func (p *PageLabel) UnmarshalText(b []byte) error {
	label, err := ParsePageLabel(string(b))
	if err != nil {
		return err
	}
	*p = label
	return nil
}

// UnmarshalJSON accepts both JSON strings and bare numbers, since older
// index files stored fall/winter pages as integers.
func (p *PageLabel) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return p.UnmarshalText([]byte(s))
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid page label %s", b)
	}
	*p = PageLabelFromNum(n)
	return nil
}

// SortPageLabels orders labels by their embedded page number.
func SortPageLabels(labels []PageLabel) {
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].Num() < labels[j].Num()
	})
}
