package models

import "fmt"

// Season is the seasonal tag assigned to fall/winter pages.
type Season string

const (
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonBoth   Season = "both"
)

// ParseSeason validates a season value from a request.
func ParseSeason(s string) (Season, error) {
	switch Season(s) {
	case SeasonFall, SeasonWinter, SeasonBoth:
		return Season(s), nil
	}
	return "", fmt.Errorf("invalid season %q: must be fall, winter, or both", s)
}

// Matches reports whether a page tagged with s belongs in the view for
// target. Pages tagged "both" belong in every seasonal view.
func (s Season) Matches(target Season) bool {
	return s == target || s == SeasonBoth
}
