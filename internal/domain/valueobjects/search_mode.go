package valueobjects

import (
	"fmt"
	"strings"
)

// SearchMode selects the platform used for plain-text track searches.
// Values are persisted as integer codes.
type SearchMode int32

const (
	SearchModeYouTube    SearchMode = 1
	SearchModeSoundCloud SearchMode = 2
)

// DefaultSearchMode is used for guilds without an explicit choice
const DefaultSearchMode = SearchModeYouTube

// String returns the string representation
func (m SearchMode) String() string {
	switch m {
	case SearchModeYouTube:
		return "YouTube"
	case SearchModeSoundCloud:
		return "SoundCloud"
	}
	return fmt.Sprintf("SearchMode(%d)", int32(m))
}

// IsValid checks if the search mode is known
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeYouTube, SearchModeSoundCloud:
		return true
	}
	return false
}

// ParseSearchMode parses a platform name
func ParseSearchMode(input string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "youtube", "yt":
		return SearchModeYouTube, nil
	case "soundcloud", "sc":
		return SearchModeSoundCloud, nil
	}
	return DefaultSearchMode, fmt.Errorf("unknown search platform %q", input)
}
