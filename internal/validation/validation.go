package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vuongmanhnghia/iris-music-bot/internal/errors"
)

// MaxPlaylistNameLength is counted in characters, not bytes
const MaxPlaylistNameLength = 100

// ValidateVolume validates volume level (0-100)
func ValidateVolume(volume int) error {
	if volume < 0 || volume > 100 {
		return errors.ErrInvalidVolume
	}
	return nil
}

// SanitizeInput sanitizes user input by removing potentially dangerous characters
func SanitizeInput(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}

// ValidatePlaylistName validates a playlist name. Names become file names,
// so separators, control characters and a leading dot are rejected.
func ValidatePlaylistName(name string) error {
	if name != SanitizeInput(name) {
		return fmt.Errorf("%w: playlist name has surrounding whitespace", errors.ErrInvalidPlaylistName)
	}

	if name == "" {
		return fmt.Errorf("%w: playlist name cannot be empty", errors.ErrInvalidPlaylistName)
	}

	if utf8.RuneCountInString(name) > MaxPlaylistNameLength {
		return fmt.Errorf("%w: playlist name too long (max %d characters)", errors.ErrInvalidPlaylistName, MaxPlaylistNameLength)
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: playlist name cannot start with a dot", errors.ErrInvalidPlaylistName)
	}

	for _, r := range name {
		if r == '/' || r == '\\' || unicode.IsControl(r) || r == utf8.RuneError {
			return fmt.Errorf("%w: playlist name contains invalid characters", errors.ErrInvalidPlaylistName)
		}
	}

	return nil
}
