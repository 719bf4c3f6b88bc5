package errors

import "errors"

// Common error types for better error handling
var (
	// Storage errors
	ErrStorageUnavailable = errors.New("settings storage unavailable")
	ErrGuildNotFound      = errors.New("guild settings not found")
	ErrIOFailure          = errors.New("playlist storage failure")

	// Playlist errors
	ErrPlaylistNotFound    = errors.New("playlist not found")
	ErrPlaylistLimit       = errors.New("playlist creation limit reached")
	ErrInvalidPlaylistName = errors.New("invalid playlist name")

	// Playback errors
	ErrNotPlaying          = errors.New("no song is currently playing")
	ErrPlaybackUnavailable = errors.New("playback backend unavailable")
	ErrQueueFull           = errors.New("queue is full")

	// Validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidVolume = errors.New("volume must be between 0 and 100")
)

// MessageKey maps an error to the translation key shown to users.
// Keys resolve through the i18n catalog so the reply follows the guild language.
func MessageKey(err error) string {
	switch {
	case errors.Is(err, ErrNotPlaying):
		return "empty_queue"
	case errors.Is(err, ErrPlaybackUnavailable):
		return "playback_unavailable"
	case errors.Is(err, ErrQueueFull):
		return "maximum_queue"
	case errors.Is(err, ErrPlaylistNotFound):
		return "playlist_empty_error"
	case errors.Is(err, ErrPlaylistLimit):
		return "playlist_creation_limit"
	case errors.Is(err, ErrInvalidPlaylistName):
		return "playlist_invalid_name"
	case errors.Is(err, ErrInvalidVolume):
		return "volume_invalid_value"
	case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrIOFailure):
		return "storage_fail"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal_error"
	}
}
