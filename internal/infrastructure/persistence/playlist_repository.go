package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/utils"
	"github.com/vuongmanhnghia/iris-music-bot/internal/validation"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

var _ repositories.PlaylistRepositoryInterface = (*PlaylistRepository)(nil)

const tempSuffix = ".tmp"

// PlaylistConfig configures the file-backed playlist store
type PlaylistConfig struct {
	BasePath    string
	MaxPerGuild int
	CacheSize   int
	CacheTTL    time.Duration
}

type playlistKey struct {
	guildID snowflake.ID
	name    string
}

// PlaylistRepository stores playlists as one text file per name inside a
// directory per guild. Writes go through a temp file and a rename, so a
// reader sees either the old or the new content.
type PlaylistRepository struct {
	basePath    string
	maxPerGuild int
	locks       utils.KeyedMutex[snowflake.ID]
	cache       *utils.SmartCache[playlistKey, []string]
	metrics     *playlistMetrics
	log         *logrus.Entry
}

// NewPlaylistRepository creates a new playlist repository
func NewPlaylistRepository(cfg PlaylistConfig, log *logger.Logger) (*PlaylistRepository, error) {
	if cfg.MaxPerGuild <= 0 {
		return nil, fmt.Errorf("max playlists per guild must be positive, got %d", cfg.MaxPerGuild)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 256
	}

	// Ensure base path exists
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create playlist directory: %w", err)
	}

	return &PlaylistRepository{
		basePath:    cfg.BasePath,
		maxPerGuild: cfg.MaxPerGuild,
		cache:       utils.NewSmartCache[playlistKey, []string](cfg.CacheSize, cfg.CacheTTL),
		metrics:     newPlaylistMetrics(),
		log:         log.Component("playlist_store"),
	}, nil
}

// StartCacheCleanup evicts expired cached playlists every interval until stop closes
func (r *PlaylistRepository) StartCacheCleanup(interval time.Duration, stop <-chan struct{}) {
	r.cache.StartCleanupWorker(interval, stop)
}

// Save writes a playlist. The existence and capacity checks happen before
// any bytes are written, so a rejected save leaves every file untouched.
func (r *PlaylistRepository) Save(playlist *entities.Playlist) (valueobjects.SaveResult, error) {
	if err := validation.ValidatePlaylistName(playlist.Name); err != nil {
		r.metrics.record("save", valueobjects.SaveFail.String())
		return valueobjects.SaveFail, err
	}

	for _, track := range playlist.Tracks {
		if !entities.ValidTrack(track) {
			r.metrics.record("save", valueobjects.SaveFail.String())
			return valueobjects.SaveFail, fmt.Errorf("%w: track reference %q is blank or padded", apperrors.ErrInvalidInput, track)
		}
	}

	unlock := r.locks.Lock(playlist.GuildID)
	defer unlock()

	result, err := r.saveLocked(playlist)
	r.metrics.record("save", result.String())
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"guild":    playlist.GuildID,
			"playlist": playlist.Name,
		}).Error("Failed to save playlist")
		return valueobjects.SaveFail, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}

	return result, nil
}

func (r *PlaylistRepository) saveLocked(playlist *entities.Playlist) (valueobjects.SaveResult, error) {
	dir := r.guildDir(playlist.GuildID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return valueobjects.SaveFail, fmt.Errorf("failed to create guild directory: %w", err)
	}

	filePath := filepath.Join(dir, playlist.Name)
	result := valueobjects.SaveNew

	_, err := os.Stat(filePath)
	switch {
	case err == nil:
		result = valueobjects.SaveOverwrite
	case errors.Is(err, fs.ErrNotExist):
		names, err := r.listLocked(playlist.GuildID)
		if err != nil {
			return valueobjects.SaveFail, err
		}
		if len(names) >= r.maxPerGuild {
			r.log.WithFields(logrus.Fields{
				"guild":    playlist.GuildID,
				"playlist": playlist.Name,
				"limit":    r.maxPerGuild,
			}).Debug("Playlist creation limit reached")
			return valueobjects.SaveCreationLimit, nil
		}
	default:
		return valueobjects.SaveFail, fmt.Errorf("failed to stat playlist file: %w", err)
	}

	data, err := playlist.MarshalText()
	if err != nil {
		return valueobjects.SaveFail, fmt.Errorf("failed to encode playlist: %w", err)
	}

	if err := writeFileAtomic(dir, filePath, data); err != nil {
		return valueobjects.SaveFail, err
	}

	r.cache.Set(playlistKey{playlist.GuildID, playlist.Name}, cloneTracks(playlist.Tracks))
	return result, nil
}

// writeFileAtomic writes data to a hidden temp file in dir and renames it over path
func writeFileAtomic(dir, path string, data []byte) error {
	tempPath := filepath.Join(dir, "."+uuid.NewString()+tempSuffix)
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Rename for atomicity
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Load returns the tracks of a playlist. A missing playlist returns found=false
// with a nil error; an existing empty playlist returns found=true.
func (r *PlaylistRepository) Load(guildID snowflake.ID, name string) ([]string, bool, error) {
	if validation.ValidatePlaylistName(name) != nil {
		return nil, false, nil
	}

	key := playlistKey{guildID, name}
	if tracks, ok := r.cache.Get(key); ok {
		return cloneTracks(tracks), true, nil
	}

	// Populate under the guild lock so a concurrent save cannot be shadowed
	// by an older read landing in the cache afterwards.
	unlock := r.locks.Lock(guildID)
	defer unlock()

	if tracks, ok := r.cache.Get(key); ok {
		return cloneTracks(tracks), true, nil
	}

	data, err := os.ReadFile(filepath.Join(r.guildDir(guildID), name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		r.log.WithError(err).WithFields(logrus.Fields{
			"guild":    guildID,
			"playlist": name,
		}).Error("Failed to read playlist")
		return nil, false, fmt.Errorf("%w: failed to read playlist file: %w", apperrors.ErrIOFailure, err)
	}

	tracks, err := entities.ParseTracks(data)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"guild":    guildID,
			"playlist": name,
		}).Error("Failed to parse playlist")
		return nil, false, fmt.Errorf("%w: failed to parse playlist file: %w", apperrors.ErrIOFailure, err)
	}

	r.cache.Set(key, tracks)
	return cloneTracks(tracks), true, nil
}

// Delete removes one playlist
func (r *PlaylistRepository) Delete(guildID snowflake.ID, name string) (valueobjects.DeleteResult, error) {
	if validation.ValidatePlaylistName(name) != nil {
		r.metrics.record("delete", valueobjects.DeleteNotFound.String())
		return valueobjects.DeleteNotFound, nil
	}

	unlock := r.locks.Lock(guildID)
	defer unlock()

	r.cache.Delete(playlistKey{guildID, name})

	err := os.Remove(filepath.Join(r.guildDir(guildID), name))
	switch {
	case err == nil:
		r.metrics.record("delete", valueobjects.DeleteSuccess.String())
		return valueobjects.DeleteSuccess, nil
	case errors.Is(err, fs.ErrNotExist):
		r.metrics.record("delete", valueobjects.DeleteNotFound.String())
		return valueobjects.DeleteNotFound, nil
	default:
		r.metrics.record("delete", valueobjects.DeleteFail.String())
		r.log.WithError(err).WithFields(logrus.Fields{
			"guild":    guildID,
			"playlist": name,
		}).Error("Failed to delete playlist")
		return valueobjects.DeleteFail, fmt.Errorf("%w: failed to delete playlist: %w", apperrors.ErrIOFailure, err)
	}
}

// Clear removes the whole guild directory and reports whether it held any playlist
func (r *PlaylistRepository) Clear(guildID snowflake.ID) (bool, error) {
	unlock := r.locks.Lock(guildID)
	defer unlock()

	r.cache.DeleteFunc(func(key playlistKey) bool {
		return key.guildID == guildID
	})

	names, err := r.listLocked(guildID)
	if err != nil {
		r.log.WithError(err).WithField("guild", guildID).Error("Failed to list playlists for clear")
		return false, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}

	if err := os.RemoveAll(r.guildDir(guildID)); err != nil {
		r.log.WithError(err).WithField("guild", guildID).Error("Failed to clear playlists")
		return false, fmt.Errorf("%w: failed to clear playlists: %w", apperrors.ErrIOFailure, err)
	}

	r.metrics.record("clear", strconv.FormatBool(len(names) > 0))
	return len(names) > 0, nil
}

// List returns all playlist names for a guild, sorted
func (r *PlaylistRepository) List(guildID snowflake.ID) ([]string, error) {
	names, err := r.listLocked(guildID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err)
	}
	return names, nil
}

// listLocked reads the guild directory. Callers comparing the count against
// the cap must hold the guild lock.
func (r *PlaylistRepository) listLocked(guildID snowflake.ID) ([]string, error) {
	files, err := os.ReadDir(r.guildDir(guildID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read playlist directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := file.Name()
		// Hidden files are in-flight temp writes
		if strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// guildDir returns the directory holding a guild's playlists
func (r *PlaylistRepository) guildDir(guildID snowflake.ID) string {
	return filepath.Join(r.basePath, guildID.String())
}

func cloneTracks(tracks []string) []string {
	out := make([]string, len(tracks))
	copy(out, tracks)
	return out
}
