package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

// TrackQueue is the part of the audio player that playlist loading feeds
type TrackQueue interface {
	QueueLength(guildID snowflake.ID) int
	Enqueue(ctx context.Context, guildID snowflake.ID, track string) error
}

// PlaylistService manages playlist operations
type PlaylistService struct {
	repo     repositories.PlaylistRepositoryInterface
	maxQueue int
	logger   *logrus.Entry
}

// NewPlaylistService creates a new playlist service
func NewPlaylistService(repo repositories.PlaylistRepositoryInterface, maxQueue int, log *logger.Logger) *PlaylistService {
	return &PlaylistService{
		repo:     repo,
		maxQueue: maxQueue,
		logger:   log.Component("playlists"),
	}
}

// List returns all playlist names of a guild
func (s *PlaylistService) List(guildID snowflake.ID) ([]string, error) {
	return s.repo.List(guildID)
}

// Save stores tracks under a name
func (s *PlaylistService) Save(guildID snowflake.ID, name string, tracks []string) (valueobjects.SaveResult, error) {
	result, err := s.repo.Save(entities.NewPlaylist(guildID, name, tracks))
	if err == nil {
		s.logger.WithFields(logrus.Fields{
			"guild":    guildID,
			"playlist": name,
			"tracks":   len(tracks),
			"result":   result,
		}).Info("Playlist saved")
	}
	return result, err
}

// SaveSession stores the current track followed by the queue
func (s *PlaylistService) SaveSession(guildID snowflake.ID, name, current string, queue []string) (valueobjects.SaveResult, error) {
	playlist := entities.NewSessionPlaylist(guildID, name, current, queue)
	if playlist.TotalSongs() == 0 {
		return valueobjects.SaveFail, apperrors.ErrNotPlaying
	}
	return s.Save(guildID, name, playlist.Tracks)
}

// Load returns the tracks of a playlist. A missing playlist is ErrPlaylistNotFound.
func (s *PlaylistService) Load(guildID snowflake.ID, name string) ([]string, error) {
	tracks, found, err := s.repo.Load(guildID, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("playlist %q: %w", name, apperrors.ErrPlaylistNotFound)
	}
	return tracks, nil
}

// LoadInto appends a playlist to the guild's queue until the queue is full and
// returns how many tracks were queued. Tracks the player rejects are skipped.
func (s *PlaylistService) LoadInto(ctx context.Context, guildID snowflake.ID, name string, queue TrackQueue) (int, error) {
	tracks, err := s.Load(guildID, name)
	if err != nil {
		return 0, err
	}
	if len(tracks) == 0 {
		return 0, fmt.Errorf("playlist %q is empty: %w", name, apperrors.ErrPlaylistNotFound)
	}

	if queue.QueueLength(guildID) >= s.maxQueue {
		return 0, apperrors.ErrQueueFull
	}

	added := 0
	for _, track := range tracks {
		if queue.QueueLength(guildID) >= s.maxQueue {
			break
		}
		if err := queue.Enqueue(ctx, guildID, track); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"guild": guildID,
				"track": track,
			}).Warn("Skipping unplayable track")
			continue
		}
		added++
	}

	s.logger.WithFields(logrus.Fields{
		"guild":    guildID,
		"playlist": name,
		"added":    added,
	}).Info("Playlist loaded into queue")

	return added, nil
}

// Delete deletes a playlist
func (s *PlaylistService) Delete(guildID snowflake.ID, name string) (valueobjects.DeleteResult, error) {
	result, err := s.repo.Delete(guildID, name)
	if result == valueobjects.DeleteSuccess {
		s.logger.WithFields(logrus.Fields{
			"guild":    guildID,
			"playlist": name,
		}).Info("Playlist deleted")
	}
	return result, err
}
