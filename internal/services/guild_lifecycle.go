package services

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

// GuildLifecycle provisions and tears down everything a guild owns
type GuildLifecycle struct {
	settings  *SettingsService
	playlists repositories.PlaylistRepositoryInterface
	log       *logrus.Entry
}

// NewGuildLifecycle creates a new lifecycle coordinator
func NewGuildLifecycle(settings *SettingsService, playlists repositories.PlaylistRepositoryInterface, log *logger.Logger) *GuildLifecycle {
	return &GuildLifecycle{
		settings:  settings,
		playlists: playlists,
		log:       log.Component("lifecycle"),
	}
}

// OnGuildJoined creates the default settings record. Repeated joins are no-ops.
func (l *GuildLifecycle) OnGuildJoined(ctx context.Context, guildID snowflake.ID) error {
	_, err := l.settings.EnsureGuild(ctx, guildID)
	return err
}

// OnGuildLeft removes the settings record, the cache entry and every playlist.
// Each step runs even when an earlier one failed; the returned error collects
// all failures.
func (l *GuildLifecycle) OnGuildLeft(ctx context.Context, guildID snowflake.ID) error {
	var result *multierror.Error

	if err := l.settings.Forget(ctx, guildID); err != nil {
		result = multierror.Append(result, fmt.Errorf("settings: %w", err))
	}

	removed, err := l.playlists.Clear(guildID)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("playlists: %w", err))
	}

	entry := l.log.WithFields(logrus.Fields{
		"guild":             guildID,
		"playlists_removed": removed,
	})
	if err := result.ErrorOrNil(); err != nil {
		entry.WithError(err).Error("Guild teardown incomplete")
		return err
	}

	entry.Info("Guild torn down")
	return nil
}
