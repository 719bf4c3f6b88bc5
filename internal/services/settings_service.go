package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/cache"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/utils"
	"github.com/vuongmanhnghia/iris-music-bot/internal/validation"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// SettingsService is the only writer of guild settings. Every change goes
// to the store first and reaches the cache only after the store accepted it,
// so the store stays authoritative and a restart rebuilds the cache from it.
type SettingsService struct {
	store   repositories.SettingsRepository
	cache   *cache.GuildCache
	locks   utils.KeyedMutex[snowflake.ID]
	joins   singleflight.Group
	metrics *settingsMetrics
	log     *logrus.Entry
}

// NewSettingsService creates a new settings service
func NewSettingsService(store repositories.SettingsRepository, guilds *cache.GuildCache, log *logger.Logger) *SettingsService {
	return &SettingsService{
		store:   store,
		cache:   guilds,
		metrics: newSettingsMetrics(),
		log:     log.Component("settings"),
	}
}

// Initialize prepares the schema and seeds the cache with every stored guild.
// Commands must not be served before it returns nil.
func (s *SettingsService) Initialize(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize settings store: %w", err)
	}

	all, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guild settings: %w", err)
	}

	s.cache.Load(all)
	s.log.WithField("guilds", len(all)).Info("Guild settings loaded")
	return nil
}

// Get returns the guild's settings, or the defaults for an unknown guild
func (s *SettingsService) Get(guildID snowflake.ID) *entities.GuildSettings {
	return s.cache.Get(guildID)
}

// EnsureGuild provisions a guild with default settings unless it is already
// known. Concurrent first contacts for one guild share a single store insert.
func (s *SettingsService) EnsureGuild(ctx context.Context, guildID snowflake.ID) (*entities.GuildSettings, error) {
	if settings, ok := s.cache.Lookup(guildID); ok {
		return settings, nil
	}

	v, err, _ := s.joins.Do(guildID.String(), func() (interface{}, error) {
		unlock := s.locks.Lock(guildID)
		defer unlock()

		if settings, ok := s.cache.Lookup(guildID); ok {
			return settings, nil
		}

		settings := entities.NewGuildSettings(guildID)
		if err := s.store.Insert(ctx, settings); err != nil {
			return nil, err
		}
		s.cache.Insert(settings)

		s.log.WithField("guild", guildID).Info("Guild provisioned")
		return settings, nil
	})
	if err != nil {
		s.log.WithError(err).WithField("guild", guildID).Error("Failed to provision guild")
		return nil, err
	}

	return v.(*entities.GuildSettings).Clone(), nil
}

// UpdateVolume stores a volume given as a percentage between 0 and 100
func (s *SettingsService) UpdateVolume(ctx context.Context, guildID snowflake.ID, percent int) error {
	if err := validation.ValidateVolume(percent); err != nil {
		return fmt.Errorf("volume %d: %w", percent, err)
	}

	volume := float64(percent) / 100
	return s.update(ctx, guildID, entities.VolumeUpdate{Volume: volume}, func(ctx context.Context) error {
		return s.store.UpdateVolume(ctx, guildID, volume)
	})
}

// UpdateLanguage stores the reply language
func (s *SettingsService) UpdateLanguage(ctx context.Context, guildID snowflake.ID, language valueobjects.Language) error {
	if !language.IsValid() {
		return fmt.Errorf("%w: unknown language %d", apperrors.ErrInvalidInput, int32(language))
	}

	return s.update(ctx, guildID, entities.LanguageUpdate{Language: language}, func(ctx context.Context) error {
		return s.store.UpdateLanguage(ctx, guildID, language)
	})
}

// UpdateSearchMode stores the search platform
func (s *SettingsService) UpdateSearchMode(ctx context.Context, guildID snowflake.ID, mode valueobjects.SearchMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown search mode %d", apperrors.ErrInvalidInput, int32(mode))
	}

	return s.update(ctx, guildID, entities.SearchModeUpdate{SearchMode: mode}, func(ctx context.Context) error {
		return s.store.UpdateSearchMode(ctx, guildID, mode)
	})
}

// SetListMessage records the guild's current listing message and returns the
// one it replaces. Only the cache holds it.
func (s *SettingsService) SetListMessage(guildID snowflake.ID, messageID *snowflake.ID) *snowflake.ID {
	unlock := s.locks.Lock(guildID)
	defer unlock()

	var previous *snowflake.ID
	if current, ok := s.cache.Lookup(guildID); ok {
		previous = current.ListMessageID
	}
	s.cache.SetField(guildID, entities.ListMessageUpdate{MessageID: messageID})
	return previous
}

// Forget deletes the stored record and drops the cache entry. The cache entry
// is dropped even when the store delete fails.
func (s *SettingsService) Forget(ctx context.Context, guildID snowflake.ID) error {
	unlock := s.locks.Lock(guildID)
	defer unlock()

	err := s.store.Delete(ctx, guildID)
	s.cache.Remove(guildID)
	return err
}

// update runs the store write and, only when it succeeds, the cache write.
// Both happen under the guild lock so writes to one guild are linearized.
func (s *SettingsService) update(ctx context.Context, guildID snowflake.ID, change entities.FieldUpdate, write func(context.Context) error) error {
	if _, err := s.EnsureGuild(ctx, guildID); err != nil {
		return err
	}

	unlock := s.locks.Lock(guildID)
	defer unlock()

	field := change.Field().String()
	current, ok := s.cache.Lookup(guildID)
	if !ok {
		// Forgotten between provisioning and the lock
		return fmt.Errorf("update %s for guild %s: %w", field, guildID, apperrors.ErrGuildNotFound)
	}

	err := write(ctx)
	if errors.Is(err, apperrors.ErrGuildNotFound) {
		// The row vanished behind the cache; restore it and try once more
		s.log.WithField("guild", guildID).Warn("Guild missing from store, re-inserting")
		if err = s.store.Insert(ctx, current); err == nil {
			err = write(ctx)
		}
	}

	s.metrics.record(field, err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"guild": guildID,
			"field": field,
		}).Error("Failed to update guild settings")
		return err
	}

	s.cache.SetField(guildID, change)
	return nil
}
