package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/database"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

const queryTimeout = 10 * time.Second

var _ SettingsRepository = (*DatabaseSettingsRepository)(nil)

// DatabaseSettingsRepository implements SettingsRepository using PostgreSQL
type DatabaseSettingsRepository struct {
	db  *database.DB
	log *logrus.Entry
}

// NewDatabaseSettingsRepository creates a new database-backed settings repository
func NewDatabaseSettingsRepository(db *database.DB, log *logger.Logger) *DatabaseSettingsRepository {
	return &DatabaseSettingsRepository{
		db:  db,
		log: log.Component("settings-store"),
	}
}

// Initialize runs the embedded migrations
func (r *DatabaseSettingsRepository) Initialize(ctx context.Context) error {
	if err := r.db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadAll returns every guild record
func (r *DatabaseSettingsRepository) LoadAll(ctx context.Context) ([]*entities.GuildSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.Queries.ListGuilds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list guilds: %w", apperrors.ErrStorageUnavailable, err)
	}

	settings := make([]*entities.GuildSettings, 0, len(rows))
	for _, row := range rows {
		s, err := entities.RestoreGuildSettings(row.ID, row.Volume, row.Lang, row.SearchMode)
		if err != nil {
			r.log.WithError(err).WithField("guild", row.ID).Warn("Skipping unreadable guild row")
			continue
		}
		settings = append(settings, s)
	}

	return settings, nil
}

// Insert adds a guild; existing rows are kept
func (r *DatabaseSettingsRepository) Insert(ctx context.Context, settings *entities.GuildSettings) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.Queries.InsertGuild(ctx, database.InsertGuildParams{
		ID:         settings.GuildID.String(),
		Volume:     settings.Volume,
		Lang:       int32(settings.Language),
		SearchMode: int32(settings.SearchMode),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to insert guild: %w", apperrors.ErrStorageUnavailable, err)
	}

	return nil
}

// UpdateVolume stores a new volume fraction
func (r *DatabaseSettingsRepository) UpdateVolume(ctx context.Context, guildID snowflake.ID, volume float64) error {
	return r.update(ctx, "volume", guildID, func(ctx context.Context, id string) (int64, error) {
		return r.db.Queries.UpdateGuildVolume(ctx, database.UpdateGuildVolumeParams{ID: id, Volume: volume})
	})
}

// UpdateLanguage stores a new language code
func (r *DatabaseSettingsRepository) UpdateLanguage(ctx context.Context, guildID snowflake.ID, language valueobjects.Language) error {
	return r.update(ctx, "language", guildID, func(ctx context.Context, id string) (int64, error) {
		return r.db.Queries.UpdateGuildLang(ctx, database.UpdateGuildLangParams{ID: id, Lang: int32(language)})
	})
}

// UpdateSearchMode stores a new search platform code
func (r *DatabaseSettingsRepository) UpdateSearchMode(ctx context.Context, guildID snowflake.ID, mode valueobjects.SearchMode) error {
	return r.update(ctx, "search mode", guildID, func(ctx context.Context, id string) (int64, error) {
		return r.db.Queries.UpdateGuildSearchMode(ctx, database.UpdateGuildSearchModeParams{ID: id, SearchMode: int32(mode)})
	})
}

// Delete deletes a guild record
func (r *DatabaseSettingsRepository) Delete(ctx context.Context, guildID snowflake.ID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if err := r.db.Queries.DeleteGuild(ctx, guildID.String()); err != nil {
		return fmt.Errorf("%w: failed to delete guild: %w", apperrors.ErrStorageUnavailable, err)
	}

	return nil
}

// Close closes the pool
func (r *DatabaseSettingsRepository) Close() error {
	r.db.Close()
	return nil
}

func (r *DatabaseSettingsRepository) update(ctx context.Context, field string, guildID snowflake.ID, exec func(context.Context, string) (int64, error)) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := exec(ctx, guildID.String())
	if err != nil {
		return fmt.Errorf("%w: failed to update %s: %w", apperrors.ErrStorageUnavailable, field, err)
	}
	if affected == 0 {
		return fmt.Errorf("update %s for guild %s: %w", field, guildID, apperrors.ErrGuildNotFound)
	}

	return nil
}
