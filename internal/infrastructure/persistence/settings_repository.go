package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sirupsen/logrus"
	"github.com/vuongmanhnghia/iris-music-bot/internal/database"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

var _ repositories.SettingsRepository = (*SettingsRepository)(nil)

// SettingsRepository persists guild settings in a local SQLite file
type SettingsRepository struct {
	db  *sql.DB
	log *logrus.Entry
}

// OpenSettingsRepository opens (creating if needed) the settings database at path
func OpenSettingsRepository(ctx context.Context, path string, log *logger.Logger) (*SettingsRepository, error) {
	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return &SettingsRepository{db: db, log: log.Component("settings-store")}, nil
}

// Initialize ensures the Guilds table exists
func (r *SettingsRepository) Initialize(ctx context.Context) error {
	if err := database.Migrate(ctx, r.db, database.DialectSQLite, r.log); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// LoadAll returns every guild record
func (r *SettingsRepository) LoadAll(ctx context.Context) ([]*entities.GuildSettings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, volume, lang, search_mode FROM Guilds ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list guilds: %w", apperrors.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	settings := make([]*entities.GuildSettings, 0)
	for rows.Next() {
		var (
			id         string
			volume     float64
			lang, mode int32
		)
		if err := rows.Scan(&id, &volume, &lang, &mode); err != nil {
			return nil, fmt.Errorf("%w: failed to scan guild: %w", apperrors.ErrStorageUnavailable, err)
		}

		s, err := entities.RestoreGuildSettings(id, volume, lang, mode)
		if err != nil {
			r.log.WithError(err).WithField("guild", id).Warn("Skipping unreadable guild row")
			continue
		}
		settings = append(settings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read guilds: %w", apperrors.ErrStorageUnavailable, err)
	}

	return settings, nil
}

// Insert adds a guild; existing rows are kept
func (r *SettingsRepository) Insert(ctx context.Context, settings *entities.GuildSettings) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO Guilds (id, volume, lang, search_mode) VALUES (?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`,
		settings.GuildID.String(),
		settings.Volume,
		int32(settings.Language),
		int32(settings.SearchMode),
	)
	if err != nil {
		return fmt.Errorf("%w: failed to insert guild: %w", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// UpdateVolume stores a new volume fraction
func (r *SettingsRepository) UpdateVolume(ctx context.Context, guildID snowflake.ID, volume float64) error {
	return r.update(ctx, "volume", `UPDATE Guilds SET volume = ? WHERE id = ?`, volume, guildID)
}

// UpdateLanguage stores a new language code
func (r *SettingsRepository) UpdateLanguage(ctx context.Context, guildID snowflake.ID, language valueobjects.Language) error {
	return r.update(ctx, "language", `UPDATE Guilds SET lang = ? WHERE id = ?`, int32(language), guildID)
}

// UpdateSearchMode stores a new search platform code
func (r *SettingsRepository) UpdateSearchMode(ctx context.Context, guildID snowflake.ID, mode valueobjects.SearchMode) error {
	return r.update(ctx, "search mode", `UPDATE Guilds SET search_mode = ? WHERE id = ?`, int32(mode), guildID)
}

// Delete removes a guild record
func (r *SettingsRepository) Delete(ctx context.Context, guildID snowflake.ID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM Guilds WHERE id = ?`, guildID.String()); err != nil {
		return fmt.Errorf("%w: failed to delete guild: %w", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}

// Close closes the database handle
func (r *SettingsRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *SettingsRepository) update(ctx context.Context, field, query string, value interface{}, guildID snowflake.ID) error {
	result, err := r.db.ExecContext(ctx, query, value, guildID.String())
	if err != nil {
		return fmt.Errorf("%w: failed to update %s: %w", apperrors.ErrStorageUnavailable, field, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to update %s: %w", apperrors.ErrStorageUnavailable, field, err)
	}
	if affected == 0 {
		return fmt.Errorf("update %s for guild %s: %w", field, guildID, apperrors.ErrGuildNotFound)
	}
	return nil
}
