package repositories

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
)

// SettingsRepository defines the contract for durable guild settings storage.
// Errors wrap ErrStorageUnavailable or ErrGuildNotFound from internal/errors.
type SettingsRepository interface {
	// Initialize creates the schema if needed; safe on every start
	Initialize(ctx context.Context) error

	// LoadAll returns every persisted record
	LoadAll(ctx context.Context) ([]*entities.GuildSettings, error)

	// Insert adds a record; an existing guild is left untouched
	Insert(ctx context.Context, settings *entities.GuildSettings) error

	// UpdateVolume, UpdateLanguage and UpdateSearchMode fail with ErrGuildNotFound
	// when the guild has no record
	UpdateVolume(ctx context.Context, guildID snowflake.ID, volume float64) error
	UpdateLanguage(ctx context.Context, guildID snowflake.ID, language valueobjects.Language) error
	UpdateSearchMode(ctx context.Context, guildID snowflake.ID, mode valueobjects.SearchMode) error

	// Delete removes a record; a missing guild is not an error
	Delete(ctx context.Context, guildID snowflake.ID) error

	// Close releases the connection
	Close() error
}

// PlaylistRepositoryInterface defines the contract for playlist storage.
// Operations report typed outcomes; the error carries diagnostics for Fail.
type PlaylistRepositoryInterface interface {
	// List returns all playlist names for a guild
	List(guildID snowflake.ID) ([]string, error)

	// Load returns the tracks of a playlist; found is false when it does not exist
	Load(guildID snowflake.ID, name string) (tracks []string, found bool, err error)

	// Save writes a playlist, enforcing the per-guild cap for new names
	Save(playlist *entities.Playlist) (valueobjects.SaveResult, error)

	// Delete deletes a playlist by name for a guild
	Delete(guildID snowflake.ID, name string) (valueobjects.DeleteResult, error)

	// Clear removes every playlist of a guild and reports whether any existed
	Clear(guildID snowflake.ID) (bool, error)
}
