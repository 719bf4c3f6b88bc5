package bot

import (
	"context"
	"fmt"

	"github.com/vuongmanhnghia/iris-music-bot/internal/config"
	"github.com/vuongmanhnghia/iris-music-bot/internal/database"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/infrastructure/persistence"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

// OpenSettingsStore opens the settings store selected by STORAGE_DRIVER.
// The schema is not touched; call Initialize before use.
func OpenSettingsStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repositories.SettingsRepository, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		store, err := persistence.OpenSettingsRepository(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.DriverPostgres:
		dbCfg := database.DefaultConfig(cfg.DatabaseURL)
		dbCfg.MaxConns = cfg.DBMaxConns
		dbCfg.MinConns = cfg.DBMinConns

		db, err := database.Connect(ctx, dbCfg, log)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
		}
		if err := db.Health(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %w", apperrors.ErrStorageUnavailable, err)
		}

		log.WithFields(db.Stats()).Info("✅ Database connection established")
		return repositories.NewDatabaseSettingsRepository(db, log), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// OpenPlaylistStore opens the file-backed playlist store
func OpenPlaylistStore(cfg *config.Config, log *logger.Logger) (*persistence.PlaylistRepository, error) {
	return persistence.NewPlaylistRepository(persistence.PlaylistConfig{
		BasePath:    cfg.PlaylistDir,
		MaxPerGuild: cfg.MaxPlaylistCount,
		CacheSize:   cfg.PlaylistCacheSize,
		CacheTTL:    cfg.PlaylistCacheTTL,
	}, log)
}
