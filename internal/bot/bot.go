package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/cache"
	"github.com/vuongmanhnghia/iris-music-bot/internal/commands"
	"github.com/vuongmanhnghia/iris-music-bot/internal/config"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/repositories"
	"github.com/vuongmanhnghia/iris-music-bot/internal/i18n"
	"github.com/vuongmanhnghia/iris-music-bot/internal/infrastructure/persistence"
	"github.com/vuongmanhnghia/iris-music-bot/internal/services"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

const (
	eventTimeout         = 30 * time.Second
	cacheCleanupInterval = 5 * time.Minute
)

// MusicBot represents the Discord music bot
type MusicBot struct {
	config     *config.Config
	logger     *logger.Logger
	session    *discordgo.Session
	store      repositories.SettingsRepository
	playlists  *persistence.PlaylistRepository
	settings   *services.SettingsService
	lifecycle  *services.GuildLifecycle
	cmdHandler *commands.Handler
	stop       chan struct{}
}

// New creates a new MusicBot instance. The settings store is opened here but
// nothing is loaded until Start.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*MusicBot, error) {
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Guild create/delete events drive provisioning and teardown
	session.Identify.Intents = discordgo.IntentsGuilds
	session.StateEnabled = true

	store, err := OpenSettingsStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store: %w", err)
	}

	bot, err := newMusicBot(cfg, log, store, nil)
	if err != nil {
		store.Close()
		return nil, err
	}
	bot.session = session
	log.Warn("No audio backend connected - playback commands are disabled")

	// Register event handlers
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onGuildCreate)
	session.AddHandler(bot.onGuildDelete)
	session.AddHandler(bot.cmdHandler.HandleInteraction)

	return bot, nil
}

// newMusicBot wires the services around an opened store. player may be nil.
func newMusicBot(cfg *config.Config, log *logger.Logger, store repositories.SettingsRepository, player commands.Player) (*MusicBot, error) {
	playlists, err := OpenPlaylistStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist store: %w", err)
	}

	translator, err := i18n.NewTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	settings := services.NewSettingsService(store, cache.NewGuildCache(), log)
	playlistService := services.NewPlaylistService(playlists, cfg.MaxQueueCount, log)

	return &MusicBot{
		config:     cfg,
		logger:     log,
		store:      store,
		playlists:  playlists,
		settings:   settings,
		lifecycle:  services.NewGuildLifecycle(settings, playlists, log),
		cmdHandler: commands.NewHandler(settings, playlistService, translator, player, cfg.MaxPlaylistCount, log),
		stop:       make(chan struct{}),
	}, nil
}

// Start loads every guild into the cache, then opens the gateway. Commands
// are never served from a cache that has not been seeded.
func (b *MusicBot) Start(ctx context.Context) error {
	b.logger.Info("Loading guild settings...")
	if err := b.settings.Initialize(ctx); err != nil {
		return err
	}

	b.playlists.StartCacheCleanup(cacheCleanupInterval, b.stop)

	b.logger.Info("Opening Discord connection...")
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	return nil
}

// Stop stops the bot gracefully
func (b *MusicBot) Stop() {
	b.logger.Info("Shutting down...")

	// Close Discord connection first so no event arrives mid-teardown
	if b.session != nil {
		b.logger.Info("Closing Discord connection...")
		if err := b.session.Close(); err != nil {
			b.logger.WithError(err).Error("Failed to close Discord session")
		}
	}

	close(b.stop)

	if err := b.store.Close(); err != nil {
		b.logger.WithError(err).Error("Failed to close settings store")
	}
}

// onReady is called when the bot is ready
func (b *MusicBot) onReady(s *discordgo.Session, event *discordgo.Ready) {
	b.logger.Infof("✅ Bot is ready! Logged in as %s", event.User.Username)
	b.logger.Infof("📊 Connected to %d guilds", len(event.Guilds))

	if err := s.UpdateGameStatus(0, "🎵 "+b.config.BotName); err != nil {
		b.logger.WithError(err).Warn("Failed to update status")
	}
}

// onGuildCreate fires for every guild at connect and for new joins.
// Provisioning is idempotent so replays cost one cache lookup.
func (b *MusicBot) onGuildCreate(s *discordgo.Session, event *discordgo.GuildCreate) {
	if event.Guild == nil {
		return
	}

	guildID, err := snowflake.Parse(event.ID)
	if err != nil {
		b.logger.WithError(err).WithField("guild", event.ID).Warn("Ignoring guild with invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	if err := b.lifecycle.OnGuildJoined(ctx, guildID); err != nil {
		b.logger.WithError(err).WithField("guild", guildID).Error("Failed to provision guild")
	}
}

// onGuildDelete tears a guild down when the bot is removed. Outages also
// raise this event with Unavailable set; those keep their data.
func (b *MusicBot) onGuildDelete(s *discordgo.Session, event *discordgo.GuildDelete) {
	if event.Guild == nil || event.Unavailable {
		return
	}

	guildID, err := snowflake.Parse(event.ID)
	if err != nil {
		b.logger.WithError(err).WithField("guild", event.ID).Warn("Ignoring guild with invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	// Failures are already logged per step
	_ = b.lifecycle.OnGuildLeft(ctx, guildID)
}

// PurgeGuild runs the guild teardown without a gateway connection
func PurgeGuild(ctx context.Context, cfg *config.Config, log *logger.Logger, guildID snowflake.ID) error {
	store, err := OpenSettingsStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	bot, err := newMusicBot(cfg, log, store, nil)
	if err != nil {
		return err
	}
	if err := bot.settings.Initialize(ctx); err != nil {
		return err
	}

	return bot.lifecycle.OnGuildLeft(ctx, guildID)
}

// Migrate creates or upgrades the settings schema and exits
func Migrate(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	store, err := OpenSettingsStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open settings store: %w", err)
	}
	defer store.Close()

	return store.Initialize(ctx)
}
