package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/spf13/cobra"
	"github.com/vuongmanhnghia/iris-music-bot/internal/bot"
	"github.com/vuongmanhnghia/iris-music-bot/internal/config"
	"github.com/vuongmanhnghia/iris-music-bot/internal/telemetry"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

// rootCmd runs the bot when called without a subcommand
var rootCmd = &cobra.Command{
	Use:          "iris",
	Short:        "Discord music bot with per-guild settings and playlists",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and serve commands",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the guild settings schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if err := bot.Migrate(cmd.Context(), cfg, log); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}

var purgeGuildCmd = &cobra.Command{
	Use:   "purge-guild <guild-id>",
	Short: "Delete a guild's settings and playlists while the bot is offline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guildID, err := snowflake.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid guild id %q: %w", args[0], err)
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if err := bot.PurgeGuild(cmd.Context(), cfg, log, guildID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Guild %s purged\n", guildID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, purgeGuildCmd)
}

// setup loads configuration and builds the logger it describes
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FailureDir: cfg.FailureDir,
	})
	return cfg, log, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	log.Infof("Starting %s v%s", cfg.BotName, cfg.Version)
	log.Infof("Settings storage: %s", cfg.StorageDriver)

	shutdownMetrics, err := telemetry.Setup(cmd.Context(), telemetry.Config{
		ServiceName:    cfg.BotName,
		ServiceVersion: cfg.Version,
		Endpoint:       cfg.MetricsEndpoint,
		Interval:       cfg.MetricsInterval,
	})
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownMetrics(ctx); err != nil {
			log.WithError(err).Warn("Failed to flush metrics")
		}
	}()
	if cfg.MetricsEndpoint != "" {
		log.Infof("Exporting metrics to %s", cfg.MetricsEndpoint)
	}

	// Initialize bot
	musicBot, err := bot.New(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// Start bot
	if err := musicBot.Start(cmd.Context()); err != nil {
		musicBot.Stop()
		return fmt.Errorf("failed to start bot: %w", err)
	}

	log.Info("✅ Bot is now running. Press CTRL-C to exit.")

	// Wait for interrupt signal
	<-cmd.Context().Done()

	// Cleanup
	log.Info("Shutting down gracefully...")
	musicBot.Stop()
	log.Info("Bot stopped successfully")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
