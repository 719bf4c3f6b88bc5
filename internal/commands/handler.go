package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sirupsen/logrus"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/i18n"
	"github.com/vuongmanhnghia/iris-music-bot/internal/services"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

const commandTimeout = 15 * time.Second

// Player is the audio backend as seen by commands
type Player interface {
	services.TrackQueue

	// NowPlaying returns the reference of the current track
	NowPlaying(guildID snowflake.ID) (string, bool)

	// Queue returns the references of the queued tracks in play order
	Queue(guildID snowflake.ID) []string

	SetVolume(ctx context.Context, guildID snowflake.ID, volume float64) error
}

// Handler manages all bot commands
type Handler struct {
	settings     *services.SettingsService
	playlists    *services.PlaylistService
	translator   *i18n.Translator
	player       Player
	maxPlaylists int
	logger       *logrus.Entry
}

// NewHandler creates a new command handler. player may be nil when no audio
// backend is connected.
func NewHandler(
	settings *services.SettingsService,
	playlists *services.PlaylistService,
	translator *i18n.Translator,
	player Player,
	maxPlaylists int,
	log *logger.Logger,
) *Handler {
	return &Handler{
		settings:     settings,
		playlists:    playlists,
		translator:   translator,
		player:       player,
		maxPlaylists: maxPlaylists,
		logger:       log.Component("commands"),
	}
}

// HandleInteraction routes incoming interactions to appropriate handlers
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand || i.GuildID == "" {
		return
	}

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		h.logger.WithError(err).WithField("guild", i.GuildID).Warn("Ignoring interaction with invalid guild id")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	reply := h.Dispatch(ctx, guildID, data)

	if err := respondReply(s, i, reply); err != nil {
		h.logger.WithError(err).WithField("command", data.Name).Error("Failed to send command response")
		return
	}

	if reply.listing {
		h.replaceListMessage(s, i.Interaction, guildID)
	}
}

// listMessageClient is the part of the Discord session that listing replies use
type listMessageClient interface {
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// replaceListMessage remembers the listing just sent and deletes the one it
// replaces, so a channel shows one listing per guild.
func (h *Handler) replaceListMessage(client listMessageClient, interaction *discordgo.Interaction, guildID snowflake.ID) {
	msg, err := client.InteractionResponse(interaction)
	if err != nil {
		h.logger.WithError(err).WithField("guild", guildID).Warn("Failed to fetch listing message")
		return
	}

	messageID, err := snowflake.Parse(msg.ID)
	if err != nil {
		h.logger.WithError(err).WithField("guild", guildID).Warn("Listing message has an invalid id")
		return
	}

	previous := h.settings.SetListMessage(guildID, &messageID)
	if previous == nil || *previous == messageID {
		return
	}

	if err := client.ChannelMessageDelete(interaction.ChannelID, previous.String()); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"guild":   guildID,
			"message": previous,
		}).Debug("Previous listing message already gone")
	}
}

// Dispatch runs one command for a guild and returns the reply to send
func (h *Handler) Dispatch(ctx context.Context, guildID snowflake.ID, data discordgo.ApplicationCommandInteractionData) (reply Reply) {
	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithError(fmt.Errorf("panic: %v", r)).WithField("command", data.Name).Error("Recovered from panic in command handler")
			reply = h.errorReply(guildID, fmt.Errorf("panic: %v", r))
		}
	}()

	h.logger.WithFields(logrus.Fields{
		"command": data.Name,
		"guild":   guildID,
	}).Info("Command received")

	// Guilds joined while offline are provisioned on first contact
	if _, err := h.settings.EnsureGuild(ctx, guildID); err != nil {
		return h.errorReply(guildID, err)
	}

	var err error
	switch data.Name {
	case "volume":
		reply, err = h.handleVolume(ctx, guildID, data.Options)
	case "language":
		reply, err = h.handleLanguage(ctx, guildID, data.Options)
	case "searchmode":
		reply, err = h.handleSearchMode(ctx, guildID, data.Options)
	case "playlist":
		reply, err = h.handlePlaylistSubcommand(ctx, guildID, data.Options)
	default:
		err = fmt.Errorf("%w: unknown command %q", apperrors.ErrInvalidInput, data.Name)
	}

	if err != nil {
		h.logger.WithError(err).WithField("command", data.Name).Warn("Command failed")
		return h.errorReply(guildID, err)
	}
	return reply
}

// text renders a message in the guild's language
func (h *Handler) text(guildID snowflake.ID, key string, args ...interface{}) string {
	return h.translator.Text(h.settings.Get(guildID).Language, key, args...)
}

func (h *Handler) errorReply(guildID snowflake.ID, err error) Reply {
	key := apperrors.MessageKey(err)
	if key == i18n.KeyPlaylistCreationLimit {
		return errorReply(h.text(guildID, key, h.maxPlaylists))
	}
	return errorReply(h.text(guildID, key))
}

func (h *Handler) requirePlayer() error {
	if h.player == nil {
		return apperrors.ErrPlaybackUnavailable
	}
	return nil
}

// option finds a named option
func option(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (*discordgo.ApplicationCommandInteractionDataOption, error) {
	for _, opt := range options {
		if opt.Name == name {
			return opt, nil
		}
	}
	return nil, fmt.Errorf("%w: missing option %q", apperrors.ErrInvalidInput, name)
}

func stringOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, error) {
	opt, err := option(options, name)
	if err != nil {
		return "", err
	}
	if opt.Type != discordgo.ApplicationCommandOptionString {
		return "", fmt.Errorf("%w: option %q is not a string", apperrors.ErrInvalidInput, name)
	}
	return opt.StringValue(), nil
}

func intOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int, error) {
	opt, err := option(options, name)
	if err != nil {
		return 0, err
	}
	if opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, fmt.Errorf("%w: option %q is not an integer", apperrors.ErrInvalidInput, name)
	}
	return int(opt.IntValue()), nil
}
