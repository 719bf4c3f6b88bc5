package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/i18n"
)

// handleVolume stores the guild volume and applies it to a running player
func (h *Handler) handleVolume(ctx context.Context, guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	percent, err := intOption(options, "level")
	if err != nil {
		return Reply{}, err
	}

	if err := h.settings.UpdateVolume(ctx, guildID, percent); err != nil {
		return Reply{}, err
	}

	if h.player != nil {
		volume := h.settings.Get(guildID).Volume
		if err := h.player.SetVolume(ctx, guildID, volume); err != nil {
			h.logger.WithError(err).WithField("guild", guildID).Warn("Failed to apply volume to player")
		}
	}

	return successReply(h.text(guildID, i18n.KeyVolumeChanged, percent)), nil
}

// handleLanguage switches the reply language. The confirmation is already in the new language.
func (h *Handler) handleLanguage(ctx context.Context, guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	input, err := stringOption(options, "language")
	if err != nil {
		return Reply{}, err
	}

	lang, err := valueobjects.ParseLanguage(input)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}

	if err := h.settings.UpdateLanguage(ctx, guildID, lang); err != nil {
		return Reply{}, err
	}

	return successReply(h.text(guildID, i18n.KeyLanguageChange)), nil
}

// handleSearchMode switches the platform used for plain-text searches
func (h *Handler) handleSearchMode(ctx context.Context, guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	input, err := stringOption(options, "platform")
	if err != nil {
		return Reply{}, err
	}

	mode, err := valueobjects.ParseSearchMode(input)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}

	if err := h.settings.UpdateSearchMode(ctx, guildID, mode); err != nil {
		return Reply{}, err
	}

	key := i18n.KeySearchModeYouTube
	if mode == valueobjects.SearchModeSoundCloud {
		key = i18n.KeySearchModeSoundCloud
	}
	return successReply(h.text(guildID, key)), nil
}
