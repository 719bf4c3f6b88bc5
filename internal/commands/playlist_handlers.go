package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/i18n"
)

// handlePlaylistSubcommand routes /playlist list|add|remove|load
func (h *Handler) handlePlaylistSubcommand(ctx context.Context, guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	if len(options) == 0 {
		return Reply{}, fmt.Errorf("%w: missing playlist subcommand", apperrors.ErrInvalidInput)
	}

	sub := options[0]
	switch sub.Name {
	case "list":
		return h.handlePlaylistList(guildID)
	case "add":
		return h.handlePlaylistAdd(guildID, sub.Options)
	case "remove":
		return h.handlePlaylistRemove(guildID, sub.Options)
	case "load":
		return h.handlePlaylistLoad(ctx, guildID, sub.Options)
	}
	return Reply{}, fmt.Errorf("%w: unknown playlist subcommand %q", apperrors.ErrInvalidInput, sub.Name)
}

// handlePlaylistList shows all playlists of the guild
func (h *Handler) handlePlaylistList(guildID snowflake.ID) (Reply, error) {
	names, err := h.playlists.List(guildID)
	if err != nil {
		return Reply{}, err
	}

	if len(names) == 0 {
		return infoReply(h.text(guildID, i18n.KeyNoPlaylist)), nil
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	for idx, name := range names {
		sb.WriteString(fmt.Sprintf("%d - %s\n", idx+1, name))
	}
	sb.WriteString("```")

	embed := NewEmbed().
		Title("Playlists").
		Description(sb.String()).
		Footer(fmt.Sprintf("%d/%d", len(names), h.maxPlaylists)).
		Build()

	return Reply{Embed: embed, listing: true}, nil
}

// handlePlaylistAdd saves the current session (now playing + queue) under a name
func (h *Handler) handlePlaylistAdd(guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	name, err := stringOption(options, "name")
	if err != nil {
		return Reply{}, err
	}
	if err := h.requirePlayer(); err != nil {
		return Reply{}, err
	}

	current, _ := h.player.NowPlaying(guildID)
	result, err := h.playlists.SaveSession(guildID, name, current, h.player.Queue(guildID))
	switch result {
	case valueobjects.SaveNew:
		return successReply(h.text(guildID, i18n.KeyPlaylistNew, name)), nil
	case valueobjects.SaveOverwrite:
		return successReply(h.text(guildID, i18n.KeyPlaylistOverwrite, name)), nil
	case valueobjects.SaveCreationLimit:
		return errorReply(h.text(guildID, i18n.KeyPlaylistCreationLimit, h.maxPlaylists)), nil
	}

	// Rejected input keeps its own message
	if err != nil && !errors.Is(err, apperrors.ErrIOFailure) {
		return Reply{}, err
	}
	return errorReply(h.text(guildID, i18n.KeyPlaylistFail)), nil
}

// handlePlaylistRemove deletes one playlist
func (h *Handler) handlePlaylistRemove(guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	name, err := stringOption(options, "name")
	if err != nil {
		return Reply{}, err
	}

	result, _ := h.playlists.Delete(guildID, name)
	switch result {
	case valueobjects.DeleteSuccess:
		return successReply(h.text(guildID, i18n.KeyPlaylistRemoveSuccess)), nil
	case valueobjects.DeleteNotFound:
		return errorReply(h.text(guildID, i18n.KeyPlaylistRemoveMissing, name)), nil
	default:
		return errorReply(h.text(guildID, i18n.KeyPlaylistRemoveFail)), nil
	}
}

// handlePlaylistLoad queues every track of a playlist
func (h *Handler) handlePlaylistLoad(ctx context.Context, guildID snowflake.ID, options []*discordgo.ApplicationCommandInteractionDataOption) (Reply, error) {
	name, err := stringOption(options, "name")
	if err != nil {
		return Reply{}, err
	}
	if err := h.requirePlayer(); err != nil {
		return Reply{}, err
	}

	added, err := h.playlists.LoadInto(ctx, guildID, name, h.player)
	if err != nil {
		return Reply{}, err
	}

	return Reply{Content: h.text(guildID, i18n.KeyPlaylistLoadSuccess, added, name)}, nil
}
