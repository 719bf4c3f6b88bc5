package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuongmanhnghia/iris-music-bot/internal/cache"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	"github.com/vuongmanhnghia/iris-music-bot/internal/i18n"
	"github.com/vuongmanhnghia/iris-music-bot/internal/infrastructure/persistence"
	"github.com/vuongmanhnghia/iris-music-bot/internal/services"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

const testGuild = snowflake.ID(333333333333333333)

type fakePlayer struct {
	mu      sync.Mutex
	current string
	queue   []string
	volume  float64
}

func (p *fakePlayer) NowPlaying(guildID snowflake.ID) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current != ""
}

func (p *fakePlayer) Queue(guildID snowflake.ID) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queue...)
}

func (p *fakePlayer) QueueLength(guildID snowflake.ID) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *fakePlayer) Enqueue(ctx context.Context, guildID snowflake.ID, track string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if track == "broken" {
		return fmt.Errorf("no match")
	}
	p.queue = append(p.queue, track)
	return nil
}

func (p *fakePlayer) SetVolume(ctx context.Context, guildID snowflake.ID, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = volume
	return nil
}

type fixture struct {
	handler  *Handler
	settings *services.SettingsService
}

func newFixture(t *testing.T, player Player) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()
	dir := t.TempDir()

	store, err := persistence.OpenSettingsRepository(ctx, filepath.Join(dir, "guilds.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	settings := services.NewSettingsService(store, cache.NewGuildCache(), log)
	require.NoError(t, settings.Initialize(ctx))

	repo, err := persistence.NewPlaylistRepository(persistence.PlaylistConfig{
		BasePath:    filepath.Join(dir, "playlist"),
		MaxPerGuild: 2,
		CacheTTL:    time.Minute,
	}, log)
	require.NoError(t, err)

	translator, err := i18n.NewTranslator()
	require.NoError(t, err)

	return &fixture{
		handler:  NewHandler(settings, services.NewPlaylistService(repo, 200, log), translator, player, 2, log),
		settings: settings,
	}
}

func command(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) discordgo.ApplicationCommandInteractionData {
	return discordgo.ApplicationCommandInteractionData{Name: name, Options: options}
}

func str(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func integer(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func sub(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionSubCommand, Options: options}
}

func text(r Reply) string {
	if r.Embed != nil {
		return r.Embed.Description
	}
	return r.Content
}

func TestVolumeCommand(t *testing.T) {
	player := &fakePlayer{}
	f := newFixture(t, player)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("volume", integer("level", 40)))
	assert.Equal(t, "✅ Volume set to 40%", text(reply))
	assert.False(t, reply.Ephemeral)
	assert.Equal(t, 0.4, f.settings.Get(testGuild).Volume)
	assert.Equal(t, 0.4, player.volume)

	reply = f.handler.Dispatch(context.Background(), testGuild, command("volume", integer("level", 140)))
	assert.Equal(t, "❌ Volume must be between 0 and 100", text(reply))
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, 0.4, f.settings.Get(testGuild).Volume)
}

func TestLanguageCommandRepliesInNewLanguage(t *testing.T) {
	f := newFixture(t, nil)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("language", str("language", "ko")))
	assert.Equal(t, "✅ 언어가 한국어로 변경되었습니다", text(reply))
	assert.Equal(t, valueobjects.LanguageKorean, f.settings.Get(testGuild).Language)

	reply = f.handler.Dispatch(context.Background(), testGuild, command("language", str("language", "klingon")))
	assert.Equal(t, "❌ 지원하지 않는 값입니다", text(reply))
}

func TestSearchModeCommand(t *testing.T) {
	f := newFixture(t, nil)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("searchmode", str("platform", "soundcloud")))
	assert.Equal(t, "✅ Search platform set to SoundCloud", text(reply))
	assert.Equal(t, valueobjects.SearchModeSoundCloud, f.settings.Get(testGuild).SearchMode)
}

func TestPlaylistCommandsWithoutPlayer(t *testing.T) {
	f := newFixture(t, nil)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("playlist", sub("add", str("name", "favs"))))
	assert.Equal(t, "❌ Playback is not available right now", text(reply))

	reply = f.handler.Dispatch(context.Background(), testGuild, command("playlist", sub("list")))
	assert.Equal(t, "This server has no playlists", text(reply))
}

func TestPlaylistAddListLoadRemove(t *testing.T) {
	player := &fakePlayer{current: "now", queue: []string{"next", "broken"}}
	f := newFixture(t, player)
	ctx := context.Background()

	reply := f.handler.Dispatch(ctx, testGuild, command("playlist", sub("add", str("name", "favs"))))
	assert.Equal(t, "✅ Saved new playlist: favs", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("add", str("name", "favs"))))
	assert.Equal(t, "✅ Overwrote playlist: favs", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("add", str("name", "second"))))
	assert.Equal(t, "✅ Saved new playlist: second", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("add", str("name", "third"))))
	assert.Equal(t, "❌ This server already has the maximum of 2 playlists", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("list")))
	require.NotNil(t, reply.Embed)
	assert.Equal(t, "```\n1 - favs\n2 - second\n```", reply.Embed.Description)
	assert.True(t, reply.listing)

	player.queue = nil
	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("load", str("name", "favs"))))
	assert.Equal(t, "Loaded 2 tracks from playlist: favs", text(reply))
	assert.Equal(t, []string{"now", "next"}, player.Queue(testGuild))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("load", str("name", "ghost"))))
	assert.Equal(t, "❌ The playlist is empty or does not exist", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("remove", str("name", "favs"))))
	assert.Equal(t, "✅ Playlist removed", text(reply))

	reply = f.handler.Dispatch(ctx, testGuild, command("playlist", sub("remove", str("name", "favs"))))
	assert.Equal(t, "❌ Playlist does not exist: favs", text(reply))
}

func TestPlaylistAddRejectsEmptySessionAndBadName(t *testing.T) {
	f := newFixture(t, &fakePlayer{})

	reply := f.handler.Dispatch(context.Background(), testGuild, command("playlist", sub("add", str("name", "favs"))))
	assert.Equal(t, "❌ Nothing is playing right now", text(reply))

	f = newFixture(t, &fakePlayer{current: "now"})
	reply = f.handler.Dispatch(context.Background(), testGuild, command("playlist", sub("add", str("name", "../etc"))))
	assert.Equal(t, "❌ That playlist name cannot be used", text(reply))
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t, nil)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("dance"))
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, "❌ That value is not supported", text(reply))
}

func TestMissingOption(t *testing.T) {
	f := newFixture(t, nil)

	reply := f.handler.Dispatch(context.Background(), testGuild, command("volume"))
	assert.Equal(t, "❌ That value is not supported", text(reply))
}

type fakeListClient struct {
	responseID string
	deleted    []string
}

func (c *fakeListClient) InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: c.responseID, ChannelID: interaction.ChannelID}, nil
}

func (c *fakeListClient) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	c.deleted = append(c.deleted, channelID+"/"+messageID)
	return nil
}

func TestListingReplacesPreviousMessage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.settings.EnsureGuild(ctx, testGuild)
	require.NoError(t, err)

	client := &fakeListClient{responseID: "1001"}
	interaction := &discordgo.Interaction{ChannelID: "77"}

	f.handler.replaceListMessage(client, interaction, testGuild)
	assert.Empty(t, client.deleted)
	require.NotNil(t, f.settings.Get(testGuild).ListMessageID)
	assert.Equal(t, snowflake.ID(1001), *f.settings.Get(testGuild).ListMessageID)

	client.responseID = "1002"
	f.handler.replaceListMessage(client, interaction, testGuild)
	assert.Equal(t, []string{"77/1001"}, client.deleted)
	assert.Equal(t, snowflake.ID(1002), *f.settings.Get(testGuild).ListMessageID)
}
