package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuongmanhnghia/iris-music-bot/internal/cache"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
	"github.com/vuongmanhnghia/iris-music-bot/internal/infrastructure/persistence"
	"github.com/vuongmanhnghia/iris-music-bot/pkg/logger"
)

const guild = snowflake.ID(555555555555555555)

func newTestSettings(t *testing.T) (*SettingsService, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc := NewSettingsService(store, cache.NewGuildCache(), logger.Discard())
	require.NoError(t, svc.Initialize(context.Background()))
	return svc, store
}

func TestInitializeSeedsCache(t *testing.T) {
	store := newMemoryStore()
	seeded := entities.NewGuildSettings(guild)
	seeded.Volume = 0.3
	require.NoError(t, store.Insert(context.Background(), seeded))

	svc := NewSettingsService(store, cache.NewGuildCache(), logger.Discard())
	require.NoError(t, svc.Initialize(context.Background()))

	assert.Equal(t, 0.3, svc.Get(guild).Volume)
}

func TestInitializeFailsWhenStoreUnavailable(t *testing.T) {
	store := newMemoryStore()
	store.setFailing(true)

	svc := NewSettingsService(store, cache.NewGuildCache(), logger.Discard())
	err := svc.Initialize(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}

func TestGetUnknownGuildFallsBackToDefaults(t *testing.T) {
	svc, store := newTestSettings(t)

	s := svc.Get(guild)
	assert.Equal(t, entities.DefaultVolume, s.Volume)
	assert.Equal(t, valueobjects.DefaultLanguage, s.Language)
	assert.Equal(t, valueobjects.DefaultSearchMode, s.SearchMode)

	_, ok := store.row(guild)
	assert.False(t, ok)
}

func TestEnsureGuildIsIdempotent(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	_, err := svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateVolume(ctx, guild, 80))

	again, err := svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)
	assert.Equal(t, 0.8, again.Volume)
	assert.Equal(t, 1, store.inserts)
}

func TestConcurrentEnsureGuildInsertsOnce(t *testing.T) {
	svc, store := newTestSettings(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.EnsureGuild(context.Background(), guild)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.inserts)
}

func TestUpdateWritesStoreThenCache(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateVolume(ctx, guild, 25))
	require.NoError(t, svc.UpdateLanguage(ctx, guild, valueobjects.LanguageKorean))
	require.NoError(t, svc.UpdateSearchMode(ctx, guild, valueobjects.SearchModeSoundCloud))

	row, ok := store.row(guild)
	require.True(t, ok)
	assert.Equal(t, 0.25, row.Volume)
	assert.Equal(t, valueobjects.LanguageKorean, row.Language)
	assert.Equal(t, valueobjects.SearchModeSoundCloud, row.SearchMode)

	s := svc.Get(guild)
	assert.Equal(t, 25, s.VolumePercent())
	assert.Equal(t, valueobjects.LanguageKorean, s.Language)
	assert.Equal(t, valueobjects.SearchModeSoundCloud, s.SearchMode)
}

func TestFailedStoreWriteLeavesCacheUntouched(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	_, err := svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)

	store.setFailing(true)
	err = svc.UpdateVolume(ctx, guild, 90)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.Equal(t, entities.DefaultVolume, svc.Get(guild).Volume)
}

func TestFailedProvisioningDoesNotCache(t *testing.T) {
	svc, store := newTestSettings(t)
	store.setFailing(true)

	_, err := svc.EnsureGuild(context.Background(), guild)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)

	store.setFailing(false)
	_, err = svc.EnsureGuild(context.Background(), guild)
	require.NoError(t, err)
	_, ok := store.row(guild)
	assert.True(t, ok)
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateVolume(ctx, guild, 101), apperrors.ErrInvalidVolume)
	assert.ErrorIs(t, svc.UpdateVolume(ctx, guild, -1), apperrors.ErrInvalidVolume)
	assert.ErrorIs(t, svc.UpdateLanguage(ctx, guild, valueobjects.Language(9)), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateSearchMode(ctx, guild, valueobjects.SearchMode(0)), apperrors.ErrInvalidInput)

	_, ok := store.row(guild)
	assert.False(t, ok, "rejected input must not provision the guild")
}

func TestUpdateRestoresMissingStoreRow(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	_, err := svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)

	// Row removed behind the service's back
	require.NoError(t, store.Delete(ctx, guild))

	require.NoError(t, svc.UpdateLanguage(ctx, guild, valueobjects.LanguageKorean))
	row, ok := store.row(guild)
	require.True(t, ok)
	assert.Equal(t, valueobjects.LanguageKorean, row.Language)
}

func TestConcurrentFieldUpdatesKeepBoth(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		id := snowflake.ID(1000 + i)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.UpdateVolume(ctx, id, 70))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.UpdateLanguage(ctx, id, valueobjects.LanguageKorean))
		}()
		wg.Wait()

		s := svc.Get(id)
		assert.Equal(t, 0.7, s.Volume)
		assert.Equal(t, valueobjects.LanguageKorean, s.Language)

		row, ok := store.row(id)
		require.True(t, ok)
		assert.Equal(t, 0.7, row.Volume)
		assert.Equal(t, valueobjects.LanguageKorean, row.Language)
	}
}

func TestSetListMessageStaysInCache(t *testing.T) {
	svc, store := newTestSettings(t)
	ctx := context.Background()

	_, err := svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)

	msg := snowflake.ID(4242)
	assert.Nil(t, svc.SetListMessage(guild, &msg))

	s := svc.Get(guild)
	require.NotNil(t, s.ListMessageID)
	assert.Equal(t, msg, *s.ListMessageID)

	row, _ := store.row(guild)
	assert.Nil(t, row.ListMessageID)

	next := snowflake.ID(4343)
	previous := svc.SetListMessage(guild, &next)
	require.NotNil(t, previous)
	assert.Equal(t, msg, *previous)

	previous = svc.SetListMessage(guild, nil)
	require.NotNil(t, previous)
	assert.Equal(t, next, *previous)
	assert.Nil(t, svc.Get(guild).ListMessageID)
}

func TestSettingsSurviveRestartWithSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "guilds.db")

	store, err := persistence.OpenSettingsRepository(ctx, path, logger.Discard())
	require.NoError(t, err)
	svc := NewSettingsService(store, cache.NewGuildCache(), logger.Discard())
	require.NoError(t, svc.Initialize(ctx))

	_, err = svc.EnsureGuild(ctx, guild)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateSearchMode(ctx, guild, valueobjects.SearchModeSoundCloud))
	require.NoError(t, store.Close())

	reopened, err := persistence.OpenSettingsRepository(ctx, path, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	restarted := NewSettingsService(reopened, cache.NewGuildCache(), logger.Discard())
	require.NoError(t, restarted.Initialize(ctx))

	s := restarted.Get(guild)
	assert.Equal(t, entities.DefaultVolume, s.Volume)
	assert.Equal(t, valueobjects.DefaultLanguage, s.Language)
	assert.Equal(t, valueobjects.SearchModeSoundCloud, s.SearchMode)
}
