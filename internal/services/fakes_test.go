package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
	apperrors "github.com/vuongmanhnghia/iris-music-bot/internal/errors"
)

// memoryStore is an in-memory SettingsRepository with switchable failures
type memoryStore struct {
	mu      sync.Mutex
	rows    map[snowflake.ID]entities.GuildSettings
	inserts int
	failAll bool
	failDel bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: make(map[snowflake.ID]entities.GuildSettings)}
}

func (m *memoryStore) unavailable() error {
	return fmt.Errorf("%w: disk on fire", apperrors.ErrStorageUnavailable)
}

func (m *memoryStore) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return m.unavailable()
	}
	return nil
}

func (m *memoryStore) LoadAll(ctx context.Context) ([]*entities.GuildSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, m.unavailable()
	}
	out := make([]*entities.GuildSettings, 0, len(m.rows))
	for _, row := range m.rows {
		row := row
		out = append(out, &row)
	}
	return out, nil
}

func (m *memoryStore) Insert(ctx context.Context, settings *entities.GuildSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return m.unavailable()
	}
	m.inserts++
	if _, ok := m.rows[settings.GuildID]; !ok {
		row := *settings
		row.ListMessageID = nil
		m.rows[settings.GuildID] = row
	}
	return nil
}

func (m *memoryStore) modify(guildID snowflake.ID, apply func(*entities.GuildSettings)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return m.unavailable()
	}
	row, ok := m.rows[guildID]
	if !ok {
		return apperrors.ErrGuildNotFound
	}
	apply(&row)
	m.rows[guildID] = row
	return nil
}

func (m *memoryStore) UpdateVolume(ctx context.Context, guildID snowflake.ID, volume float64) error {
	return m.modify(guildID, func(s *entities.GuildSettings) { s.Volume = volume })
}

func (m *memoryStore) UpdateLanguage(ctx context.Context, guildID snowflake.ID, language valueobjects.Language) error {
	return m.modify(guildID, func(s *entities.GuildSettings) { s.Language = language })
}

func (m *memoryStore) UpdateSearchMode(ctx context.Context, guildID snowflake.ID, mode valueobjects.SearchMode) error {
	return m.modify(guildID, func(s *entities.GuildSettings) { s.SearchMode = mode })
}

func (m *memoryStore) Delete(ctx context.Context, guildID snowflake.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll || m.failDel {
		return m.unavailable()
	}
	delete(m.rows, guildID)
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}

func (m *memoryStore) row(guildID snowflake.ID) (entities.GuildSettings, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[guildID]
	return row, ok
}

func (m *memoryStore) setFailing(all bool) {
	m.mu.Lock()
	m.failAll = all
	m.mu.Unlock()
}

// fakeQueue records enqueued tracks and rejects the ones listed in bad
type fakeQueue struct {
	tracks []string
	bad    map[string]bool
}

func (q *fakeQueue) QueueLength(guildID snowflake.ID) int {
	return len(q.tracks)
}

func (q *fakeQueue) Enqueue(ctx context.Context, guildID snowflake.ID, track string) error {
	if q.bad[track] {
		return fmt.Errorf("no match for %q", track)
	}
	q.tracks = append(q.tracks, track)
	return nil
}
