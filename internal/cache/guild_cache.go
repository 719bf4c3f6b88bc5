package cache

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/entities"
)

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	guilds map[snowflake.ID]*entities.GuildSettings
}

// GuildCache is the in-memory view of every guild's settings. Reads never
// touch storage. Guilds are spread over shards so updates to different
// guilds rarely contend on the same lock.
type GuildCache struct {
	shards [shardCount]*shard
}

// NewGuildCache creates an empty cache
func NewGuildCache() *GuildCache {
	c := &GuildCache{}
	for i := range c.shards {
		c.shards[i] = &shard{guilds: make(map[snowflake.ID]*entities.GuildSettings)}
	}
	return c
}

func (c *GuildCache) shardFor(guildID snowflake.ID) *shard {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(guildID))
	return c.shards[xxhash.Sum64(buf[:])%shardCount]
}

// Get returns a copy of the guild's settings, or the defaults when the guild is unknown
func (c *GuildCache) Get(guildID snowflake.ID) *entities.GuildSettings {
	if s, ok := c.Lookup(guildID); ok {
		return s
	}
	return entities.NewGuildSettings(guildID)
}

// Lookup returns a copy of the guild's settings and whether it is cached
func (c *GuildCache) Lookup(guildID snowflake.ID) (*entities.GuildSettings, bool) {
	sh := c.shardFor(guildID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	s, ok := sh.guilds[guildID]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Upsert stores a full record, replacing any previous one
func (c *GuildCache) Upsert(settings *entities.GuildSettings) {
	sh := c.shardFor(settings.GuildID)
	sh.mu.Lock()
	sh.guilds[settings.GuildID] = settings.Clone()
	sh.mu.Unlock()
}

// Insert stores a record only when the guild is not cached yet and reports
// whether it did
func (c *GuildCache) Insert(settings *entities.GuildSettings) bool {
	sh := c.shardFor(settings.GuildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.guilds[settings.GuildID]; ok {
		return false
	}
	sh.guilds[settings.GuildID] = settings.Clone()
	return true
}

// SetField applies one field update in place. Other fields are untouched.
// Returns false when the guild is not cached.
func (c *GuildCache) SetField(guildID snowflake.ID, update entities.FieldUpdate) bool {
	sh := c.shardFor(guildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	s, ok := sh.guilds[guildID]
	if !ok {
		return false
	}
	update.Apply(s)
	return true
}

// Remove drops a guild and reports whether it was cached
func (c *GuildCache) Remove(guildID snowflake.ID) bool {
	sh := c.shardFor(guildID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.guilds[guildID]; !ok {
		return false
	}
	delete(sh.guilds, guildID)
	return true
}

// Load replaces the whole content with the given records
func (c *GuildCache) Load(all []*entities.GuildSettings) {
	for _, sh := range c.shards {
		sh.mu.Lock()
		sh.guilds = make(map[snowflake.ID]*entities.GuildSettings)
		sh.mu.Unlock()
	}
	for _, s := range all {
		c.Upsert(s)
	}
}

// Len returns the number of cached guilds
func (c *GuildCache) Len() int {
	n := 0
	for _, sh := range c.shards {
		sh.mu.RLock()
		n += len(sh.guilds)
		sh.mu.RUnlock()
	}
	return n
}
