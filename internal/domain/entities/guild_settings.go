package entities

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"github.com/vuongmanhnghia/iris-music-bot/internal/domain/valueobjects"
)

// DefaultVolume is the playback volume of a newly provisioned guild
const DefaultVolume = 0.5

// GuildSettings is the configuration record of one guild
type GuildSettings struct {
	GuildID    snowflake.ID
	Volume     float64
	Language   valueobjects.Language
	SearchMode valueobjects.SearchMode

	// ListMessageID points at the last queue listing message. Kept in memory only.
	ListMessageID *snowflake.ID
}

// NewGuildSettings returns the default configuration for a guild
func NewGuildSettings(guildID snowflake.ID) *GuildSettings {
	return &GuildSettings{
		GuildID:    guildID,
		Volume:     DefaultVolume,
		Language:   valueobjects.DefaultLanguage,
		SearchMode: valueobjects.DefaultSearchMode,
	}
}

// Clone returns a copy that shares no memory with s
func (s *GuildSettings) Clone() *GuildSettings {
	c := *s
	if s.ListMessageID != nil {
		id := *s.ListMessageID
		c.ListMessageID = &id
	}
	return &c
}

// VolumePercent returns the volume on the 0-100 scale used by commands
func (s *GuildSettings) VolumePercent() int {
	return int(s.Volume*100 + 0.5)
}

// SettingField names one mutable attribute of GuildSettings
type SettingField int

const (
	FieldVolume SettingField = iota
	FieldLanguage
	FieldSearchMode
	FieldListMessage
)

// String returns the string representation
func (f SettingField) String() string {
	switch f {
	case FieldVolume:
		return "volume"
	case FieldLanguage:
		return "language"
	case FieldSearchMode:
		return "search_mode"
	case FieldListMessage:
		return "list_message"
	}
	return fmt.Sprintf("SettingField(%d)", int(f))
}

// Persisted reports whether the field is stored outside the process
func (f SettingField) Persisted() bool {
	return f != FieldListMessage
}

// FieldUpdate changes exactly one attribute of GuildSettings
type FieldUpdate interface {
	Field() SettingField
	Apply(s *GuildSettings)
}

// VolumeUpdate sets the playback volume fraction
type VolumeUpdate struct{ Volume float64 }

func (u VolumeUpdate) Field() SettingField {
	return FieldVolume
}

func (u VolumeUpdate) Apply(s *GuildSettings) {
	s.Volume = u.Volume
}

// LanguageUpdate sets the reply language
type LanguageUpdate struct{ Language valueobjects.Language }

func (u LanguageUpdate) Field() SettingField {
	return FieldLanguage
}

func (u LanguageUpdate) Apply(s *GuildSettings) {
	s.Language = u.Language
}

// SearchModeUpdate sets the search platform
type SearchModeUpdate struct{ SearchMode valueobjects.SearchMode }

func (u SearchModeUpdate) Field() SettingField {
	return FieldSearchMode
}

func (u SearchModeUpdate) Apply(s *GuildSettings) {
	s.SearchMode = u.SearchMode
}

// ListMessageUpdate sets or clears the list message reference
type ListMessageUpdate struct{ MessageID *snowflake.ID }

func (u ListMessageUpdate) Field() SettingField {
	return FieldListMessage
}

func (u ListMessageUpdate) Apply(s *GuildSettings) {
	if u.MessageID == nil {
		s.ListMessageID = nil
		return
	}
	id := *u.MessageID
	s.ListMessageID = &id
}

// RestoreGuildSettings rebuilds a record from its stored columns
func RestoreGuildSettings(id string, volume float64, lang, searchMode int32) (*GuildSettings, error) {
	guildID, err := snowflake.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid guild id %q: %w", id, err)
	}
	return &GuildSettings{
		GuildID:    guildID,
		Volume:     volume,
		Language:   valueobjects.Language(lang),
		SearchMode: valueobjects.SearchMode(searchMode),
	}, nil
}
