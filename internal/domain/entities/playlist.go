package entities

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// Playlist is a named, ordered list of track URIs owned by a guild
type Playlist struct {
	GuildID snowflake.ID
	Name    string
	Tracks  []string
}

// NewPlaylist creates a playlist holding a copy of tracks
func NewPlaylist(guildID snowflake.ID, name string, tracks []string) *Playlist {
	return &Playlist{
		GuildID: guildID,
		Name:    name,
		Tracks:  append(make([]string, 0, len(tracks)), tracks...),
	}
}

// NewSessionPlaylist captures a playback session, current track first
func NewSessionPlaylist(guildID snowflake.ID, name, current string, queue []string) *Playlist {
	tracks := make([]string, 0, len(queue)+1)
	if current != "" {
		tracks = append(tracks, current)
	}
	tracks = append(tracks, queue...)
	return &Playlist{
		GuildID: guildID,
		Name:    name,
		Tracks:  tracks,
	}
}

// TotalSongs returns the number of tracks in the playlist
func (p *Playlist) TotalSongs() int {
	return len(p.Tracks)
}

// MarshalText encodes the tracks one URI per line
func (p *Playlist) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	for _, track := range p.Tracks {
		buf.WriteString(track)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ValidTrack reports whether a track reference survives the file format
// unchanged: one line, non-blank, without surrounding whitespace.
func ValidTrack(track string) bool {
	return track != "" && strings.TrimSpace(track) == track && !strings.ContainsAny(track, "\r\n")
}

// ParseTracks decodes the one-URI-per-line format. Blank lines are skipped.
func ParseTracks(data []byte) ([]string, error) {
	tracks := make([]string, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tracks = append(tracks, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}
