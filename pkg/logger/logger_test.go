package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureHookWritesRecordForErrors(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	log := New(Config{Level: "info", Output: &out, FailureDir: dir})

	log.WithError(errors.New("disk full")).
		WithField("guild", "42").
		Error("Failed to write playlist")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "message: Failed to write playlist")
	assert.Contains(t, string(data), "guild: 42")
	assert.Contains(t, string(data), "error: disk full")
	assert.Contains(t, out.String(), "Failed to write playlist")
}

func TestFailureHookIgnoresEntriesWithoutError(t *testing.T) {
	dir := t.TempDir()
	log := New(Config{Level: "info", Output: &bytes.Buffer{}, FailureDir: dir})

	log.Error("plain error line")
	log.WithError(errors.New("not recorded")).Warn("warnings are not failures")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewFallsBackToInfoLevel(t *testing.T) {
	log := New(Config{Level: "loud", Output: &bytes.Buffer{}})
	assert.Equal(t, "info", log.GetLevel().String())
}
