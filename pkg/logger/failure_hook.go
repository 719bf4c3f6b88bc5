package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FailureHook writes every error entry that carries an error value to its own
// file under dir, so a single failure can be inspected without the log stream.
type FailureHook struct {
	dir string
	mu  sync.Mutex
}

// NewFailureHook creates a hook writing records into dir
func NewFailureHook(dir string) *FailureHook {
	return &FailureHook{dir: dir}
}

// Levels implements logrus.Hook
func (h *FailureHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire implements logrus.Hook. Problems writing the record go to stderr only.
func (h *FailureHook) Fire(entry *logrus.Entry) error {
	errValue, ok := entry.Data[logrus.ErrorKey]
	if !ok {
		return nil
	}

	if err := h.write(entry, errValue); err != nil {
		fmt.Fprintf(os.Stderr, "failure record: %v\n", err)
	}
	return nil
}

func (h *FailureHook) write(entry *logrus.Entry, errValue interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(h.dir, 0755); err != nil {
		return fmt.Errorf("create failure directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_failure.log",
		entry.Time.Format("2006-01-02-15-04-05"),
		uuid.NewString()[:8],
	)

	var sb strings.Builder
	fmt.Fprintf(&sb, "time: %s\n", entry.Time.Format("2006-01-02 15:04:05.000"))
	fmt.Fprintf(&sb, "level: %s\n", entry.Level)
	fmt.Fprintf(&sb, "message: %s\n", entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != logrus.ErrorKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&sb, "%s: %v\n", key, entry.Data[key])
	}

	fmt.Fprintf(&sb, "error: %+v\n", errValue)

	return os.WriteFile(filepath.Join(h.dir, name), []byte(sb.String()), 0644)
}
