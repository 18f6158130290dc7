package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moby/sys/atomicwriter"
	"github.com/zulandar/cave/internal/models"
	"go.uber.org/zap"
)

// LogStore reads the validator's JSON log file: a single array of entries,
// oldest first.
type LogStore struct {
	path string
	log  *zap.Logger
}

// NewLogStore returns a store for the log file at path.
func NewLogStore(path string, log *zap.Logger) *LogStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogStore{path: path, log: log}
}

// Path returns the log file location.
func (s *LogStore) Path() string { return s.path }

// Load parses the whole log file. Entries keep file order.
func (s *LogStore) Load() ([]models.LogEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable("log file", s.path, err)
	}

	var entries []models.LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, unavailable("log file", s.path, fmt.Errorf("decode: %w", err))
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	s.log.Debug("loaded logs", zap.String("path", s.path), zap.Int("count", len(entries)))
	return entries, nil
}

// Clear replaces the log file with an empty array. The new content is
// written to a temporary file and renamed over the original, so a failure
// leaves the old file intact.
func (s *LogStore) Clear() error {
	if err := atomicwriter.WriteFile(s.path, []byte("[]"), 0o644); err != nil {
		return unavailable("log file", s.path, err)
	}
	s.log.Info("cleared logs", zap.String("path", s.path))
	return nil
}
