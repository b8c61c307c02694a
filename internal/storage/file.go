// Package storage provides progress persistence implementations.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bunbaker/bunbakery/internal/domain"
	"github.com/bunbaker/bunbakery/internal/logger"
)

// Compile-time interface check.
var _ domain.ProgressStore = (*FileStore)(nil)

// FileStore persists progress as a JSON file. A missing, unreadable, or
// invalid file always yields fresh defaults on load, so a corrupt save can
// never prevent the game from starting.
type FileStore struct {
	path    string
	catalog domain.Catalog
	log     *logger.Logger
}

// NewFileStore creates a file-backed progress store at the given path.
// The catalog is used to validate loaded progress.
func NewFileStore(path string, catalog domain.Catalog, log *logger.Logger) *FileStore {
	return &FileStore{path: path, catalog: catalog, log: log}
}

// Load reads progress from disk. Any failure, from a missing file to
// corrupt JSON to an invalid ingredient partition, falls back to defaults.
func (s *FileStore) Load(ctx context.Context) (*domain.Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("no save file at %s, starting fresh", s.path)
		} else {
			s.log.Warn("cannot read save file %s: %v, starting fresh", s.path, err)
		}
		return domain.DefaultProgress(), nil
	}

	var p domain.Progress
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("corrupt save file %s: %v, starting fresh", s.path, err)
		return domain.DefaultProgress(), nil
	}
	if err := p.Validate(s.catalog); err != nil {
		s.log.Warn("invalid save file %s: %v, starting fresh", s.path, err)
		return domain.DefaultProgress(), nil
	}

	s.log.Debug("loaded progress from %s (high score %d, money %d)", s.path, p.HighScore, p.Money)
	return &p, nil
}

// Save writes progress to disk, creating parent directories as needed.
func (s *FileStore) Save(ctx context.Context, p *domain.Progress) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}

	s.log.Debug("saved progress to %s", s.path)
	return nil
}
