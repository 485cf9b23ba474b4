package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bartdebruin-tp/matchmaker/internal/model"
)

// ErrNoSnapshot is returned by Load when no snapshot file exists
var ErrNoSnapshot = errors.New("no snapshot file")

// File persists the offline-bootstrap blob as a JSON file. It is a
// plain export/import helper: it never talks to the remote store and
// carries no sub-pages.
type File struct {
	path   string
	logger *slog.Logger
}

// NewFile creates a snapshot file at the given path
func NewFile(path string, logger *slog.Logger) *File {
	return &File{
		path:   path,
		logger: logger,
	}
}

// Path returns the snapshot file location
func (f *File) Path() string {
	return f.path
}

// Save writes the blob, replacing any previous snapshot. The write goes
// through a temp file and rename so a crash never leaves a torn file.
func (f *File) Save(data model.AppData) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	f.logger.Info("snapshot saved", slog.String("path", f.path))
	return nil
}

// Load reads the blob back, or ErrNoSnapshot if none was saved
func (f *File) Load() (model.AppData, error) {
	encoded, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AppData{}, ErrNoSnapshot
		}
		return model.AppData{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var data model.AppData
	if err := json.Unmarshal(encoded, &data); err != nil {
		return model.AppData{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return data, nil
}

// Clear removes the snapshot file; clearing a missing file is a no-op
func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing snapshot: %w", err)
	}
	return nil
}
