// internal/storage/files.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github-profile-collector/internal/model"
)

// File names written by FileStore.
const (
	ProfileFile       = "profile.json"
	OrganizationsFile = "organizations.json"
	RepositoriesFile  = "repositories.json"
	SummaryFile       = "summary.json"
)

// FileStore writes a snapshot as a set of JSON documents into Dir.
type FileStore struct {
	dir    string
	logger *slog.Logger
}

func NewFileStore(dir string, logger *slog.Logger) *FileStore {
	return &FileStore{dir: dir, logger: logger}
}

// Save writes every document of snap. Files are replaced atomically, so a
// reader never sees a partially written document.
func (f *FileStore) Save(_ context.Context, snap *model.Snapshot) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	orgs := snap.Organizations
	if orgs == nil {
		orgs = []model.Organization{}
	}
	repos := snap.Repositories
	if repos == nil {
		repos = []model.EnrichedRepository{}
	}

	docs := []struct {
		name string
		v    any
	}{
		{ProfileFile, snap.Profile},
		{OrganizationsFile, orgs},
		{RepositoriesFile, repos},
		{SummaryFile, snap.Summary},
	}
	for _, d := range docs {
		if err := writeJSON(filepath.Join(f.dir, d.name), d.v); err != nil {
			return err
		}
	}

	f.logger.Info("Snapshot written to disk", "dir", f.dir, "repositories", len(repos))
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
