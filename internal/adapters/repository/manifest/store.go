package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// FileStore keeps one JSON manifest per chain under the data directory
type FileStore struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex
}

// NewFileStore creates a manifest store in cfg.DataDir
func NewFileStore(cfg *config.RuntimeConfig, log *slog.Logger) *FileStore {
	return &FileStore{
		dir: cfg.DataDir,
		log: log.With("component", "ManifestStore"),
	}
}

// Path returns the manifest file of a chain
func (s *FileStore) Path(chainID uint64) string {
	return filepath.Join(s.dir, strconv.FormatUint(chainID, 10)+".json")
}

// Load reads the manifest of chainID. A missing file yields an empty manifest.
func (s *FileStore) Load(ctx context.Context, chainID uint64) (*models.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(chainID)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewManifest(chainID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest models.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if manifest.ManifestVersion != models.ManifestVersion {
		return nil, fmt.Errorf("manifest %s has version %q, expected %q", path, manifest.ManifestVersion, models.ManifestVersion)
	}
	if manifest.ChainID != chainID {
		return nil, fmt.Errorf("manifest %s belongs to chain %d", path, manifest.ChainID)
	}
	if manifest.Impls == nil {
		manifest.Impls = map[string]*models.ImplementationInfo{}
	}
	if manifest.Proxies == nil {
		manifest.Proxies = []*models.ProxyRecord{}
	}
	return &manifest, nil
}

// Save writes the manifest through a temp file and rename so readers never see a partial file
func (s *FileStore) Save(ctx context.Context, manifest *models.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	path := s.Path(manifest.ChainID)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	s.log.Debug("saved manifest", "path", path, "proxies", len(manifest.Proxies))
	return nil
}

var _ usecase.ManifestStore = (*FileStore)(nil)
