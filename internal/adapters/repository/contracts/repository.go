package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

const hardhatArtifactFormat = "hh-sol-artifact-1"

// Repository indexes the Hardhat artifacts directory
type Repository struct {
	projectRoot  string
	artifactsDir string
	selector     usecase.InteractiveSelector
	log          *slog.Logger

	mu            sync.RWMutex
	indexed       bool
	artifacts     map[string]*models.Artifact   // key: "sourceName:ContractName"
	artifactNames map[string][]*models.Artifact // key: contract name
}

// NewRepository creates a repository over the configured artifacts path. The
// selector, if any, resolves ambiguous names.
func NewRepository(cfg *config.RuntimeConfig, selector usecase.InteractiveSelector, log *slog.Logger) *Repository {
	artifactsDir := "artifacts"
	if cfg.Project != nil && cfg.Project.Paths.Artifacts != "" {
		artifactsDir = cfg.Project.Paths.Artifacts
	}
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(cfg.ProjectRoot, artifactsDir)
	}

	return &Repository{
		projectRoot:  cfg.ProjectRoot,
		artifactsDir: artifactsDir,
		selector:     selector,
		log:          log.With("component", "ArtifactRepository"),
	}
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.artifacts = make(map[string]*models.Artifact)
	r.artifactNames = make(map[string][]*models.Artifact)

	if _, err := os.Stat(r.artifactsDir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, compile the project first", r.artifactsDir)
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.artifactsDir, "count", len(r.artifacts))
	return nil
}

func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // walking the artifacts dir
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil || artifact.Format != hardhatArtifactFormat {
		// other JSON living next to artifacts
		r.log.Debug("skipping non-artifact file", "path", path)
		return nil
	}

	artifact.Path, _ = filepath.Rel(r.projectRoot, path)
	dbgPath := strings.TrimSuffix(path, ".json") + ".dbg.json"
	if _, err := os.Stat(dbgPath); err == nil {
		artifact.BuildInfoPath = dbgPath
	}

	key := artifact.FullyQualifiedName()
	r.artifacts[key] = &artifact
	r.artifactNames[artifact.ContractName] = append(r.artifactNames[artifact.ContractName], &artifact)
	return nil
}

// GetArtifact returns the artifact named "ContractName" or "sourceName:ContractName"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if artifact, ok := r.artifacts[name]; ok {
		return artifact, nil
	}

	matches := r.artifactNames[name]
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, domain.UnknownNameErr{
			Kind:        "blueprint",
			Name:        name,
			Suggestions: domain.Suggest(name, lo.Keys(r.artifactNames)),
		}
	default:
		matches = append([]*models.Artifact(nil), matches...)
		sort.Slice(matches, func(i, j int) bool {
			return matches[i].FullyQualifiedName() < matches[j].FullyQualifiedName()
		})
		candidates := lo.Map(matches, func(a *models.Artifact, _ int) string {
			return a.FullyQualifiedName()
		})
		if r.selector != nil {
			index, err := r.selector.SelectOption(ctx, fmt.Sprintf("Multiple artifacts named %s", name), candidates)
			if err == nil && index >= 0 && index < len(matches) {
				return matches[index], nil
			}
			r.log.Debug("artifact selection failed", "error", err)
		}
		return nil, fmt.Errorf("multiple artifacts named %s, use one of: %s", name, strings.Join(candidates, ", "))
	}
}

// ListArtifacts returns all artifacts sorted by fully qualified name
func (r *Repository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifacts := lo.Values(r.artifacts)
	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].FullyQualifiedName() < artifacts[j].FullyQualifiedName()
	})
	return artifacts, nil
}

// GetBuildInfo follows the artifact's .dbg.json to its build-info file
func (r *Repository) GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	if artifact.BuildInfoPath == "" {
		return nil, fmt.Errorf("%w: no build info for %s", domain.ErrNotFound, artifact.FullyQualifiedName())
	}

	data, err := os.ReadFile(artifact.BuildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", artifact.BuildInfoPath, err)
	}
	var dbg models.DebugFile
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", artifact.BuildInfoPath, err)
	}

	buildInfoPath := filepath.Join(filepath.Dir(artifact.BuildInfoPath), dbg.BuildInfo)
	data, err = os.ReadFile(buildInfoPath) //nolint:gosec // path from the compiler's own debug file
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}
	var buildInfo models.BuildInfo
	if err := json.Unmarshal(data, &buildInfo); err != nil {
		return nil, fmt.Errorf("failed to parse build info %s: %w", buildInfoPath, err)
	}
	return &buildInfo, nil
}

var _ usecase.ArtifactRepository = (*Repository)(nil)
