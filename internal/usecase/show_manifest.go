package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
)

// ShowManifestResult holds the manifest of the selected network
type ShowManifestResult struct {
	Network  *config.Network
	Manifest *models.Manifest
}

// ShowManifest loads what storectl recorded for a network
type ShowManifest struct {
	config   *config.RuntimeConfig
	networks NetworkResolver
	store    ManifestStore
}

// NewShowManifest creates a new ShowManifest use case
func NewShowManifest(cfg *config.RuntimeConfig, networks NetworkResolver, store ManifestStore) *ShowManifest {
	return &ShowManifest{
		config:   cfg,
		networks: networks,
		store:    store,
	}
}

// Run executes the use case
func (uc *ShowManifest) Run(ctx context.Context) (*ShowManifestResult, error) {
	network, err := selectNetwork(ctx, uc.config, uc.networks)
	if err != nil {
		return nil, err
	}

	manifest, err := uc.store.Load(ctx, network.ChainID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(manifest.Proxies, func(i, j int) bool {
		return manifest.Proxies[i].DeployedAt.Before(manifest.Proxies[j].DeployedAt)
	})

	return &ShowManifestResult{
		Network:  network,
		Manifest: manifest,
	}, nil
}
