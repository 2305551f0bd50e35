package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

const (
	// DefaultUpgradeProxy is the proxy upgraded when none is named
	DefaultUpgradeProxy = "0x9F57239C154a6604A6BD49909D3B4e8cFee6ED63"
	// DefaultUpgradeBlueprint is the new implementation used when none is named
	DefaultUpgradeBlueprint = "ERC1155StoreV2"
)

// UpgradeProxyParams contains parameters for upgrading a proxy
type UpgradeProxyParams struct {
	ProxyAddress string
	Blueprint    string
	Fees         domain.FeeParams
}

// UpgradeProxy points an existing proxy at a new blueprint.
// The proxy address is passed through as given; the upgrade helper decides
// whether it is a proxy it can upgrade.
type UpgradeProxy struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	artifacts ArtifactRepository
	upgrader  ProxyUpgrader
	confirmer BroadcastConfirmer
	progress  ProgressSink
}

// NewUpgradeProxy creates a new UpgradeProxy use case
func NewUpgradeProxy(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	artifacts ArtifactRepository,
	upgrader ProxyUpgrader,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
) *UpgradeProxy {
	if progress == nil {
		progress = NopProgress{}
	}
	return &UpgradeProxy{
		config:    cfg,
		networks:  networks,
		artifacts: artifacts,
		upgrader:  upgrader,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *UpgradeProxy) Run(ctx context.Context, params UpgradeProxyParams) (*UpgradeProxyResult, error) {
	if params.ProxyAddress == "" {
		params.ProxyAddress = DefaultUpgradeProxy
	}
	if params.Blueprint == "" {
		params.Blueprint = DefaultUpgradeBlueprint
	}

	network, err := selectNetwork(ctx, uc.config, uc.networks)
	if err != nil {
		return nil, err
	}

	blueprint, err := uc.artifacts.GetArtifact(ctx, params.Blueprint)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("upgrade %s to %s on %s", params.ProxyAddress, blueprint.ContractName, network.Name)
	if err := confirmBroadcast(ctx, uc.config, uc.confirmer, network, summary); err != nil {
		return nil, err
	}

	result, err := uc.upgrader.UpgradeProxy(ctx, UpgradeProxyRequest{
		Signer:       Signer{Network: network, Account: uc.config.Account},
		ProxyAddress: params.ProxyAddress,
		Blueprint:    blueprint,
		Fees:         resolveFees(params.Fees, uc.config),
		Progress:     uc.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade proxy %s: %w", params.ProxyAddress, err)
	}

	return result, nil
}
