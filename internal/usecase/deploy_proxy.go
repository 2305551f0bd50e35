package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// DefaultDeployBlueprint is the blueprint deployed when none is named
const DefaultDeployBlueprint = "NFTExchange"

// DeployProxyParams contains parameters for deploying an upgradeable instance
type DeployProxyParams struct {
	Blueprint   string
	Kind        config.ProxyKind
	Initializer string
	InitArgs    []string
	Fees        domain.FeeParams
}

// DeployProxy resolves a blueprint and creates a proxy in front of it
type DeployProxy struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	artifacts ArtifactRepository
	deployer  ProxyDeployer
	confirmer BroadcastConfirmer
	progress  ProgressSink
}

// NewDeployProxy creates a new DeployProxy use case
func NewDeployProxy(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	artifacts ArtifactRepository,
	deployer ProxyDeployer,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
) *DeployProxy {
	if progress == nil {
		progress = NopProgress{}
	}
	return &DeployProxy{
		config:    cfg,
		networks:  networks,
		artifacts: artifacts,
		deployer:  deployer,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *DeployProxy) Run(ctx context.Context, params DeployProxyParams) (*DeployProxyResult, error) {
	if params.Blueprint == "" {
		params.Blueprint = DefaultDeployBlueprint
	}
	if params.Kind == "" && uc.config.Project != nil {
		params.Kind = uc.config.Project.Upgrades.Kind
	}
	if params.Kind == "" {
		params.Kind = config.ProxyKindTransparent
	}
	if params.Initializer == "" {
		params.Initializer = "initialize"
	}

	network, err := selectNetwork(ctx, uc.config, uc.networks)
	if err != nil {
		return nil, err
	}

	blueprint, err := uc.artifacts.GetArtifact(ctx, params.Blueprint)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("deploy %s proxy for %s on %s", params.Kind, blueprint.ContractName, network.Name)
	if err := confirmBroadcast(ctx, uc.config, uc.confirmer, network, summary); err != nil {
		return nil, err
	}

	result, err := uc.deployer.DeployProxy(ctx, DeployProxyRequest{
		Signer:      Signer{Network: network, Account: uc.config.Account},
		Blueprint:   blueprint,
		Kind:        params.Kind,
		Initializer: params.Initializer,
		InitArgs:    params.InitArgs,
		Fees:        resolveFees(params.Fees, uc.config),
		Progress:    uc.progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deploy proxy for %s: %w", blueprint.ContractName, err)
	}

	return result, nil
}
