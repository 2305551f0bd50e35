package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// VerifyContractParams names the deployed address and the blueprint it was built from
type VerifyContractParams struct {
	Address         string
	Blueprint       string
	ConstructorArgs string // hex, optional
}

// VerifyContract submits a blueprint's source for a deployed address to the explorer
type VerifyContract struct {
	config    *config.RuntimeConfig
	networks  NetworkResolver
	artifacts ArtifactRepository
	verifier  ContractVerifier
	progress  ProgressSink
}

// NewVerifyContract creates a new VerifyContract use case
func NewVerifyContract(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	artifacts ArtifactRepository,
	verifier ContractVerifier,
	progress ProgressSink,
) *VerifyContract {
	if progress == nil {
		progress = NopProgress{}
	}
	return &VerifyContract{
		config:    cfg,
		networks:  networks,
		artifacts: artifacts,
		verifier:  verifier,
		progress:  progress,
	}
}

// Run executes the use case
func (uc *VerifyContract) Run(ctx context.Context, params VerifyContractParams) (*VerifyResult, error) {
	if !common.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.Address)
	}

	network, err := selectNetwork(ctx, uc.config, uc.networks)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, params.Blueprint)
	if err != nil {
		return nil, err
	}

	buildInfo, err := uc.artifacts.GetBuildInfo(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to load build info for %s: %w", artifact.ContractName, err)
	}

	var constructorArgs []byte
	if params.ConstructorArgs != "" {
		hexArgs := strings.TrimPrefix(params.ConstructorArgs, "0x")
		constructorArgs = common.Hex2Bytes(hexArgs)
		if len(constructorArgs)*2 != len(hexArgs) {
			return nil, fmt.Errorf("invalid constructor args %q: not hex", params.ConstructorArgs)
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "verifying", Message: fmt.Sprintf("Verifying %s", artifact.ContractName), Spinner: true})
	result, err := uc.verifier.Verify(ctx, VerifyRequest{
		Network:         network,
		Address:         common.HexToAddress(params.Address),
		Artifact:        artifact,
		BuildInfo:       buildInfo,
		ConstructorArgs: constructorArgs,
	})
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})
	if err != nil {
		return nil, err
	}
	if !result.Verified {
		return result, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, result.Message)
	}

	return result, nil
}
