package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
)

const (
	// DefaultMintContract is the store that receives mint calls when none is named
	DefaultMintContract = "0xE9Cf59540D87584Ba53C0084367Ed3e13f3325c5"
	// DefaultMintBlueprint provides the interface description of the store
	DefaultMintBlueprint = "ERC1155Store"
	// DefaultMintMethod is the state-changing call issued
	DefaultMintMethod = "safeMint"
)

// DefaultMintArgs are the recipient and metadata locator minted when none are given
var DefaultMintArgs = []string{"", "http://test.json"}

// MintTokenParams contains parameters for a mint call
type MintTokenParams struct {
	Contract  string
	Blueprint string
	Method    string
	Args      []string
	Fees      domain.FeeParams
	Wait      bool
}

// MintToken binds to a deployed store directly and sends one mint call
type MintToken struct {
	config     *config.RuntimeConfig
	networks   NetworkResolver
	artifacts  ArtifactRepository
	transactor ContractTransactor
	confirmer  BroadcastConfirmer
	progress   ProgressSink
}

// NewMintToken creates a new MintToken use case
func NewMintToken(
	cfg *config.RuntimeConfig,
	networks NetworkResolver,
	artifacts ArtifactRepository,
	transactor ContractTransactor,
	confirmer BroadcastConfirmer,
	progress ProgressSink,
) *MintToken {
	if progress == nil {
		progress = NopProgress{}
	}
	return &MintToken{
		config:     cfg,
		networks:   networks,
		artifacts:  artifacts,
		transactor: transactor,
		confirmer:  confirmer,
		progress:   progress,
	}
}

// Run executes the use case
func (uc *MintToken) Run(ctx context.Context, params MintTokenParams) (*models.SentTransaction, error) {
	if params.Contract == "" {
		params.Contract = DefaultMintContract
	}
	if params.Blueprint == "" {
		params.Blueprint = DefaultMintBlueprint
	}
	if params.Method == "" {
		params.Method = DefaultMintMethod
	}
	if params.Args == nil {
		params.Args = append([]string(nil), DefaultMintArgs...)
	}

	network, err := selectNetwork(ctx, uc.config, uc.networks)
	if err != nil {
		return nil, err
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, params.Blueprint)
	if err != nil {
		return nil, err
	}
	contractABI, err := artifact.ParsedABI()
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("call %s on %s (%s)", params.Method, params.Contract, network.Name)
	if err := confirmBroadcast(ctx, uc.config, uc.confirmer, network, summary); err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "sending", Message: fmt.Sprintf("Sending %s", params.Method), Spinner: true})
	tx, err := uc.transactor.Transact(ctx, TransactionRequest{
		Signer:   Signer{Network: network, Account: uc.config.Account},
		Contract: params.Contract,
		ABI:      contractABI,
		Method:   params.Method,
		Args:     params.Args,
		Fees:     resolveFees(params.Fees, uc.config),
		Wait:     params.Wait,
	})
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "done"})
	if err != nil {
		return nil, err
	}
	if !tx.Succeeded() {
		return tx, fmt.Errorf("transaction %s reverted", tx.Hash.Hex())
	}

	return tx, nil
}
