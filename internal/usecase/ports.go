package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
)

// ArtifactRepository provides access to compiled Hardhat artifacts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	ListArtifacts(ctx context.Context) ([]*models.Artifact, error)
	GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error)
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// ProxyDeployer creates upgradeable instances of a blueprint
type ProxyDeployer interface {
	DeployProxy(ctx context.Context, req DeployProxyRequest) (*DeployProxyResult, error)
}

// ProxyUpgrader swaps the implementation behind an existing proxy
type ProxyUpgrader interface {
	UpgradeProxy(ctx context.Context, req UpgradeProxyRequest) (*UpgradeProxyResult, error)
}

// ContractTransactor signs and sends a single call against a deployed contract
type ContractTransactor interface {
	Transact(ctx context.Context, req TransactionRequest) (*models.SentTransaction, error)
}

// ManifestStore persists what was deployed per chain
type ManifestStore interface {
	Load(ctx context.Context, chainID uint64) (*models.Manifest, error)
	Save(ctx context.Context, manifest *models.Manifest) error
}

// ContractVerifier submits source verification to a block explorer
type ContractVerifier interface {
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error)
}

// BroadcastConfirmer asks the user before a transaction leaves the machine
type BroadcastConfirmer interface {
	ConfirmBroadcast(ctx context.Context, network *config.Network, summary string) (bool, error)
}

// InteractiveSelector lets the user pick one of several candidates
type InteractiveSelector interface {
	SelectOption(ctx context.Context, prompt string, options []string) (int, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Adapter request and result types

// Signer selects the network and the account that signs
type Signer struct {
	Network *config.Network
	Account int
}

// DeployProxyRequest asks the proxy helper for a new upgradeable instance
type DeployProxyRequest struct {
	Signer
	Blueprint   *models.Artifact
	Kind        config.ProxyKind
	Initializer string
	InitArgs    []string
	Fees        domain.FeeParams
	Progress    ProgressSink
}

// DeployProxyResult describes the created proxy
type DeployProxyResult struct {
	Proxy                common.Address   `json:"proxy"`
	Implementation       common.Address   `json:"implementation"`
	Admin                *common.Address  `json:"admin,omitempty"`
	Kind                 config.ProxyKind `json:"kind"`
	TxHash               common.Hash      `json:"txHash"`
	ReusedImplementation bool             `json:"reusedImplementation"`
}

// UpgradeProxyRequest asks the proxy helper to point a proxy at a new blueprint
type UpgradeProxyRequest struct {
	Signer
	ProxyAddress string
	Blueprint    *models.Artifact
	Fees         domain.FeeParams
	Progress     ProgressSink
}

// UpgradeProxyResult describes a completed upgrade
type UpgradeProxyResult struct {
	Proxy                  common.Address   `json:"proxy"`
	Implementation         common.Address   `json:"implementation"`
	PreviousImplementation common.Address   `json:"previousImplementation"`
	Kind                   config.ProxyKind `json:"kind"`
	TxHash                 common.Hash      `json:"txHash"`
}

// TransactionRequest is one state-changing call with raw string arguments
type TransactionRequest struct {
	Signer
	Contract string
	ABI      *abi.ABI
	Method   string
	Args     []string
	Fees     domain.FeeParams
	Wait     bool
}

// VerifyRequest identifies a deployed contract and its source
type VerifyRequest struct {
	Network         *config.Network
	Address         common.Address
	Artifact        *models.Artifact
	BuildInfo       *models.BuildInfo
	ConstructorArgs []byte
}

// VerifyResult is the explorer's final answer
type VerifyResult struct {
	Verified    bool   `json:"verified"`
	Message     string `json:"message"`
	GUID        string `json:"guid,omitempty"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}
