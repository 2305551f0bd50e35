package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/storectl/internal/adapters/blockchain"
	"github.com/trebuchet-org/storectl/internal/adapters/interactive"
	"github.com/trebuchet-org/storectl/internal/adapters/network"
	"github.com/trebuchet-org/storectl/internal/adapters/progress"
	"github.com/trebuchet-org/storectl/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/storectl/internal/adapters/repository/manifest"
	"github.com/trebuchet-org/storectl/internal/adapters/upgrades"
	"github.com/trebuchet-org/storectl/internal/adapters/verification"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// RepositorySet provides filesystem-backed artifact and manifest storage
var RepositorySet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),

	manifest.NewFileStore,
	wire.Bind(new(usecase.ManifestStore), new(*manifest.FileStore)),
)

// NetworkSet provides network resolution from the project file
var NetworkSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// BlockchainSet provides the chain-facing adapters
var BlockchainSet = wire.NewSet(
	blockchain.NewTransactor,
	wire.Bind(new(usecase.ContractTransactor), new(*blockchain.Transactor)),

	upgrades.NewManager,
	wire.Bind(new(usecase.ProxyDeployer), new(*upgrades.Manager)),
	wire.Bind(new(usecase.ProxyUpgrader), new(*upgrades.Manager)),
)

// VerificationSet provides the block explorer client
var VerificationSet = wire.NewSet(
	verification.NewEtherscanVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.EtherscanVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewPrompter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.Prompter)),
	wire.Bind(new(usecase.BroadcastConfirmer), new(*interactive.Prompter)),
)

// ProgressSet provides the progress sink for the current output mode
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	NetworkSet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ProgressSet,
)
