package upgrades

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/storectl/internal/adapters/blockchain"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// Manager deploys and upgrades OpenZeppelin-style proxies and records them in the manifest
type Manager struct {
	artifacts usecase.ArtifactRepository
	manifests usecase.ManifestStore
	names     config.UpgradesConfig
	dial      blockchain.Dialer
	now       func() time.Time
	log       *slog.Logger
}

// NewManager creates a proxy manager using the proxy blueprints named in the project file
func NewManager(
	cfg *config.RuntimeConfig,
	artifacts usecase.ArtifactRepository,
	manifests usecase.ManifestStore,
	log *slog.Logger,
) *Manager {
	names := config.DefaultProjectConfig().Upgrades
	if cfg.Project != nil {
		names = cfg.Project.Upgrades
	}
	return &Manager{
		artifacts: artifacts,
		manifests: manifests,
		names:     names,
		dial:      blockchain.Connect,
		now:       time.Now,
		log:       log.With("component", "ProxyManager"),
	}
}

// WithDialer replaces how backends are opened
func (m *Manager) WithDialer(dial blockchain.Dialer) *Manager {
	m.dial = dial
	return m
}

// session holds what one deploy or upgrade needs on chain
type session struct {
	backend  blockchain.Backend
	opts     *bind.TransactOpts
	manifest *models.Manifest
	progress usecase.ProgressSink
}

func (m *Manager) open(ctx context.Context, signer usecase.Signer, fees domain.FeeParams, progress usecase.ProgressSink) (*session, func(), error) {
	if progress == nil {
		progress = usecase.NopProgress{}
	}

	opts, err := blockchain.NewTransactOpts(ctx, signer, fees)
	if err != nil {
		return nil, nil, err
	}
	manifest, err := m.manifests.Load(ctx, signer.Network.ChainID)
	if err != nil {
		return nil, nil, err
	}
	backend, release, err := m.dial(ctx, signer.Network)
	if err != nil {
		return nil, nil, err
	}

	return &session{backend: backend, opts: opts, manifest: manifest, progress: progress}, release, nil
}

// DeployProxy deploys (or reuses) the implementation, then a proxy pointing at it
func (m *Manager) DeployProxy(ctx context.Context, req usecase.DeployProxyRequest) (*usecase.DeployProxyResult, error) {
	implABI, err := checkBlueprint(req.Blueprint)
	if err != nil {
		return nil, err
	}
	initData, err := encodeInitializer(implABI, req.Initializer, req.InitArgs)
	if err != nil {
		return nil, err
	}

	s, release, err := m.open(ctx, req.Signer, req.Fees, req.Progress)
	if err != nil {
		return nil, err
	}
	defer release()
	defer s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "done"})

	impl, reused, err := m.ensureImplementation(ctx, s, req.Blueprint, implABI)
	if err != nil {
		return nil, err
	}

	result := &usecase.DeployProxyResult{
		Implementation:       impl,
		Kind:                 req.Kind,
		ReusedImplementation: reused,
	}

	var proxy common.Address
	var receipt *types.Receipt
	switch req.Kind {
	case config.ProxyKindTransparent:
		adminArtifact, adminABI, err := m.adminBlueprint(ctx)
		if err != nil {
			return nil, err
		}
		if ownerCreatesAdmin(adminABI) {
			// the proxy deploys its own ProxyAdmin owned by the signer
			proxy, receipt, err = m.deployBlueprint(ctx, s, m.names.TransparentProxy, impl, s.opts.From, initData)
			if err != nil {
				return nil, err
			}
			admin, err := blockchain.ReadAddressSlot(ctx, s.backend, proxy, AdminSlot)
			if err != nil {
				return nil, err
			}
			if admin != (common.Address{}) {
				result.Admin = &admin
			}
		} else {
			admin, err := m.ensureAdmin(ctx, s, adminArtifact, adminABI)
			if err != nil {
				return nil, err
			}
			result.Admin = &admin
			proxy, receipt, err = m.deployBlueprint(ctx, s, m.names.TransparentProxy, impl, admin, initData)
			if err != nil {
				return nil, err
			}
		}
	case config.ProxyKindUUPS:
		proxy, receipt, err = m.deployBlueprint(ctx, s, m.names.ERC1967Proxy, impl, initData)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported proxy kind %q", req.Kind)
	}

	result.Proxy = proxy
	result.TxHash = receipt.TxHash

	s.manifest.UpsertProxy(&models.ProxyRecord{
		DeployedContract: m.deployed(proxy, receipt),
		Kind:             req.Kind,
		Blueprint:        req.Blueprint.ContractName,
		Implementation:   impl,
		Admin:            result.Admin,
	})
	if err := m.manifests.Save(ctx, s.manifest); err != nil {
		return nil, err
	}

	m.log.Info("deployed proxy", "proxy", proxy.Hex(), "implementation", impl.Hex(), "kind", req.Kind)
	return result, nil
}

// UpgradeProxy points an existing proxy at the implementation of a new blueprint
func (m *Manager) UpgradeProxy(ctx context.Context, req usecase.UpgradeProxyRequest) (*usecase.UpgradeProxyResult, error) {
	if !common.IsHexAddress(req.ProxyAddress) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, req.ProxyAddress)
	}
	proxy := common.HexToAddress(req.ProxyAddress)

	implABI, err := checkBlueprint(req.Blueprint)
	if err != nil {
		return nil, err
	}

	s, release, err := m.open(ctx, req.Signer, req.Fees, req.Progress)
	if err != nil {
		return nil, err
	}
	defer release()
	defer s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "done"})

	hasCode, err := blockchain.HasCode(ctx, s.backend, proxy)
	if err != nil {
		return nil, err
	}
	if !hasCode {
		return nil, fmt.Errorf("%w: %s is not a deployed proxy", domain.ErrNoCode, proxy.Hex())
	}

	admin, err := blockchain.ReadAddressSlot(ctx, s.backend, proxy, AdminSlot)
	if err != nil {
		return nil, err
	}
	previous, err := blockchain.ReadAddressSlot(ctx, s.backend, proxy, ImplementationSlot)
	if err != nil {
		return nil, err
	}
	record := s.manifest.FindProxy(proxy)
	kind := detectKind(record, admin)
	if kind == config.ProxyKindTransparent && admin == (common.Address{}) {
		switch {
		case record != nil && record.Admin != nil:
			admin = *record.Admin
		case s.manifest.Admin != nil:
			admin = s.manifest.Admin.Address
		default:
			return nil, fmt.Errorf("cannot find the admin of transparent proxy %s", proxy.Hex())
		}
	}

	impl, _, err := m.ensureImplementation(ctx, s, req.Blueprint, implABI)
	if err != nil {
		return nil, err
	}

	var tx *types.Transaction
	s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "upgrading", Message: fmt.Sprintf("Upgrading %s", proxy.Hex()), Spinner: true})
	// version 5 contracts only upgrade through the AndCall variants
	switch kind {
	case config.ProxyKindTransparent:
		if upgradeInterfaceVersion(ctx, s.backend, admin) != "" {
			tx, err = blockchain.Send(s.backend, s.opts, admin, proxyAdmin, "upgradeAndCall", proxy, impl, []byte{})
		} else {
			tx, err = blockchain.Send(s.backend, s.opts, admin, proxyAdmin, "upgrade", proxy, impl)
		}
	default:
		if upgradeInterfaceVersion(ctx, s.backend, proxy) != "" {
			tx, err = blockchain.Send(s.backend, s.opts, proxy, uups, "upgradeToAndCall", impl, []byte{})
		} else {
			tx, err = blockchain.Send(s.backend, s.opts, proxy, uups, "upgradeTo", impl)
		}
	}
	if err != nil {
		return nil, err
	}
	if _, err := blockchain.WaitSuccess(ctx, s.backend, tx); err != nil {
		return nil, err
	}

	if record != nil {
		upgradedAt := m.now().UTC()
		record.Implementation = impl
		record.Blueprint = req.Blueprint.ContractName
		record.UpgradedAt = &upgradedAt
	}
	if err := m.manifests.Save(ctx, s.manifest); err != nil {
		return nil, err
	}

	m.log.Info("upgraded proxy", "proxy", proxy.Hex(), "implementation", impl.Hex(), "previous", previous.Hex())
	return &usecase.UpgradeProxyResult{
		Proxy:                  proxy,
		Implementation:         impl,
		PreviousImplementation: previous,
		Kind:                   kind,
		TxHash:                 tx.Hash(),
	}, nil
}

// ensureImplementation reuses a live implementation with the same bytecode or deploys one
func (m *Manager) ensureImplementation(ctx context.Context, s *session, blueprint *models.Artifact, implABI *abi.ABI) (common.Address, bool, error) {
	hash := blueprint.BytecodeHash()
	if existing := s.manifest.FindImplementation(hash); existing != nil {
		live, err := blockchain.HasCode(ctx, s.backend, existing.Address)
		if err != nil {
			return common.Address{}, false, err
		}
		if live {
			s.progress.Info(fmt.Sprintf("Reusing %s implementation at %s", blueprint.ContractName, existing.Address.Hex()))
			return existing.Address, true, nil
		}
		m.log.Warn("recorded implementation has no code, redeploying", "address", existing.Address.Hex())
	}

	s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "implementation", Message: fmt.Sprintf("Deploying %s implementation", blueprint.ContractName), Spinner: true})
	address, receipt, err := blockchain.Deploy(ctx, s.backend, s.opts, implABI, blueprint.CreationCode())
	if err != nil {
		return common.Address{}, false, fmt.Errorf("failed to deploy %s implementation: %w", blueprint.ContractName, err)
	}

	s.manifest.AddImplementation(hash, &models.ImplementationInfo{
		DeployedContract: m.deployed(address, receipt),
		Blueprint:        blueprint.ContractName,
	})
	// an implementation that landed is recorded even if the proxy step fails
	if err := m.manifests.Save(ctx, s.manifest); err != nil {
		return common.Address{}, false, err
	}
	return address, false, nil
}

// adminBlueprint loads the ProxyAdmin artifact named in the project file
func (m *Manager) adminBlueprint(ctx context.Context) (*models.Artifact, *abi.ABI, error) {
	artifact, err := m.artifacts.GetArtifact(ctx, m.names.ProxyAdmin)
	if err != nil {
		return nil, nil, err
	}
	adminABI, err := checkBlueprint(artifact)
	if err != nil {
		return nil, nil, err
	}
	return artifact, adminABI, nil
}

// ensureAdmin reuses the chain's ProxyAdmin or deploys one owned by the signer
func (m *Manager) ensureAdmin(ctx context.Context, s *session, artifact *models.Artifact, adminABI *abi.ABI) (common.Address, error) {
	if s.manifest.Admin != nil {
		live, err := blockchain.HasCode(ctx, s.backend, s.manifest.Admin.Address)
		if err != nil {
			return common.Address{}, err
		}
		if live {
			return s.manifest.Admin.Address, nil
		}
	}

	s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "admin", Message: "Deploying ProxyAdmin", Spinner: true})
	address, receipt, err := blockchain.Deploy(ctx, s.backend, s.opts, adminABI, artifact.CreationCode())
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to deploy %s: %w", m.names.ProxyAdmin, err)
	}

	admin := m.deployed(address, receipt)
	s.manifest.Admin = &admin
	// a ProxyAdmin that landed is recorded even if the proxy step fails
	if err := m.manifests.Save(ctx, s.manifest); err != nil {
		return common.Address{}, err
	}
	return address, nil
}

// deployBlueprint deploys a proxy blueprint from the artifacts with constructor args
func (m *Manager) deployBlueprint(ctx context.Context, s *session, name string, args ...any) (common.Address, *types.Receipt, error) {
	artifact, err := m.artifacts.GetArtifact(ctx, name)
	if err != nil {
		return common.Address{}, nil, err
	}
	parsed, err := checkBlueprint(artifact)
	if err != nil {
		return common.Address{}, nil, err
	}

	s.progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "proxy", Message: fmt.Sprintf("Deploying %s", name), Spinner: true})
	address, receipt, err := blockchain.Deploy(ctx, s.backend, s.opts, parsed, artifact.CreationCode(), args...)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}
	return address, receipt, nil
}

func (m *Manager) deployed(address common.Address, receipt *types.Receipt) models.DeployedContract {
	contract := models.DeployedContract{
		Address:    address,
		DeployedAt: m.now().UTC(),
	}
	if receipt != nil {
		contract.TxHash = receipt.TxHash
		if receipt.BlockNumber != nil {
			contract.BlockNumber = receipt.BlockNumber.Uint64()
		}
	}
	return contract
}

// checkBlueprint rejects artifacts that cannot be deployed and returns their ABI
func checkBlueprint(artifact *models.Artifact) (*abi.ABI, error) {
	if !artifact.IsLinked() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnlinkedBytecode, artifact.ContractName)
	}
	if len(artifact.CreationCode()) == 0 {
		return nil, fmt.Errorf("%s has no bytecode, is it abstract or an interface?", artifact.ContractName)
	}
	return artifact.ParsedABI()
}

// detectKind prefers the manifest and falls back to the EIP-1967 admin slot
func detectKind(record *models.ProxyRecord, admin common.Address) config.ProxyKind {
	if record != nil && record.Kind != "" {
		return record.Kind
	}
	if admin != (common.Address{}) {
		return config.ProxyKindTransparent
	}
	return config.ProxyKindUUPS
}

var (
	_ usecase.ProxyDeployer = (*Manager)(nil)
	_ usecase.ProxyUpgrader = (*Manager)(nil)
)
