package usecase

import (
	"context"

	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/domain/models"
)

const storeABI = `[
	{"type":"function","name":"safeMint","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"uri","type":"string"}],"outputs":[]},
	{"type":"function","name":"initialize","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

type mockNetworkResolver struct {
	networks map[string]*config.Network
	err      error
}

func newMockNetworkResolver(names ...string) *mockNetworkResolver {
	m := &mockNetworkResolver{networks: map[string]*config.Network{}}
	for i, name := range names {
		m.networks[name] = &config.Network{
			Name:     name,
			ChainID:  uint64(31337 + i),
			RPCURL:   "http://127.0.0.1:8545",
			Accounts: []string{"0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"},
		}
	}
	return m
}

func (m *mockNetworkResolver) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(m.networks))
	for name := range m.networks {
		names = append(names, name)
	}
	return names
}

func (m *mockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if m.err != nil {
		return nil, m.err
	}
	network, ok := m.networks[name]
	if !ok {
		return nil, domain.UnknownNameErr{Kind: "network", Name: name}
	}
	return network, nil
}

type mockArtifacts struct {
	artifacts map[string]*models.Artifact
	buildInfo *models.BuildInfo
}

func newMockArtifacts(names ...string) *mockArtifacts {
	m := &mockArtifacts{artifacts: map[string]*models.Artifact{}}
	for _, name := range names {
		m.artifacts[name] = &models.Artifact{
			ContractName: name,
			SourceName:   "contracts/" + name + ".sol",
			ABI:          []byte(storeABI),
			Bytecode:     "0x6001600c60003960016000f300",
		}
	}
	return m
}

func (m *mockArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	artifact, ok := m.artifacts[name]
	if !ok {
		return nil, domain.UnknownNameErr{Kind: "blueprint", Name: name}
	}
	return artifact, nil
}

func (m *mockArtifacts) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	var all []*models.Artifact
	for _, a := range m.artifacts {
		all = append(all, a)
	}
	return all, nil
}

func (m *mockArtifacts) GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	if m.buildInfo == nil {
		return nil, domain.ErrNotFound
	}
	return m.buildInfo, nil
}

type mockDeployer struct {
	result   *DeployProxyResult
	err      error
	captured *DeployProxyRequest
}

func (m *mockDeployer) DeployProxy(ctx context.Context, req DeployProxyRequest) (*DeployProxyResult, error) {
	m.captured = &req
	return m.result, m.err
}

type mockUpgrader struct {
	result   *UpgradeProxyResult
	err      error
	captured *UpgradeProxyRequest
}

func (m *mockUpgrader) UpgradeProxy(ctx context.Context, req UpgradeProxyRequest) (*UpgradeProxyResult, error) {
	m.captured = &req
	return m.result, m.err
}

type mockTransactor struct {
	result   *models.SentTransaction
	err      error
	captured *TransactionRequest
}

func (m *mockTransactor) Transact(ctx context.Context, req TransactionRequest) (*models.SentTransaction, error) {
	m.captured = &req
	return m.result, m.err
}

type mockConfirmer struct {
	answer bool
	asked  int
}

func (m *mockConfirmer) ConfirmBroadcast(ctx context.Context, network *config.Network, summary string) (bool, error) {
	m.asked++
	return m.answer, nil
}

type mockManifestStore struct {
	manifests map[uint64]*models.Manifest
}

func (m *mockManifestStore) Load(ctx context.Context, chainID uint64) (*models.Manifest, error) {
	if manifest, ok := m.manifests[chainID]; ok {
		return manifest, nil
	}
	return models.NewManifest(chainID), nil
}

func (m *mockManifestStore) Save(ctx context.Context, manifest *models.Manifest) error {
	if m.manifests == nil {
		m.manifests = map[uint64]*models.Manifest{}
	}
	m.manifests[manifest.ChainID] = manifest
	return nil
}

type mockVerifier struct {
	result   *VerifyResult
	err      error
	captured *VerifyRequest
}

func (m *mockVerifier) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	m.captured = &req
	return m.result, m.err
}

func testRuntimeConfig(network string) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: "/tmp/project",
		NetworkName: network,
		Project:     config.DefaultProjectConfig(),
	}
}
