package models

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// ManifestVersion is bumped when the on-disk layout changes
const ManifestVersion = "1"

// Manifest records what storectl deployed on one chain
type Manifest struct {
	ManifestVersion string                         `json:"manifestVersion"`
	ChainID         uint64                         `json:"chainId"`
	Admin           *DeployedContract              `json:"admin,omitempty"`
	Proxies         []*ProxyRecord                 `json:"proxies"`
	Impls           map[string]*ImplementationInfo `json:"impls"`
}

// NewManifest creates an empty manifest for the chain
func NewManifest(chainID uint64) *Manifest {
	return &Manifest{
		ManifestVersion: ManifestVersion,
		ChainID:         chainID,
		Proxies:         []*ProxyRecord{},
		Impls:           map[string]*ImplementationInfo{},
	}
}

// DeployedContract is the common record of a contract creation
type DeployedContract struct {
	Address     common.Address `json:"address"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber,omitempty"`
	DeployedAt  time.Time      `json:"deployedAt"`
}

// ImplementationInfo is an implementation contract behind one or more proxies
type ImplementationInfo struct {
	DeployedContract
	Blueprint string `json:"blueprint"`
}

// ProxyRecord is a proxy created by deploy
type ProxyRecord struct {
	DeployedContract
	Kind           config.ProxyKind `json:"kind"`
	Blueprint      string           `json:"blueprint"`
	Implementation common.Address   `json:"implementation"`
	Admin          *common.Address  `json:"admin,omitempty"`
	UpgradedAt     *time.Time       `json:"upgradedAt,omitempty"`
}

// FindProxy returns the proxy record with the given address, or nil
func (m *Manifest) FindProxy(address common.Address) *ProxyRecord {
	for _, p := range m.Proxies {
		if p.Address == address {
			return p
		}
	}
	return nil
}

// FindImplementation returns the implementation recorded for a bytecode hash, or nil
func (m *Manifest) FindImplementation(bytecodeHash common.Hash) *ImplementationInfo {
	if m.Impls == nil {
		return nil
	}
	return m.Impls[strings.ToLower(bytecodeHash.Hex())]
}

// AddImplementation records an implementation under its bytecode hash
func (m *Manifest) AddImplementation(bytecodeHash common.Hash, impl *ImplementationInfo) {
	if m.Impls == nil {
		m.Impls = map[string]*ImplementationInfo{}
	}
	m.Impls[strings.ToLower(bytecodeHash.Hex())] = impl
}

// UpsertProxy adds the record or replaces the one with the same address
func (m *Manifest) UpsertProxy(proxy *ProxyRecord) {
	for i, p := range m.Proxies {
		if p.Address == proxy.Address {
			m.Proxies[i] = proxy
			return
		}
	}
	m.Proxies = append(m.Proxies, proxy)
}
