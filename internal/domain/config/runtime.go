package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string
	ConfigFile  string // storectl.toml or storectl.yaml, relative to ProjectRoot

	// Context settings
	NetworkName string // as selected with --network or STORECTL_NETWORK
	Account     int    // index into the network's accounts

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Yes            bool // Skip broadcast confirmation
	Timeout        time.Duration

	// Fee flags override the project defaults field by field
	Fees FeeDefaults

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents a resolved network
type Network struct {
	Name        string   `json:"name"`
	ChainID     uint64   `json:"chainId"`
	RPCURL      string   `json:"rpcUrl"`
	Accounts    []string `json:"-"`
	ExplorerURL string   `json:"explorerUrl,omitempty"`
	Confirm     bool     `json:"confirm,omitempty"`
}

// IsDevChain reports whether the network is a local development chain.
func (n *Network) IsDevChain() bool {
	return n.ChainID == 31337 || n.ChainID == 1337
}
