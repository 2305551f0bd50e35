package config

import "github.com/trebuchet-org/storectl/internal/domain"

// ProjectConfig represents the storectl.toml (or storectl.yaml) project file
type ProjectConfig struct {
	Paths     PathsConfig              `toml:"paths" yaml:"paths"`
	Networks  map[string]NetworkConfig `toml:"networks" yaml:"networks"`
	Etherscan EtherscanConfig          `toml:"etherscan" yaml:"etherscan"`
	Fees      FeeDefaults              `toml:"fees" yaml:"fees"`
	Upgrades  UpgradesConfig           `toml:"upgrades" yaml:"upgrades"`
}

// PathsConfig locates the Hardhat build output
type PathsConfig struct {
	Artifacts string `toml:"artifacts" yaml:"artifacts"`
}

// NetworkConfig is a [networks.<name>] section
type NetworkConfig struct {
	URL      string   `toml:"url" yaml:"url" validate:"required,url"`
	Accounts []string `toml:"accounts" yaml:"accounts"` //nolint:gosec // holds env var references
	ChainID  uint64   `toml:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	Confirm  bool     `toml:"confirm,omitempty" yaml:"confirm,omitempty"`
}

// EtherscanConfig carries explorer API keys per network name
type EtherscanConfig struct {
	APIKey map[string]string `toml:"api_key" yaml:"api_key"`
	APIURL string            `toml:"api_url,omitempty" yaml:"api_url,omitempty" validate:"omitempty,url"`
}

// FeeDefaults are the fee bids applied when a command doesn't set its own
type FeeDefaults struct {
	MaxFeePerGas         string `toml:"max_fee_per_gas" yaml:"max_fee_per_gas" validate:"omitempty,wei"`
	MaxPriorityFeePerGas string `toml:"max_priority_fee_per_gas" yaml:"max_priority_fee_per_gas" validate:"omitempty,wei"`
}

// Params converts the defaults into domain fee parameters
func (f FeeDefaults) Params() domain.FeeParams {
	return domain.FeeParams{
		MaxFeePerGas:         f.MaxFeePerGas,
		MaxPriorityFeePerGas: f.MaxPriorityFeePerGas,
	}
}

// ProxyKind selects the proxy pattern used by deployProxy
type ProxyKind string

const (
	ProxyKindTransparent ProxyKind = "transparent"
	ProxyKindUUPS        ProxyKind = "uups"
)

// UpgradesConfig names the proxy blueprints and the default proxy kind
type UpgradesConfig struct {
	Kind             ProxyKind `toml:"kind" yaml:"kind" validate:"omitempty,oneof=transparent uups"`
	ProxyAdmin       string    `toml:"proxy_admin" yaml:"proxy_admin"`
	TransparentProxy string    `toml:"transparent_proxy" yaml:"transparent_proxy"`
	ERC1967Proxy     string    `toml:"erc1967_proxy" yaml:"erc1967_proxy"`
}

// DefaultProjectConfig returns the configuration used for unset fields
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Artifacts: "artifacts",
		},
		Networks: map[string]NetworkConfig{},
		Etherscan: EtherscanConfig{
			APIKey: map[string]string{},
			APIURL: "https://api.etherscan.io/v2/api",
		},
		Fees: FeeDefaults{
			MaxFeePerGas:         "1500000014",
			MaxPriorityFeePerGas: "1500000000",
		},
		Upgrades: UpgradesConfig{
			Kind:             ProxyKindTransparent,
			ProxyAdmin:       "ProxyAdmin",
			TransparentProxy: "TransparentUpgradeableProxy",
			ERC1967Proxy:     "ERC1967Proxy",
		},
	}
}
