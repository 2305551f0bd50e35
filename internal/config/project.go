package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// ProjectFileNames are the project files looked up, in order of preference
var ProjectFileNames = []string{"storectl.toml", "storectl.yaml", "storectl.yml"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// fee defaults take the same forms as the fee flags
	if err := v.RegisterValidation("wei", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseWei(fl.FieldName(), fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// FindProjectFile returns the first project file present in dir, or "".
func FindProjectFile(dir string) string {
	for _, name := range ProjectFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return name
		}
	}
	return ""
}

// LoadProjectConfig loads .env files, decodes the project file and expands ${VAR}
// references. Missing fields fall back to config.DefaultProjectConfig.
func LoadProjectConfig(projectRoot, fileName string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := config.DefaultProjectConfig()
	if fileName == "" {
		return cfg, nil
	}

	path := filepath.Join(projectRoot, fileName)
	data, err := os.ReadFile(path) //nolint:gosec // project file path
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", fileName, err)
	}

	var raw config.ProjectConfig
	switch filepath.Ext(fileName) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fileName, err)
		}
	default:
		return nil, fmt.Errorf("unsupported project file %s", fileName)
	}

	mergeProjectConfig(cfg, &raw)
	expandProjectConfig(cfg)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

// ValidateNetwork checks a single network section. Networks are validated when
// selected so that an unset variable for an unused network doesn't block others.
func ValidateNetwork(name string, network config.NetworkConfig) error {
	if err := validate.Struct(network); err != nil {
		return fmt.Errorf("invalid network %s: %w", name, err)
	}
	return nil
}

// loadEnvFiles loads .env then .env.local; variables already set win
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				slog.Warn("failed to load env file", "file", envFile, "error", err)
			}
		}
	}
}

func mergeProjectConfig(dst, src *config.ProjectConfig) {
	if src.Paths.Artifacts != "" {
		dst.Paths.Artifacts = src.Paths.Artifacts
	}
	for name, network := range src.Networks {
		dst.Networks[name] = network
	}
	for name, key := range src.Etherscan.APIKey {
		dst.Etherscan.APIKey[name] = key
	}
	if src.Etherscan.APIURL != "" {
		dst.Etherscan.APIURL = src.Etherscan.APIURL
	}
	if src.Fees.MaxFeePerGas != "" {
		dst.Fees.MaxFeePerGas = src.Fees.MaxFeePerGas
	}
	if src.Fees.MaxPriorityFeePerGas != "" {
		dst.Fees.MaxPriorityFeePerGas = src.Fees.MaxPriorityFeePerGas
	}
	if src.Upgrades.Kind != "" {
		dst.Upgrades.Kind = src.Upgrades.Kind
	}
	if src.Upgrades.ProxyAdmin != "" {
		dst.Upgrades.ProxyAdmin = src.Upgrades.ProxyAdmin
	}
	if src.Upgrades.TransparentProxy != "" {
		dst.Upgrades.TransparentProxy = src.Upgrades.TransparentProxy
	}
	if src.Upgrades.ERC1967Proxy != "" {
		dst.Upgrades.ERC1967Proxy = src.Upgrades.ERC1967Proxy
	}
}

func expandProjectConfig(cfg *config.ProjectConfig) {
	cfg.Paths.Artifacts = os.ExpandEnv(cfg.Paths.Artifacts)

	for name, network := range cfg.Networks {
		network.URL = os.ExpandEnv(network.URL)
		// Unset key variables expand to "", which is dropped instead of failing later as a bad key
		network.Accounts = lo.Filter(lo.Map(network.Accounts, func(account string, _ int) string {
			return strings.TrimSpace(os.ExpandEnv(account))
		}), func(account string, _ int) bool {
			return account != ""
		})
		cfg.Networks[name] = network
	}

	for name, key := range cfg.Etherscan.APIKey {
		cfg.Etherscan.APIKey[name] = os.ExpandEnv(key)
	}
	cfg.Etherscan.APIURL = os.ExpandEnv(cfg.Etherscan.APIURL)
	cfg.Fees.MaxFeePerGas = os.ExpandEnv(cfg.Fees.MaxFeePerGas)
	cfg.Fees.MaxPriorityFeePerGas = os.ExpandEnv(cfg.Fees.MaxPriorityFeePerGas)
}
