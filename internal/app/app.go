package app

import (
	"github.com/trebuchet-org/storectl/internal/domain/config"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployProxy    *usecase.DeployProxy
	UpgradeProxy   *usecase.UpgradeProxy
	MintToken      *usecase.MintToken
	ListNetworks   *usecase.ListNetworks
	ShowManifest   *usecase.ShowManifest
	VerifyContract *usecase.VerifyContract
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployProxy *usecase.DeployProxy,
	upgradeProxy *usecase.UpgradeProxy,
	mintToken *usecase.MintToken,
	listNetworks *usecase.ListNetworks,
	showManifest *usecase.ShowManifest,
	verifyContract *usecase.VerifyContract,
) (*App, error) {
	return &App{
		Config:         cfg,
		DeployProxy:    deployProxy,
		UpgradeProxy:   upgradeProxy,
		MintToken:      mintToken,
		ListNetworks:   listNetworks,
		ShowManifest:   showManifest,
		VerifyContract: verifyContract,
	}, nil
}
