//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/storectl/internal/adapters"
	"github.com/trebuchet-org/storectl/internal/config"
	"github.com/trebuchet-org/storectl/internal/logging"
	"github.com/trebuchet-org/storectl/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Runtime configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployProxy,
		usecase.NewUpgradeProxy,
		usecase.NewMintToken,
		usecase.NewListNetworks,
		usecase.NewShowManifest,
		usecase.NewVerifyContract,

		// App
		NewApp,
	)
	return nil, nil
}
