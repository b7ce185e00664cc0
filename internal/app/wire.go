//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/pullpay/vault-deployer/internal/adapters"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/logging"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployArtifact,
		usecase.NewListDeployments,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
