package app

import (
	"log/slog"

	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployArtifact  *usecase.DeployArtifact
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployArtifact *usecase.DeployArtifact,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
) *App {
	return &App{
		Config:          cfg,
		Log:             log,
		DeployArtifact:  deployArtifact,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
	}
}
