package adapters

import (
	"github.com/google/wire"
	"github.com/pullpay/vault-deployer/internal/adapters/artifacts"
	"github.com/pullpay/vault-deployer/internal/adapters/blockchain"
	"github.com/pullpay/vault-deployer/internal/adapters/fs"
	"github.com/pullpay/vault-deployer/internal/adapters/interactive"
	"github.com/pullpay/vault-deployer/internal/adapters/progress"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// ArtifactSet provides build output lookups
var ArtifactSet = wire.NewSet(
	artifacts.NewLocator,
	wire.Bind(new(usecase.ArtifactLocator), new(*artifacts.Locator)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStore,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.RegistryStore)),
)

// BlockchainSet provides the JSON-RPC network client
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.NetworkClient), new(*blockchain.Client)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.ChainChecker), new(*blockchain.CheckerAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	wire.Bind(new(usecase.NetworkCatalog), new(*config.NetworkResolver)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.ProvideSelector,
)

// ProgressSet picks the progress sink for the current terminal
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	ArtifactSet,
	FSSet,
	BlockchainSet,
	ConfigSet,
	InteractiveSet,
	ProgressSet,
)
