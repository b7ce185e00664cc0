package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/domain/models"
)

// ArtifactLocator resolves compiled artifacts from the build output.
// Locate fails with *domain.NotFoundError when nothing matches and with
// *domain.AmbiguousArtifactError when a bare name matches several sources.
type ArtifactLocator interface {
	Locate(ctx context.Context, name string) (*domain.Artifact, error)
}

// ArtifactSelector lets the user pick between ambiguous artifacts
type ArtifactSelector interface {
	SelectArtifact(ctx context.Context, artifacts []*domain.Artifact, prompt string) (*domain.Artifact, error)
}

// NetworkClient submits deployments to the target chain and observes them
type NetworkClient interface {
	// SendDeployment signs and sends a contract creation transaction carrying data
	SendDeployment(ctx context.Context, data []byte) (*PendingDeployment, error)
	// AwaitReceipt blocks until the transaction is included or ctx is done
	AwaitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// PendingDeployment describes a sent, not yet included, deployment transaction
type PendingDeployment struct {
	TxHash  common.Hash
	ChainID uint64
	From    common.Address
	Nonce   uint64
	Address common.Address // CREATE address derived from From and Nonce
}

// DeploymentStore handles persistence of confirmed deployments
type DeploymentStore interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	ListDeployments(ctx context.Context) ([]*models.Deployment, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// NetworkCatalog lists and resolves the networks a project can deploy to
type NetworkCatalog interface {
	Networks() []string
	Lookup(name string) (*config.Network, error)
}

// ChainChecker reports the chain an RPC endpoint serves
type ChainChecker interface {
	ChainID(ctx context.Context, rpcURL string) (uint64, error)
}
