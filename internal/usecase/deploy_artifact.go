package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/domain/models"
)

// Progress stages reported while deploying
const (
	StageResolving  = "resolving"
	StageSubmitting = "submitting"
	StageWaiting    = "waiting"
	StageCompleted  = "completed"
	StageFailed     = "failed"
)

// DeployArtifact resolves one artifact, deploys it and waits for the receipt.
// Each Run produces exactly one DeploymentResult and never retries.
type DeployArtifact struct {
	config   *config.RuntimeConfig
	locator  ArtifactLocator
	selector ArtifactSelector
	client   NetworkClient
	store    DeploymentStore
	sink     ProgressSink
	log      *slog.Logger
}

// NewDeployArtifact creates a new DeployArtifact use case
func NewDeployArtifact(
	cfg *config.RuntimeConfig,
	locator ArtifactLocator,
	selector ArtifactSelector,
	client NetworkClient,
	store DeploymentStore,
	sink ProgressSink,
	log *slog.Logger,
) *DeployArtifact {
	return &DeployArtifact{
		config:   cfg,
		locator:  locator,
		selector: selector,
		client:   client,
		store:    store,
		sink:     sink,
		log:      log,
	}
}

// Run resolves the requested artifact and submits it. Errors returned directly
// happen before anything is sent (missing artifact, bad arguments); once a
// transaction is submitted the outcome is carried by the result.
func (uc *DeployArtifact) Run(ctx context.Context, req domain.DeploymentRequest) (*domain.DeploymentResult, error) {
	name := req.ArtifactName
	if name == "" {
		name = uc.config.Artifact
	}

	artifact, err := uc.resolveArtifact(ctx, name)
	if err != nil {
		return nil, err
	}

	args, err := domain.ParseConstructorArgs(artifact.Constructor(), req.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", artifact.Name, err)
	}

	return uc.Submit(ctx, artifact, args)
}

// resolveArtifact looks the artifact up and, when the name is ambiguous and a
// terminal is available, asks the user to pick one
func (uc *DeployArtifact) resolveArtifact(ctx context.Context, name string) (*domain.Artifact, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageResolving,
		Message: fmt.Sprintf("Resolving artifact: %s", name),
	})

	artifact, err := uc.locator.Locate(ctx, name)
	if err == nil {
		return artifact, nil
	}

	var ambiguous *domain.AmbiguousArtifactError
	if !errors.As(err, &ambiguous) || uc.selector == nil || uc.config.NonInteractive {
		return nil, err
	}

	selected, selErr := uc.selector.SelectArtifact(ctx, ambiguous.Matches,
		fmt.Sprintf("Multiple artifacts found for '%s'. Select one:", name))
	if selErr != nil {
		return nil, fmt.Errorf("artifact selection failed: %w", selErr)
	}
	return selected, nil
}

// Submit sends the deployment of artifact with already converted constructor
// arguments and blocks until a terminal status is reached.
func (uc *DeployArtifact) Submit(ctx context.Context, artifact *domain.Artifact, args []any) (*domain.DeploymentResult, error) {
	data, err := artifact.DeploymentData(args...)
	if err != nil {
		return nil, err
	}

	status, err := domain.StatusIdle.Transition(domain.StatusSubmitting)
	if err != nil {
		return nil, err
	}

	uc.sink.Info(fmt.Sprintf("Network: %s (%s)", uc.config.Network.Name, uc.config.Network.RPCURL))

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageSubmitting,
		Message: fmt.Sprintf("Deploying %s to %s", artifact.Name, uc.config.Network.Name),
		Spinner: true,
	})

	pending, err := uc.client.SendDeployment(ctx, data)
	if err != nil {
		// The node can refuse a creation whose constructor reverts before anything is sent
		if errors.Is(err, domain.ErrReverted) {
			return uc.finish(ctx, status, domain.Failed(artifact.Name, domain.StatusReverted, common.Hash{}, err)), nil
		}
		return uc.finish(ctx, status, domain.Failed(artifact.Name, domain.StatusNetworkFailed, common.Hash{}, asSubmissionError("send", err))), nil
	}

	uc.log.Debug("deployment sent",
		"artifact", artifact.Name,
		"tx", pending.TxHash.Hex(),
		"from", pending.From.Hex(),
		"nonce", pending.Nonce,
		"expectedAddress", pending.Address.Hex())

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageWaiting,
		Message: fmt.Sprintf("Waiting for %s", pending.TxHash.Hex()),
		Spinner: true,
	})

	waitCtx, cancel := context.WithTimeout(ctx, uc.config.ConfirmationTimeout)
	defer cancel()

	receipt, err := uc.client.AwaitReceipt(waitCtx, pending.TxHash)
	switch {
	case err == nil:
	case errors.Is(waitCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		// Our own bound expired, not the caller's
		timeoutErr := &domain.TimeoutError{TxHash: pending.TxHash, After: uc.config.ConfirmationTimeout}
		return uc.finish(ctx, status, domain.Failed(artifact.Name, domain.StatusTimedOut, pending.TxHash, timeoutErr)), nil
	default:
		return uc.finish(ctx, status, domain.Failed(artifact.Name, domain.StatusNetworkFailed, pending.TxHash, asSubmissionError("receipt", err))), nil
	}

	block := uint64(0)
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		revertErr := &domain.RevertError{TxHash: pending.TxHash, BlockNumber: block}
		return uc.finish(ctx, status, domain.Failed(artifact.Name, domain.StatusReverted, pending.TxHash, revertErr)), nil
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	result := domain.Confirmed(artifact.Name, pending.ChainID, address, pending.TxHash, block, receipt.GasUsed)
	uc.record(ctx, artifact, pending, result, data[len(artifact.Bytecode):])

	return uc.finish(ctx, status, result), nil
}

// finish moves the submission into the result's terminal status and reports it
func (uc *DeployArtifact) finish(ctx context.Context, from domain.DeploymentStatus, result *domain.DeploymentResult) *domain.DeploymentResult {
	if _, err := from.Transition(result.Status); err != nil {
		uc.log.Error("unexpected deployment status", "error", err)
	}

	if result.Succeeded() {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Message: "Deployment confirmed"})
		uc.log.Debug("deployment confirmed",
			"artifact", result.ArtifactName,
			"address", result.Address.Hex(),
			"tx", result.TxHash.Hex(),
			"block", result.BlockNumber,
			"gasUsed", result.GasUsed)
	} else {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: string(result.Status)})
		uc.log.Debug("deployment failed", "artifact", result.ArtifactName, "status", result.Status, "error", result.Err)
	}
	return result
}

// record stores a confirmed deployment. Failures are logged and do not change the result.
func (uc *DeployArtifact) record(ctx context.Context, artifact *domain.Artifact, pending *PendingDeployment, result *domain.DeploymentResult, packedArgs []byte) {
	if uc.store == nil {
		return
	}

	deployment := &models.Deployment{
		ID:           models.DeploymentID(result.ChainID, artifact.Name),
		ChainID:      result.ChainID,
		Network:      uc.config.Network.Name,
		ContractName: artifact.Name,
		Address:      result.Address.Hex(),
		Method:       models.DeploymentMethodCreate,
		TxHash:       result.TxHash.Hex(),
		BlockNumber:  result.BlockNumber,
		GasUsed:      result.GasUsed,
		Deployer:     pending.From.Hex(),
		Artifact: models.ArtifactInfo{
			Path:         artifact.SourceName,
			ArtifactPath: artifact.ArtifactPath,
			BytecodeHash: crypto.Keccak256Hash(artifact.Bytecode).Hex(),
		},
		CreatedAt: time.Now().UTC(),
	}
	if len(packedArgs) > 0 {
		deployment.ConstructorArgs = hexutil.Encode(packedArgs)
	}

	if err := uc.store.SaveDeployment(ctx, deployment); err != nil {
		uc.log.Warn("failed to record deployment", "id", deployment.ID, "error", err)
		uc.sink.Error(fmt.Sprintf("Deployed, but could not record it in the registry: %v", err))
	}
}

// asSubmissionError keeps adapter supplied SubmissionErrors and wraps anything else
func asSubmissionError(stage string, err error) error {
	var subErr *domain.SubmissionError
	if errors.As(err, &subErr) {
		return err
	}
	return &domain.SubmissionError{Stage: stage, Err: err}
}
