package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRequest is created per invocation and discarded after submission
type DeploymentRequest struct {
	ArtifactName string
	Args         []string // Constructor arguments, in ABI order
}

// DeploymentStatus tracks a single submission.
//
//	Idle -> Submitting -> {Confirmed, Reverted, TimedOut, NetworkFailed}
//
// The right-hand states are terminal; nothing moves back to Submitting.
type DeploymentStatus string

const (
	StatusIdle          DeploymentStatus = "IDLE"
	StatusSubmitting    DeploymentStatus = "SUBMITTING"
	StatusConfirmed     DeploymentStatus = "CONFIRMED"
	StatusReverted      DeploymentStatus = "REVERTED"
	StatusTimedOut      DeploymentStatus = "TIMED_OUT"
	StatusNetworkFailed DeploymentStatus = "NETWORK_FAILED"
)

// IsTerminal reports whether no further transition is possible
func (s DeploymentStatus) IsTerminal() bool {
	switch s {
	case StatusConfirmed, StatusReverted, StatusTimedOut, StatusNetworkFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is allowed
func (s DeploymentStatus) CanTransition(next DeploymentStatus) bool {
	switch s {
	case StatusIdle:
		return next == StatusSubmitting
	case StatusSubmitting:
		return next.IsTerminal()
	default:
		return false
	}
}

// Transition returns next if the move is allowed
func (s DeploymentStatus) Transition(next DeploymentStatus) (DeploymentStatus, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// DeploymentResult is the single outcome of a DeploymentRequest.
// On success Address and TxHash are set and Err is nil; otherwise Err carries
// one of SubmissionError, RevertError or TimeoutError.
type DeploymentResult struct {
	Status       DeploymentStatus
	ArtifactName string
	ChainID      uint64
	Address      common.Address
	TxHash       common.Hash
	BlockNumber  uint64
	GasUsed      uint64
	Err          error
}

// Confirmed builds a successful result
func Confirmed(artifactName string, chainID uint64, address common.Address, txHash common.Hash, block, gasUsed uint64) *DeploymentResult {
	return &DeploymentResult{
		Status:       StatusConfirmed,
		ArtifactName: artifactName,
		ChainID:      chainID,
		Address:      address,
		TxHash:       txHash,
		BlockNumber:  block,
		GasUsed:      gasUsed,
	}
}

// Failed builds a failed result in the given terminal status
func Failed(artifactName string, status DeploymentStatus, txHash common.Hash, err error) *DeploymentResult {
	return &DeploymentResult{
		Status:       status,
		ArtifactName: artifactName,
		TxHash:       txHash,
		Err:          err,
	}
}

// Succeeded reports whether the deployment was confirmed
func (r *DeploymentResult) Succeeded() bool {
	return r.Status == StatusConfirmed && r.Err == nil
}
