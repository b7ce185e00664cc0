package usecase

import (
	"context"
	"sort"

	"github.com/pullpay/vault-deployer/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	ContractName string
	ChainID      uint64 // 0 lists every chain
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	store DeploymentStore
	sink  ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		store: store,
		sink:  sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
	})

	all, err := uc.store.ListDeployments(ctx)
	if err != nil {
		return nil, err
	}

	var deployments []*models.Deployment
	for _, d := range all {
		if params.ContractName != "" && d.ContractName != params.ContractName {
			continue
		}
		if params.ChainID != 0 && d.ChainID != params.ChainID {
			continue
		}
		deployments = append(deployments, d)
	}

	sortDeployments(deployments)

	return &DeploymentListResult{Deployments: deployments}, nil
}

// sortDeployments sorts deployments by chain, then contract name, newest first
func sortDeployments(deployments []*models.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		a, b := deployments[i], deployments[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.ContractName != b.ContractName {
			return a.ContractName < b.ContractName
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
