package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// networkCheckTimeout bounds each chain ID lookup
	networkCheckTimeout = 5 * time.Second
	// networkCheckLimit caps the endpoints checked at once
	networkCheckLimit = 4
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// Offline skips contacting the endpoints
	Offline bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name    string
	RPCURL  string
	ChainID uint64
	Error   error
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	catalog NetworkCatalog
	checker ChainChecker
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(catalog NetworkCatalog, checker ChainChecker) *ListNetworks {
	return &ListNetworks{
		catalog: catalog,
		checker: checker,
	}
}

// Run resolves every known network and, unless offline, asks each endpoint
// for its chain ID. Endpoints are checked concurrently; a failing endpoint is
// reported on its own status and never fails the listing.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	names := uc.catalog.Networks()
	networks := make([]NetworkStatus, len(names))

	var g errgroup.Group
	g.SetLimit(networkCheckLimit)

	for i, name := range names {
		networks[i].Name = name

		network, err := uc.catalog.Lookup(name)
		if err != nil {
			networks[i].Error = err
			continue
		}
		networks[i].RPCURL = network.RPCURL
		networks[i].ChainID = network.ChainID

		if params.Offline {
			continue
		}

		status := &networks[i]
		expected := network.ChainID
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, networkCheckTimeout)
			defer cancel()

			chainID, err := uc.checker.ChainID(checkCtx, status.RPCURL)
			switch {
			case err != nil:
				status.Error = err
			case expected != 0 && chainID != expected:
				status.Error = fmt.Errorf("chain ID mismatch: expected %d, got %d", expected, chainID)
			default:
				status.ChainID = chainID
			}
			return nil
		})
	}
	_ = g.Wait()

	return &ListNetworksResult{Networks: networks}, nil
}
