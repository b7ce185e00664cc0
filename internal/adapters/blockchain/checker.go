package blockchain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// CheckerAdapter asks RPC endpoints which chain they serve
type CheckerAdapter struct{}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{}
}

// ChainID connects to rpcURL and returns the chain ID it reports
func (c *CheckerAdapter) ChainID(ctx context.Context, rpcURL string) (uint64, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return chainID.Uint64(), nil
}

// Ensure the adapter implements the interface
var _ usecase.ChainChecker = (*CheckerAdapter)(nil)
