package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

// Backend is the subset of an Ethereum RPC client the deployer needs.
// *ethclient.Client and the simulated backend's client both satisfy it.
type Backend interface {
	ethereum.ChainIDReader
	ethereum.ChainReader
	ethereum.PendingStateReader
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.GasPricer1559
	ethereum.TransactionSender
	ethereum.TransactionReader
}

// Client implements usecase.NetworkClient by signing locally and sending
// through a JSON-RPC backend
type Client struct {
	network      *config.Network
	key          *ecdsa.PrivateKey
	gasLimit     uint64
	pollInterval time.Duration
	log          *slog.Logger

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
}

// NewClient creates a client that dials the configured network on first use
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network:      cfg.Network,
		key:          cfg.PrivateKey,
		gasLimit:     cfg.GasLimit,
		pollInterval: cfg.PollInterval,
		log:          log,
	}
}

// NewClientWithBackend creates a client over an already connected backend
func NewClientWithBackend(backend Backend, key *ecdsa.PrivateKey, gasLimit uint64, pollInterval time.Duration) *Client {
	return &Client{
		network:      &config.Network{Name: "backend"},
		key:          key,
		gasLimit:     gasLimit,
		pollInterval: pollInterval,
		log:          slog.Default(),
		backend:      backend,
	}
}

// connect establishes the RPC connection and verifies the chain ID
func (c *Client) connect(ctx context.Context) (Backend, *big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		client, err := ethclient.DialContext(ctx, c.network.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RPC %s: %w", c.network.RPCURL, err)
		}
		c.backend = client
	}

	if c.chainID == nil {
		networkChainID, err := c.backend.ChainID(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		// If the network declares no chain ID, use whatever the node reports
		if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
			return nil, nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64())
		}
		c.chainID = networkChainID
	}

	return c.backend, c.chainID, nil
}

// SendDeployment signs and sends a contract creation transaction
func (c *Client) SendDeployment(ctx context.Context, data []byte) (*usecase.PendingDeployment, error) {
	if c.key == nil {
		return nil, &domain.SubmissionError{Stage: "sign", Err: errors.New("no deployer key configured (set DEPLOYER_PRIVATE_KEY)")}
	}

	backend, chainID, err := c.connect(ctx)
	if err != nil {
		return nil, &domain.SubmissionError{Stage: "connect", Err: err}
	}

	from := crypto.PubkeyToAddress(c.key.PublicKey)

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, &domain.SubmissionError{Stage: "nonce", Err: err}
	}

	fees, err := c.suggestFees(ctx, backend)
	if err != nil {
		return nil, &domain.SubmissionError{Stage: "fees", Err: err}
	}

	gas := c.gasLimit
	if gas == 0 {
		gas, err = backend.EstimateGas(ctx, ethereum.CallMsg{
			From:      from,
			GasFeeCap: fees.feeCap,
			GasTipCap: fees.tipCap,
			GasPrice:  fees.gasPrice,
			Data:      data,
		})
		if err != nil {
			return nil, &domain.SubmissionError{Stage: "estimate", Err: err}
		}
	}

	tx := newCreationTx(chainID, nonce, gas, fees, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), c.key)
	if err != nil {
		return nil, &domain.SubmissionError{Stage: "sign", Err: err}
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, &domain.SubmissionError{Stage: "send", Err: err}
	}

	return &usecase.PendingDeployment{
		TxHash:  signed.Hash(),
		ChainID: chainID.Uint64(),
		From:    from,
		Nonce:   nonce,
		Address: crypto.CreateAddress(from, nonce),
	}, nil
}

// AwaitReceipt polls for the transaction receipt until it appears or ctx ends.
// Lookup errors are not final: nodes answer with errors while their
// transaction index catches up, so polling continues like bind.WaitMined.
func (c *Client) AwaitReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	backend, _, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if errors.Is(err, ethereum.NotFound) {
			c.logger().Debug("transaction not yet mined", "tx", txHash.Hex())
		} else {
			c.logger().Debug("receipt retrieval failed", "tx", txHash.Hex(), "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) logger() *slog.Logger {
	if c.log == nil {
		return slog.Default()
	}
	return c.log
}

// estimateRevert recognises a constructor that reverts during gas estimation
// and decodes its Error(string) reason when the node returns revert data
func estimateRevert(err error) (*domain.RevertError, bool) {
	if !strings.Contains(err.Error(), "execution reverted") {
		return nil, false
	}

	revertErr := &domain.RevertError{}
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(data); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					revertErr.Reason = reason
				}
			}
		}
	}
	return revertErr, true
}

// fees holds either dynamic fee caps or a legacy gas price
type fees struct {
	tipCap   *big.Int
	feeCap   *big.Int
	gasPrice *big.Int
}

// suggestFees uses EIP-1559 pricing when the head block carries a base fee
func (c *Client) suggestFees(ctx context.Context, backend Backend) (*fees, error) {
	head, err := backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}

	if head.BaseFee == nil {
		gasPrice, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}
		return &fees{gasPrice: gasPrice}, nil
	}

	tip, err := backend.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
	}
	// Same headroom as go-ethereum's bind package: two base fees plus the tip
	feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	return &fees{tipCap: tip, feeCap: feeCap}, nil
}

func newCreationTx(chainID *big.Int, nonce, gas uint64, f *fees, data []byte) *types.Transaction {
	if f.gasPrice != nil {
		return types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: f.gasPrice,
			Gas:      gas,
			Value:    new(big.Int),
			Data:     data,
		})
	}
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: f.tipCap,
		GasFeeCap: f.feeCap,
		Gas:       gas,
		Value:     new(big.Int),
		Data:      data,
	})
}

// Ensure the adapter implements the interface
var _ usecase.NetworkClient = (*Client)(nil)
