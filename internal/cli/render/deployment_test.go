package render

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/pullpay/vault-deployer/internal/domain/models"
	"github.com/pullpay/vault-deployer/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeploymentRenderer(t *testing.T) {
	addr := common.HexToAddress("0x5fbdb2315678afecb367f032d93f642f64180aa3")

	t.Run("confirmed prints exactly one line", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewDeploymentRenderer(&buf, discardLogger())

		err := r.Render(domain.Confirmed("PullPaymentVault", 31337, addr, common.Hash{1}, 1, 500_000))
		require.NoError(t, err)
		assert.Equal(t, "PullPaymentVault deployed to: 0x5FbDB2315678afecb367f032d93F642f64180aa3\n", buf.String())
	})

	t.Run("failures are returned and print nothing", func(t *testing.T) {
		tests := []struct {
			name   string
			result *domain.DeploymentResult
			target error
		}{
			{
				name:   "reverted",
				result: domain.Failed("PullPaymentVault", domain.StatusReverted, common.Hash{1}, &domain.RevertError{TxHash: common.Hash{1}}),
				target: domain.ErrReverted,
			},
			{
				name:   "timed out",
				result: domain.Failed("PullPaymentVault", domain.StatusTimedOut, common.Hash{1}, &domain.TimeoutError{TxHash: common.Hash{1}, After: time.Second}),
				target: domain.ErrTimeout,
			},
			{
				name:   "network failed",
				result: domain.Failed("PullPaymentVault", domain.StatusNetworkFailed, common.Hash{}, &domain.SubmissionError{Stage: "send", Err: assert.AnError}),
				target: domain.ErrSubmission,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var buf bytes.Buffer
				err := NewDeploymentRenderer(&buf, discardLogger()).Render(tt.result)
				assert.ErrorIs(t, err, tt.target)
				assert.Empty(t, buf.String())
			})
		}
	})

	t.Run("failure without cause still errors", func(t *testing.T) {
		err := NewDeploymentRenderer(io.Discard, discardLogger()).Render(&domain.DeploymentResult{
			Status:       domain.StatusNetworkFailed,
			ArtifactName: "PullPaymentVault",
		})
		assert.ErrorContains(t, err, "NETWORK_FAILED")
	})
}

func TestDeploymentsRenderer(t *testing.T) {
	color.NoColor = true

	t.Run("empty registry", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).Render(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})

	t.Run("table rows", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewDeploymentsRenderer(&buf).Render(&usecase.DeploymentListResult{
			Deployments: []*models.Deployment{{
				ID:           "31337/PullPaymentVault",
				ChainID:      31337,
				Network:      "localhost",
				ContractName: "PullPaymentVault",
				Address:      "0x5FbDB2315678afecb367f032d93F642f64180aa3",
				BlockNumber:  7,
				CreatedAt:    time.Now(),
			}},
		})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "CONTRACT")
		assert.Contains(t, out, "Localhost")
		assert.Contains(t, out, "PullPaymentVault")
		assert.Contains(t, out, "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		assert.Contains(t, out, "31337")
	})
}

func TestNetworksRenderer(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	err := NewNetworksRenderer(&buf).Render(&usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "localhost", RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
			{Name: "broken", Error: assert.AnError},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "http://127.0.0.1:8545")
	assert.Contains(t, out, "31337")
	assert.Contains(t, out, assert.AnError.Error())
}
