package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pullpay/vault-deployer/internal/domain"
)

// DeploymentRenderer reports the outcome of a single deployment
type DeploymentRenderer struct {
	out io.Writer
	log *slog.Logger
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, log *slog.Logger) *DeploymentRenderer {
	return &DeploymentRenderer{
		out: out,
		log: log,
	}
}

// Render prints the deployed address on success. Any other outcome is returned
// as an error so the caller exits non-zero; nothing is written to out.
func (r *DeploymentRenderer) Render(result *domain.DeploymentResult) error {
	if result == nil {
		return errors.New("no deployment result")
	}

	if !result.Succeeded() {
		if result.Err != nil {
			return result.Err
		}
		return fmt.Errorf("deployment of %s ended as %s", result.ArtifactName, result.Status)
	}

	r.log.Debug("deployment receipt",
		"chainId", result.ChainID,
		"tx", result.TxHash.Hex(),
		"block", result.BlockNumber,
		"gasUsed", result.GasUsed)

	_, err := fmt.Fprintf(r.out, "%s deployed to: %s\n", result.ArtifactName, result.Address.Hex())
	return err
}

var _ Renderer[*domain.DeploymentResult] = (*DeploymentRenderer)(nil)
