package cli

import (
	"github.com/pullpay/vault-deployer/internal/cli/render"
	"github.com/pullpay/vault-deployer/internal/domain"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy [artifact] [constructor-args...]",
		Short: "Deploy a compiled artifact",
		Long: `Deploy a compiled artifact and wait for its receipt.

The artifact is a contract name or a fully qualified "source:Name" identifier.
Remaining arguments are passed to the constructor. Use -- before negative
numbers so they are not read as flags.`,
		Example: `  # Deploy the default artifact
  vault-deployer deploy

  # Disambiguate between contracts with the same name
  vault-deployer deploy contracts/PullPaymentVault.sol:PullPaymentVault

  # Pass constructor arguments
  vault-deployer deploy Escrow 0x70997970C51812dc3A010C7d01b50e0d17dc79C8 86400`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name, args = args[0], args[1:]
			}
			return runDeploy(cmd, name, args)
		},
	}
}

// runDeploy deploys name (or the configured artifact) and reports the outcome.
// Any outcome other than a confirmed deployment is returned as an error.
func runDeploy(cmd *cobra.Command, name string, args []string) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd, app)
	defer cancel()

	result, err := app.DeployArtifact.Run(ctx, domain.DeploymentRequest{
		ArtifactName: name,
		Args:         args,
	})
	if err != nil {
		return err
	}

	renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), app.Log)
	return renderer.Render(result)
}
