package cli

import (
	"github.com/pullpay/vault-deployer/internal/cli/render"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		chainID      uint64
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List confirmed deployments recorded in .deployer/deployments.json.

The list can be filtered by contract name or chain ID.`,
		Example: `  # List all deployments
  vault-deployer list

  # List PullPaymentVault deployments on a local node
  vault-deployer list --contract PullPaymentVault --chain 31337`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app)
			defer cancel()

			result, err := app.ListDeployments.Run(ctx, usecase.ListDeploymentsParams{
				ContractName: contractName,
				ChainID:      chainID,
			})
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().Uint64Var(&chainID, "chain", 0, "Filter by chain ID")

	return cmd
}
