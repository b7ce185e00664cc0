package cli

import (
	"github.com/pullpay/vault-deployer/internal/cli/render"
	"github.com/pullpay/vault-deployer/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List networks available for deployment",
		Long: `List the networks configured in the [rpc_endpoints] section of foundry.toml
together with the built-in development networks.

Each endpoint is asked for its chain ID unless --offline is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := commandContext(cmd, app)
			defer cancel()

			result, err := app.ListNetworks.Run(ctx, usecase.ListNetworksParams{Offline: offline})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Do not contact the endpoints")

	return cmd
}
