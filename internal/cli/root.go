package cli

import (
	"context"
	"fmt"

	"github.com/pullpay/vault-deployer/internal/app"
	"github.com/pullpay/vault-deployer/internal/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command. Run without arguments it deploys the
// configured artifact.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vault-deployer",
		Short: "Deploy the PullPaymentVault contract",
		Long: `vault-deployer deploys a single compiled contract artifact to an Ethereum
network and prints the address it was deployed to.

Artifacts are read from Hardhat (artifacts/) or Foundry (out/) build output.
The deployer key is taken from DEPLOYER_PRIVATE_KEY.`,
		Example: `  # Deploy PullPaymentVault to the local node
  vault-deployer

  # Deploy to a network from foundry.toml [rpc_endpoints]
  vault-deployer --network sepolia`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			v := config.SetupViper(config.ResolveProjectRoot(cmd.Flags()), cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, "", nil)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.StringP("network", "n", "", "Network name from foundry.toml, built-in name or RPC URL (default localhost)")
	flags.String("rpc-url", "", "RPC endpoint, overrides the network's URL")
	flags.Uint64("chain-id", 0, "Expected chain ID (0 accepts whatever the node reports)")
	flags.String("project-root", "", "Contract project directory")
	flags.StringP("artifact", "a", "", "Artifact to deploy (default PullPaymentVault)")
	flags.Duration("confirmation-timeout", 0, "How long to wait for the receipt (default 2m)")
	flags.Duration("poll-interval", 0, "How often to poll for the receipt (default 1s)")
	flags.Uint64("gas-limit", 0, "Fixed gas limit (0 estimates)")
	flags.Duration("timeout", 0, "Overall command timeout (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	deployCmd := NewDeployCmd()
	deployCmd.GroupID = "main"
	rootCmd.AddCommand(deployCmd)

	listCmd := NewListCmd()
	listCmd.GroupID = "main"
	rootCmd.AddCommand(listCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// commandContext bounds the command by the configured overall timeout.
// Callers defer the returned cancel so it runs whether or not the command fails.
func commandContext(cmd *cobra.Command, a *app.App) (context.Context, context.CancelFunc) {
	if a.Config.Timeout > 0 {
		return context.WithTimeout(cmd.Context(), a.Config.Timeout)
	}
	return context.WithCancel(cmd.Context())
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}
