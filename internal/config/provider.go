package config

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultArtifact is deployed when no artifact name is given
const DefaultArtifact = "PullPaymentVault"

// projectMarkers identify the root of a contract project
var projectMarkers = []string{
	"hardhat.config.js",
	"hardhat.config.ts",
	"hardhat.config.cjs",
	"hardhat.config.mjs",
	"foundry.toml",
}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	// Get project root from viper
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		// Try to find project root
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	projectRoot = absRoot

	// .env must be loaded before foundry.toml so endpoints can reference it
	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	cfg := &RuntimeConfig{
		ProjectRoot:         projectRoot,
		DataDir:             filepath.Join(projectRoot, ".deployer"),
		ArtifactDirs:        artifactDirs(projectRoot, foundryConfig),
		Artifact:            v.GetString("artifact"),
		GasLimit:            v.GetUint64("gas_limit"),
		Debug:               v.GetBool("debug"),
		NonInteractive:      v.GetBool("non_interactive"),
		Timeout:             v.GetDuration("timeout"),
		ConfirmationTimeout: v.GetDuration("confirmation_timeout"),
		PollInterval:        v.GetDuration("poll_interval"),
		FoundryConfig:       foundryConfig,
	}

	if cfg.ConfirmationTimeout <= 0 {
		return nil, fmt.Errorf("confirmation_timeout must be positive, got %s", cfg.ConfirmationTimeout)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("poll_interval must be positive, got %s", cfg.PollInterval)
	}

	networkResolver := NewNetworkResolver(foundryConfig)
	network, err := networkResolver.Resolve(v.GetString("network"), v.GetString("rpc_url"), v.GetUint64("chain_id"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}
	cfg.Network = network

	// The key is optional here; commands that sign check for it
	if raw := v.GetString("private_key"); raw != "" {
		key, err := ParsePrivateKey(raw)
		if err != nil {
			return nil, err
		}
		cfg.PrivateKey = key
	}

	return cfg, nil
}

// ParsePrivateKey parses a hex encoded secp256k1 key, with or without 0x
func ParsePrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		// Never echo the key itself
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// FindProjectRoot walks up from current directory to find a Hardhat or Foundry project
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding a project marker
			return "", fmt.Errorf("not in a contract project (no hardhat.config.* or foundry.toml found)")
		}
		dir = parent
	}
}

// ResolveProjectRoot picks the project directory before viper exists, so that
// the project's own .deployer/config.json is the one read. The --project-root
// flag wins over DEPLOYER_PROJECT_ROOT, which wins over searching upwards from
// the working directory. Outside a project the result is empty.
func ResolveProjectRoot(flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup("project-root"); f != nil && f.Changed {
			return f.Value.String()
		}
	}
	if root := os.Getenv("DEPLOYER_PROJECT_ROOT"); root != "" {
		return root
	}
	root, err := FindProjectRoot()
	if err != nil {
		return ""
	}
	return root
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".deployer"))

	// Set up environment variables
	v.SetEnvPrefix("DEPLOYER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("artifact", DefaultArtifact)
	v.SetDefault("network", "localhost")
	v.SetDefault("timeout", "5m")
	v.SetDefault("confirmation_timeout", "2m")
	v.SetDefault("poll_interval", "1s")
	v.SetDefault("gas_limit", 0)
	v.SetDefault("chain_id", 0)
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd.Flags())
	}

	return v
}

// bindFlags binds only flags the user actually set, so that env and config
// file values are not shadowed by flag defaults
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		v.Set(key, f.Value.String())
	})
}
