package config

import (
	"crypto/ecdsa"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string
	ArtifactDirs []string // Build output roots, searched in order

	// Deployment settings
	Artifact   string
	Network    *Network
	PrivateKey *ecdsa.PrivateKey // nil when no key is configured
	GasLimit   uint64            // 0 means estimate

	// Execution settings
	Debug               bool
	NonInteractive      bool
	Timeout             time.Duration
	ConfirmationTimeout time.Duration
	PollInterval        time.Duration

	// Resolved configurations
	FoundryConfig *FoundryConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId,omitempty"` // 0 when the chain should be asked
}

// FoundryConfig represents the parts of foundry.toml the deployer reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath string `toml:"src,omitempty"`
	OutPath string `toml:"out,omitempty"`
}
