package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// loadEnvFiles loads .env and .env.local from the project root. Variables that
// are already set in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadFoundryConfig loads foundry.toml if the project has one. Hardhat projects
// return an empty config.
func loadFoundryConfig(projectRoot string) (*FoundryConfig, error) {
	cfg := &FoundryConfig{
		Profile:      make(map[string]ProfileConfig),
		RpcEndpoints: make(map[string]string),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range cfg.RpcEndpoints {
		cfg.RpcEndpoints[name] = expandEnv(url)
	}

	return cfg, nil
}

// expandEnv expands ${VAR} references, leaving unset ones in place so the
// network resolver can report them.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return "${" + key + "}"
	})
}

// artifactDirs returns the build output roots for the project: Hardhat's
// artifacts/ first, then the Foundry out/ directory of the default profile.
func artifactDirs(projectRoot string, foundry *FoundryConfig) []string {
	out := "out"
	if profile, ok := foundry.Profile["default"]; ok && profile.OutPath != "" {
		out = profile.OutPath
	}

	return []string{
		filepath.Join(projectRoot, "artifacts"),
		filepath.Join(projectRoot, out),
	}
}
