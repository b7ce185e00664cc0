package config

import (
	"fmt"
	"sort"
	"strings"
)

const localRPCURL = "http://127.0.0.1:8545"

// builtinNetworks are the development nodes that need no configuration
var builtinNetworks = map[string]Network{
	"localhost": {Name: "localhost", RPCURL: localRPCURL},
	"hardhat":   {Name: "hardhat", RPCURL: localRPCURL, ChainID: 31337},
	"anvil":     {Name: "anvil", RPCURL: localRPCURL, ChainID: 31337},
}

// NetworkResolver resolves network names to RPC endpoints
type NetworkResolver struct {
	endpoints map[string]string
}

// NewNetworkResolver creates a resolver over the foundry.toml rpc endpoints
func NewNetworkResolver(foundryConfig *FoundryConfig) *NetworkResolver {
	endpoints := make(map[string]string)
	if foundryConfig != nil {
		for name, url := range foundryConfig.RpcEndpoints {
			endpoints[name] = url
		}
	}
	return &NetworkResolver{endpoints: endpoints}
}

// Resolve resolves a network by configured name, built-in name, or RPC URL.
// A non-empty rpcOverride replaces the resolved endpoint.
func (r *NetworkResolver) Resolve(name, rpcOverride string, chainID uint64) (*Network, error) {
	network, err := r.lookup(name)
	if err != nil {
		if rpcOverride == "" {
			return nil, err
		}
		network = &Network{Name: name}
	}

	if rpcOverride != "" {
		network.RPCURL = rpcOverride
	}
	if chainID != 0 {
		network.ChainID = chainID
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for network %s", network.Name)
	}
	if strings.Contains(network.RPCURL, "${") {
		return nil, fmt.Errorf("RPC URL for network %s references an unset environment variable: %s", network.Name, network.RPCURL)
	}

	return network, nil
}

func (r *NetworkResolver) lookup(name string) (*Network, error) {
	if name == "" {
		return nil, fmt.Errorf("network not specified")
	}

	if url, ok := r.endpoints[name]; ok {
		return &Network{Name: name, RPCURL: url}, nil
	}

	if network, ok := builtinNetworks[strings.ToLower(name)]; ok {
		return &network, nil
	}

	if isRPCURL(name) {
		return &Network{Name: "custom", RPCURL: name}, nil
	}

	return nil, fmt.Errorf("unknown network: %s (add it to foundry.toml [rpc_endpoints] or pass an RPC URL)", name)
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// ProvideNetworkResolver builds the resolver for the loaded project
func ProvideNetworkResolver(cfg *RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.FoundryConfig)
}

// Networks returns the foundry.toml endpoint names followed by the built-ins
// not shadowed by them, each group sorted
func (r *NetworkResolver) Networks() []string {
	configured := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		configured = append(configured, name)
	}
	sort.Strings(configured)

	builtins := make([]string, 0, len(builtinNetworks))
	for name := range builtinNetworks {
		if _, ok := r.endpoints[name]; !ok {
			builtins = append(builtins, name)
		}
	}
	sort.Strings(builtins)

	return append(configured, builtins...)
}

// Lookup resolves a network by name without overrides
func (r *NetworkResolver) Lookup(name string) (*Network, error) {
	return r.Resolve(name, "", 0)
}
