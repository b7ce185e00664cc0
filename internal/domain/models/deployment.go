package models

import (
	"fmt"
	"time"
)

// DeploymentMethod represents how the contract was deployed
type DeploymentMethod string

const (
	DeploymentMethodCreate DeploymentMethod = "CREATE"
)

// Deployment represents a confirmed contract deployment record
type Deployment struct {
	// Core identification
	ID           string `json:"id"` // e.g., "31337/PullPaymentVault"
	ChainID      uint64 `json:"chainId"`
	Network      string `json:"network"`
	ContractName string `json:"contractName"` // e.g., "PullPaymentVault"
	Address      string `json:"address"`      // Contract address

	// Deployment details
	Method          DeploymentMethod `json:"method"`
	TxHash          string           `json:"txHash"`
	BlockNumber     uint64           `json:"blockNumber"`
	GasUsed         uint64           `json:"gasUsed"`
	Deployer        string           `json:"deployer"`
	ConstructorArgs string           `json:"constructorArgs,omitempty"` // Hex encoded

	// Contract artifact information
	Artifact ArtifactInfo `json:"artifact"`

	CreatedAt time.Time `json:"createdAt"`
}

// ArtifactInfo contains the build output the deployment came from
type ArtifactInfo struct {
	Path         string `json:"path"`         // Source path
	ArtifactPath string `json:"artifactPath"` // Build output file
	BytecodeHash string `json:"bytecodeHash"` // keccak256 of init code
}

// DeploymentID builds the registry key for a deployment
func DeploymentID(chainID uint64, contractName string) string {
	return fmt.Sprintf("%d/%s", chainID, contractName)
}
