package models

import (
	"encoding/json"
)

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Bytecode decodes either Hardhat's plain hex string or Foundry's object form
type Bytecode struct {
	BytecodeObject
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		b.Object = hex
		return nil
	}
	return json.Unmarshal(data, &b.BytecodeObject)
}

// Artifact represents a Hardhat or Foundry compilation artifact on disk
type Artifact struct {
	// Hardhat fields
	Format         string                               `json:"_format,omitempty"`
	ContractName   string                               `json:"contractName,omitempty"`
	SourceName     string                               `json:"sourceName,omitempty"`
	LinkReferences map[string]map[string][]LinkRefRange `json:"linkReferences,omitempty"`

	// Shared fields
	ABI      json.RawMessage `json:"abi"`
	Bytecode Bytecode        `json:"bytecode"`

	// Foundry fields
	Metadata ArtifactMetadata `json:"metadata"`
}

// LinkRefRange is a library placeholder location in bytecode
type LinkRefRange struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// Target returns the source and contract name the artifact was compiled from
func (a *Artifact) Target() (sourceName, contractName string) {
	if a.ContractName != "" {
		return a.SourceName, a.ContractName
	}
	for source, contract := range a.Metadata.Settings.CompilationTarget {
		return source, contract // There should only be one entry
	}
	return "", ""
}

// HasLinkReferences reports whether the bytecode needs libraries linked
func (a *Artifact) HasLinkReferences() bool {
	return len(a.LinkReferences) > 0 || len(a.Bytecode.LinkReferences) > 0
}
