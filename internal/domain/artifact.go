package domain

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/samber/lo"
)

// Artifact is a compiled, deployable contract read from the build output.
// It is produced by the external compiler and never modified here.
type Artifact struct {
	Name         string
	SourceName   string
	ArtifactPath string
	Bytecode     []byte
	ABI          abi.ABI
}

// ID returns the fully qualified "source:name" identifier
func (a *Artifact) ID() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.Name)
}

// Constructor returns the constructor inputs, empty when the contract declares none
func (a *Artifact) Constructor() abi.Arguments {
	return a.ABI.Constructor.Inputs
}

// Signatures returns the sorted callable method signatures of the artifact
func (a *Artifact) Signatures() []string {
	sigs := lo.MapToSlice(a.ABI.Methods, func(_ string, m abi.Method) string {
		return m.Sig
	})
	sort.Strings(sigs)
	return sigs
}

// DeploymentData returns the init code followed by the ABI encoded constructor arguments
func (a *Artifact) DeploymentData(args ...any) ([]byte, error) {
	packed, err := a.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack constructor arguments for %s: %w", a.Name, err)
	}

	data := make([]byte, 0, len(a.Bytecode)+len(packed))
	data = append(data, a.Bytecode...)
	return append(data, packed...), nil
}
