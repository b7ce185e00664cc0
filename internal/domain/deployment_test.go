package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploymentStatusTransitions(t *testing.T) {
	terminal := []DeploymentStatus{StatusConfirmed, StatusReverted, StatusTimedOut, StatusNetworkFailed}

	t.Run("idle only moves to submitting", func(t *testing.T) {
		assert.True(t, StatusIdle.CanTransition(StatusSubmitting))
		for _, s := range terminal {
			assert.False(t, StatusIdle.CanTransition(s), s)
		}
	})

	t.Run("submitting reaches every terminal state", func(t *testing.T) {
		for _, s := range terminal {
			next, err := StatusSubmitting.Transition(s)
			require.NoError(t, err)
			assert.Equal(t, s, next)
		}
		assert.False(t, StatusSubmitting.CanTransition(StatusIdle))
	})

	t.Run("terminal states never move", func(t *testing.T) {
		for _, s := range terminal {
			assert.True(t, s.IsTerminal())
			_, err := s.Transition(StatusSubmitting)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		}
		assert.False(t, StatusIdle.IsTerminal())
		assert.False(t, StatusSubmitting.IsTerminal())
	})
}

func TestDeploymentResult(t *testing.T) {
	addr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	ok := Confirmed("PullPaymentVault", 31337, addr, common.Hash{1}, 1, 21000)
	assert.True(t, ok.Succeeded())
	assert.Equal(t, addr, ok.Address)

	failed := Failed("PullPaymentVault", StatusReverted, common.Hash{1}, &RevertError{TxHash: common.Hash{1}})
	assert.False(t, failed.Succeeded())
	assert.ErrorIs(t, failed.Err, ErrReverted)
}

func TestErrors(t *testing.T) {
	t.Run("not found lists suggestions", func(t *testing.T) {
		err := fmt.Errorf("locate: %w", &NotFoundError{Name: "PullPaymentVaul", Suggestions: []string{"PullPaymentVault"}})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "did you mean: PullPaymentVault?")
	})

	t.Run("submission error unwraps", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &SubmissionError{Stage: "send", Err: cause}
		assert.ErrorIs(t, err, ErrSubmission)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to submit deployment (send): connection refused", err.Error())
	})

	t.Run("revert and timeout messages", func(t *testing.T) {
		hash := common.HexToHash("0xaa")
		revert := &RevertError{TxHash: hash, BlockNumber: 12, Reason: "paused"}
		assert.Equal(t, fmt.Sprintf("deployment transaction %s reverted in block 12: paused", hash.Hex()), revert.Error())

		rejected := &RevertError{Reason: "cap must be positive"}
		assert.ErrorIs(t, rejected, ErrReverted)
		assert.Equal(t, "deployment reverted: cap must be positive", rejected.Error())

		timeout := &TimeoutError{TxHash: hash, After: 2 * time.Minute}
		assert.ErrorIs(t, timeout, ErrTimeout)
		assert.Contains(t, timeout.Error(), "not confirmed after 2m0s")
	})

	t.Run("ambiguous error is sorted", func(t *testing.T) {
		err := &AmbiguousArtifactError{Name: "Vault", Matches: []*Artifact{
			{Name: "Vault", SourceName: "contracts/b/Vault.sol"},
			{Name: "Vault", SourceName: "contracts/a/Vault.sol"},
		}}
		msg := err.Error()
		assert.Less(t, strings.Index(msg, "contracts/a/Vault.sol:Vault"), strings.Index(msg, "contracts/b/Vault.sol:Vault"))
	})
}

func TestArtifact(t *testing.T) {
	parsed, err := abi.JSON(strings.NewReader(`[
		{"type":"constructor","inputs":[{"name":"owner","type":"address"}]},
		{"type":"function","name":"withdraw","inputs":[],"outputs":[]},
		{"type":"function","name":"balanceOf","inputs":[{"name":"a","type":"address"}],"outputs":[{"type":"uint256"}]}
	]`))
	require.NoError(t, err)

	artifact := &Artifact{Name: "PullPaymentVault", SourceName: "contracts/PullPaymentVault.sol", Bytecode: []byte{0x60, 0x80}, ABI: parsed}

	assert.Equal(t, "contracts/PullPaymentVault.sol:PullPaymentVault", artifact.ID())
	assert.Equal(t, []string{"balanceOf(address)", "withdraw()"}, artifact.Signatures())
	assert.Len(t, artifact.Constructor(), 1)

	owner := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	data, err := artifact.DeploymentData(owner)
	require.NoError(t, err)
	assert.Len(t, data, 2+32)
	assert.Equal(t, []byte{0x60, 0x80}, data[:2])
	assert.Equal(t, owner.Bytes(), data[len(data)-20:])

	_, err = artifact.DeploymentData()
	assert.Error(t, err)
}

func TestParseConstructorArgs(t *testing.T) {
	mustType := func(s string) abi.Type {
		typ, err := abi.NewType(s, "", nil)
		require.NoError(t, err)
		return typ
	}
	args := func(types ...string) abi.Arguments {
		out := make(abi.Arguments, 0, len(types))
		for _, typ := range types {
			out = append(out, abi.Argument{Type: mustType(typ)})
		}
		return out
	}

	t.Run("no constructor arguments", func(t *testing.T) {
		values, err := ParseConstructorArgs(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("converts to packer types", func(t *testing.T) {
		inputs := args("address", "bool", "string", "bytes", "bytes4", "uint8", "int64", "uint256", "int256")
		values, err := ParseConstructorArgs(inputs, []string{
			"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			"true",
			"hello",
			"0xdeadbeef",
			"0x01020304",
			"255",
			"-42",
			"0x10",
			"-1",
		})
		require.NoError(t, err)

		assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), values[0])
		assert.Equal(t, true, values[1])
		assert.Equal(t, "hello", values[2])
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, values[3])
		assert.Equal(t, [4]byte{1, 2, 3, 4}, values[4])
		assert.Equal(t, uint8(255), values[5])
		assert.Equal(t, int64(-42), values[6])
		assert.Equal(t, big.NewInt(16), values[7])
		assert.Equal(t, big.NewInt(-1), values[8])

		_, err = inputs.Pack(values...)
		assert.NoError(t, err)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		tests := []struct {
			typ   string
			value string
		}{
			{"address", "0x123"},
			{"bool", "maybe"},
			{"uint8", "256"},
			{"uint256", "-1"},
			{"int8", "128"},
			{"int8", "-129"},
			{"bytes2", "0x010203"},
			{"uint64", "ten"},
		}
		for _, tt := range tests {
			t.Run(tt.typ+"="+tt.value, func(t *testing.T) {
				_, err := ParseConstructorArgs(args(tt.typ), []string{tt.value})
				assert.ErrorIs(t, err, ErrInvalidArgument)
			})
		}
	})

	t.Run("signed bounds are inclusive", func(t *testing.T) {
		values, err := ParseConstructorArgs(args("int8", "int8"), []string{"-128", "127"})
		require.NoError(t, err)
		assert.Equal(t, []any{int8(-128), int8(127)}, values)
	})

	t.Run("argument count must match", func(t *testing.T) {
		_, err := ParseConstructorArgs(args("uint256"), nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "expects 1 argument(s), got 0")
	})
}
