package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested artifact doesn't exist in the build output
	ErrNotFound = errors.New("not found")

	// ErrSubmission is returned when a transaction could not be delivered to the network
	ErrSubmission = errors.New("submission failed")

	// ErrReverted is returned when the network executed the deployment and rejected it
	ErrReverted = errors.New("deployment reverted")

	// ErrTimeout is returned when no receipt was observed within the wait bound
	ErrTimeout = errors.New("confirmation timed out")

	// ErrInvalidArgument is returned when a constructor argument can't be converted
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnlinkedLibrary is returned for bytecode that still carries link placeholders
	ErrUnlinkedLibrary = errors.New("unlinked library")

	// ErrInvalidTransition is returned when a deployment status change is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")
)

// NotFoundError reports an artifact name with no matching build output.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("artifact '%s' not found in build output", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AmbiguousArtifactError is returned when a bare name matches artifacts from several sources.
type AmbiguousArtifactError struct {
	Name    string
	Matches []*Artifact
}

func (e *AmbiguousArtifactError) Error() string {
	ids := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		ids = append(ids, "  - "+m.ID())
	}
	sort.Strings(ids)

	return fmt.Sprintf("multiple artifacts found matching '%s' - use source:name format to disambiguate:\n%s",
		e.Name, strings.Join(ids, "\n"))
}

// SubmissionError wraps a transport level failure. Stage names the step that failed
// (connect, nonce, fees, estimate, sign, send, receipt).
type SubmissionError struct {
	Stage string
	Err   error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit deployment (%s): %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

func (e *SubmissionError) Is(target error) bool { return target == ErrSubmission }

// RevertError is returned when the deployment transaction was included with a
// failed status, or when the node rejected it because the constructor reverts.
// TxHash is zero in the second case.
type RevertError struct {
	TxHash      common.Hash
	BlockNumber uint64
	Reason      string
}

func (e *RevertError) Error() string {
	msg := "deployment reverted"
	if e.TxHash != (common.Hash{}) {
		msg = fmt.Sprintf("deployment transaction %s reverted", e.TxHash.Hex())
	}
	if e.BlockNumber > 0 {
		msg += fmt.Sprintf(" in block %d", e.BlockNumber)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *RevertError) Is(target error) bool { return target == ErrReverted }

// TimeoutError is returned when a submitted transaction was not observed in time.
type TimeoutError struct {
	TxHash common.Hash
	After  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("transaction %s not confirmed after %s", e.TxHash.Hex(), e.After)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }
