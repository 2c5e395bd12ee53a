// Package cbeerrors defines the error taxonomy shared across catalyst's
// components. Every fallible operation in this module returns a plain
// error; callers that need to branch on the failure kind use errors.As
// against *Error rather than matching strings.
package cbeerrors

import "fmt"

// Kind enumerates the distinct ways a build can fail.
type Kind int

const (
	// MalformedManifest marks a manifest line that doesn't match the
	// expected grammar.
	MalformedManifest Kind = iota
	// DuplicateProducer marks two steps declaring the same output.
	DuplicateProducer
	// Cycle marks a dependency cycle found during topological sort.
	Cycle
	// BinaryCacheInvalid marks a `.catalyst.bin` file that failed its
	// header or bounds checks on load.
	BinaryCacheInvalid
	// StepFailed marks a subprocess that ran and returned a non-zero
	// exit code.
	StepFailed
	// SubprocessSpawnFailed marks a subprocess that could not be
	// started at all (missing binary, permission denied, ...).
	SubprocessSpawnFailed
	// Stall marks a scheduler that still has pending nodes but no
	// worker made progress, the safety net for a bug in dependency
	// bookkeeping rather than a legitimate build failure.
	Stall
)

func (k Kind) String() string {
	switch k {
	case MalformedManifest:
		return "malformed_manifest"
	case DuplicateProducer:
		return "duplicate_producer"
	case Cycle:
		return "cycle"
	case BinaryCacheInvalid:
		return "binary_cache_invalid"
	case StepFailed:
		return "step_failed"
	case SubprocessSpawnFailed:
		return "subprocess_spawn_failed"
	case Stall:
		return "stall"
	default:
		return "unknown"
	}
}

// Error is the concrete error type carrying a Kind alongside the usual
// message and wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error of the given kind around an existing cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
