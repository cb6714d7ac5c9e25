package depend

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is matching across the pipeline.
var (
	// ErrInvalidInput indicates an empty batch or an unresolvable root.
	ErrInvalidInput = errors.New("invalid resolution input")
	// ErrNoContext indicates an identity with no determinable server context.
	ErrNoContext = errors.New("no server context for identity")
	// ErrDiscovery indicates a failed discovery service call.
	ErrDiscovery = errors.New("dependency discovery failed")
	// ErrResolution indicates a single node that could not be resolved
	// during enrichment.
	ErrResolution = errors.New("object resolution failed")
)

// InvalidInputError reports a root that cannot be processed at all:
// the batch was empty or the root identity could not be resolved.
type InvalidInputError struct {
	Root   Identity // nil when the batch itself was empty
	Reason string
	Cause  error
}

func (e *InvalidInputError) Error() string {
	if e.Root == nil {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input for root %s: %s", e.Root, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return ErrInvalidInput
}

// Is lets errors.Is(err, ErrInvalidInput) match regardless of cause chain.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ContextError reports an identity whose owning server context cannot be
// determined. Aborts that root's resolution.
type ContextError struct {
	Root Identity
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("cannot determine server context for %s", e.Root)
}

func (e *ContextError) Unwrap() error { return ErrNoContext }

// DiscoveryError reports a failed discovery service call, with the
// requested root set attached for context. Never retried by this package.
type DiscoveryError struct {
	Roots []Identity
	Cause error
}

func (e *DiscoveryError) Error() string {
	names := make([]string, len(e.Roots))
	for i, r := range e.Roots {
		names[i] = r.String()
	}
	return fmt.Sprintf("discovery failed for root(s) %s: %v", strings.Join(names, ", "), e.Cause)
}

func (e *DiscoveryError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrDiscovery) match while the cause chain stays
// reachable through Unwrap.
func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscovery
}

// ResolutionError reports one flattened node that vanished or became
// inaccessible between discovery and enrichment. Node-level: the affected
// node is skipped and the rest of the batch continues.
type ResolutionError struct {
	Identity Identity
	Cause    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %s: %v", e.Identity, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, ErrResolution) match node-level failures.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}
