package depend

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestInvalidInputError(t *testing.T) {
	err := &InvalidInputError{Reason: "empty batch"}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected errors.Is match without root")
	}
	if !strings.Contains(err.Error(), "empty batch") {
		t.Errorf("Expected reason in message, got %q", err.Error())
	}

	cause := errors.New("no such object")
	withRoot := &InvalidInputError{Root: testID("db.t"), Reason: "root is not resolvable", Cause: cause}
	if !errors.Is(withRoot, ErrInvalidInput) {
		t.Error("Expected errors.Is match with cause set")
	}
	if !errors.Is(withRoot, cause) {
		t.Error("Expected cause to stay reachable through Unwrap")
	}
	if !strings.Contains(withRoot.Error(), "db.t") {
		t.Errorf("Expected offending root in message, got %q", withRoot.Error())
	}
}

func TestDiscoveryError(t *testing.T) {
	cause := errors.New("timeout")
	err := &DiscoveryError{Roots: []Identity{testID("db.t")}, Cause: cause}

	if !errors.Is(err, ErrDiscovery) {
		t.Error("Expected errors.Is(err, ErrDiscovery)")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected underlying cause to match")
	}
	if !strings.Contains(err.Error(), "db.t") {
		t.Errorf("Expected root in message, got %q", err.Error())
	}
}

func TestDiscoveryError_MultiRoot(t *testing.T) {
	err := &DiscoveryError{
		Roots: []Identity{testID("db.a"), testID("db.b")},
		Cause: errors.New("connection lost"),
	}

	// Every requested root is named, not just the first.
	if !strings.Contains(err.Error(), "db.a") || !strings.Contains(err.Error(), "db.b") {
		t.Errorf("Expected all roots in message, got %q", err.Error())
	}
}

func TestResolutionError(t *testing.T) {
	cause := errors.New("access denied")
	err := &ResolutionError{Identity: testID("db.v"), Cause: cause}

	if !errors.Is(err, ErrResolution) {
		t.Error("Expected errors.Is(err, ErrResolution)")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected underlying cause to match")
	}

	wrapped := fmt.Errorf("enrichment: %w", err)
	var resErr *ResolutionError
	if !errors.As(wrapped, &resErr) {
		t.Error("Expected errors.As through wrapping")
	}
}

func TestContextError(t *testing.T) {
	err := &ContextError{Root: testID("x")}
	if !errors.Is(err, ErrNoContext) {
		t.Error("Expected errors.Is(err, ErrNoContext)")
	}
}

func TestDirectionString(t *testing.T) {
	if Dependents.String() != "dependents" {
		t.Errorf("Expected dependents, got %s", Dependents)
	}
	if Dependencies.String() != "dependencies" {
		t.Errorf("Expected dependencies, got %s", Dependencies)
	}
}
