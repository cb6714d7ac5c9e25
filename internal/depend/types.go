// Package depend provides dependency discovery, flattening, enrichment,
// and precedence ordering for database schema objects.
package depend

import "context"

// Identity uniquely identifies one database object within a server context.
// Two identities refer to the same object iff their keys compare equal.
type Identity interface {
	// Key returns a stable unique key suitable for equality and map use.
	Key() string
	// String returns a human-readable form of the identity.
	String() string
}

// Direction selects which side of the dependency relation discovery walks.
type Direction int

const (
	// Dependents discovers objects that rely on the root to exist.
	Dependents Direction = iota
	// Dependencies discovers objects the root relies on.
	Dependencies
)

// String returns the direction name for logging and CLI output.
func (d Direction) String() string {
	if d == Dependencies {
		return "dependencies"
	}
	return "dependents"
}

// TreeNode is one node of a discovery result: a first-child/next-sibling
// tree produced by a DiscoveryService. It is read-only to this package.
type TreeNode interface {
	FirstChild() TreeNode
	NextSibling() TreeNode
	Identity() Identity
	IsSchemaBound() bool
}

// DiscoveryService performs structural discovery of dependency trees for a
// set of root identities. Implemented by the catalog adapter against a live
// server; the core only consumes the resulting tree.
type DiscoveryService interface {
	Discover(ctx context.Context, roots []Identity, includeSystem bool, dir Direction) (TreeNode, error)
}

// ObjectMeta is the catalog description of one object.
type ObjectMeta struct {
	Kind        string
	Owner       string
	SchemaBound bool
	Name        string
}

// CatalogResolver resolves an identity to its full object description and,
// optionally, its creation script.
type CatalogResolver interface {
	Resolve(ctx context.Context, id Identity) (*ObjectMeta, error)
	Script(ctx context.Context, id Identity) (string, error)
}

// FlatNode is one entry of a flattened discovery tree. Tier is the signed
// distance from the traversal root: non-negative for Dependents, non-positive
// for Dependencies. Parent points at the structural parent FlatNode; for
// direct children of the traversal root it points at the synthetic root entry.
// Immutable once created.
type FlatNode struct {
	Identity    Identity
	Tier        int
	Parent      *FlatNode
	SchemaBound bool
}

// DependencyRecord is one enriched dependency entry. Created by the Enricher,
// read-only thereafter. OriginRoot tracks which input object started the
// discovery, for multi-root batches.
type DependencyRecord struct {
	Identity    Identity
	Kind        string
	Owner       string
	SchemaBound bool
	Parent      Identity
	ParentKind  string
	Tier        int
	Script      string
	OriginRoot  Identity
}

// Options controls one resolution run.
type Options struct {
	// IncludeSystemObjects includes system schema objects in discovery.
	IncludeSystemObjects bool
	// Direction selects dependents (default) or dependencies.
	Direction Direction
	// IncludeSelf includes the root object itself as a tier-0 record.
	IncludeSelf bool
	// IncludeScript fetches and normalizes each object's creation script.
	IncludeScript bool
}

// DefaultOptions returns the documented defaults: dependents direction,
// no self entry, no system objects, scripts included.
func DefaultOptions() Options {
	return Options{
		Direction:     Dependents,
		IncludeScript: true,
	}
}

// RootResult is the outcome of resolving one root in a batch: either an
// ordered record list (possibly empty) plus any isolated node-level errors,
// or a root-level error.
type RootResult struct {
	Root       Identity
	Records    []DependencyRecord
	NodeErrors []*ResolutionError
	Err        error
}

// RestoreTarget is the fixed boundary record handed to the restore subsystem.
// Optional fields are populated once at the boundary and never mutated.
// The restore pipeline itself lives outside this module.
type RestoreTarget struct {
	Server       string
	BackupPath   string // optional: override backup file location
	DatabaseName string // optional: restore under a different name
}
