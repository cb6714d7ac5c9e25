package depend

import (
	"context"

	"github.com/dbsmedya/godepend/internal/logger"
)

// Requester issues discovery requests for a set of root identities.
// It validates the roots up front and surfaces discovery failures unchanged,
// wrapped with the offending root for context. No retries, no local state.
type Requester struct {
	discovery DiscoveryService
	catalog   CatalogResolver
	log       *logger.Logger
}

// NewRequester creates a Requester over the given discovery service and
// catalog resolver.
func NewRequester(discovery DiscoveryService, catalog CatalogResolver, log *logger.Logger) *Requester {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Requester{discovery: discovery, catalog: catalog, log: log}
}

// Discover validates every root against the catalog and issues a single
// blocking discovery call for the whole set. An empty set or an unresolvable
// root is an *InvalidInputError identifying the offending root; a discovery
// failure is a *DiscoveryError carrying the whole requested root set.
func (r *Requester) Discover(ctx context.Context, roots []Identity, includeSystem bool, dir Direction) (TreeNode, error) {
	if len(roots) == 0 {
		return nil, &InvalidInputError{Reason: "no root objects supplied"}
	}

	for _, root := range roots {
		if root == nil || root.Key() == "" {
			return nil, &InvalidInputError{Root: root, Reason: "root has no identity"}
		}
		if _, err := r.catalog.Resolve(ctx, root); err != nil {
			return nil, &InvalidInputError{Root: root, Reason: "root is not resolvable", Cause: err}
		}
	}

	r.log.Debugf("Discovering %s for %d root(s)", dir, len(roots))

	tree, err := r.discovery.Discover(ctx, roots, includeSystem, dir)
	if err != nil {
		return nil, &DiscoveryError{Roots: roots, Cause: err}
	}

	return tree, nil
}
