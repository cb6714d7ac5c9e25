package depend

import (
	"context"
	"errors"

	"github.com/dbsmedya/godepend/internal/logger"
)

// Resolver runs the full dependency resolution pipeline for root objects:
// discovery, flattening, per-node enrichment, precedence ordering. Each
// invocation is a pure function of its inputs plus the external services;
// no state survives across calls.
type Resolver struct {
	requester *Requester
	enricher  *Enricher
	log       *logger.Logger
}

// NewResolver wires the pipeline over a discovery service and catalog
// resolver. A nil logger falls back to the default logger.
func NewResolver(discovery DiscoveryService, catalog CatalogResolver, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Resolver{
		requester: NewRequester(discovery, catalog, log),
		enricher:  NewEnricher(catalog, log),
		log:       log,
	}
}

// ResolveObject resolves the dependency order for one root object. It
// returns the deduplicated, causally ordered records (possibly empty), the
// node-level errors that were isolated during enrichment, and a root-level
// error if discovery could not run at all.
func (r *Resolver) ResolveObject(ctx context.Context, root Identity, opts Options) ([]DependencyRecord, []*ResolutionError, error) {
	if root == nil {
		return nil, nil, &InvalidInputError{Reason: "nil root identity"}
	}

	log := r.log.WithRoot(root.String())

	if ci, ok := root.(interface{ HasServer() bool }); ok && !ci.HasServer() {
		return nil, nil, &ContextError{Root: root}
	}

	tree, err := r.requester.Discover(ctx, []Identity{root}, opts.IncludeSystemObjects, opts.Direction)
	if err != nil {
		return nil, nil, err
	}

	nodes := Flatten(tree, opts.Direction, opts.IncludeSelf)
	if len(nodes) == 0 {
		log.Infof("No %s found for %s", opts.Direction, root)
		return []DependencyRecord{}, nil, nil
	}

	records := make([]DependencyRecord, 0, len(nodes))
	var nodeErrs []*ResolutionError
	for _, node := range nodes {
		select {
		case <-ctx.Done():
			return nil, nodeErrs, ctx.Err()
		default:
		}

		rec, err := r.enricher.Enrich(ctx, node, root, opts.IncludeScript)
		if err != nil {
			var resErr *ResolutionError
			if errors.As(err, &resErr) {
				log.Warnf("Skipping %s: %v", node.Identity, resErr.Cause)
				nodeErrs = append(nodeErrs, resErr)
				continue
			}
			return nil, nodeErrs, err
		}
		records = append(records, rec)
	}

	ordered := ResolvePrecedence(records)
	log.Infof("Resolved %d %s for %s (%d discovered, %d skipped)",
		len(ordered), opts.Direction, root, len(nodes), len(nodeErrs))

	return ordered, nodeErrs, nil
}

// ResolveBatch resolves a batch of roots one at a time in input order. A
// root-level failure is recorded in that root's result and the remaining
// roots continue, so a multi-root batch can report partial success. An empty
// batch is an *InvalidInputError.
func (r *Resolver) ResolveBatch(ctx context.Context, roots []Identity, opts Options) ([]RootResult, error) {
	if len(roots) == 0 {
		return nil, &InvalidInputError{Reason: "empty batch"}
	}

	results := make([]RootResult, 0, len(roots))
	for _, root := range roots {
		records, nodeErrs, err := r.ResolveObject(ctx, root, opts)
		results = append(results, RootResult{
			Root:       root,
			Records:    records,
			NodeErrors: nodeErrs,
			Err:        err,
		})

		// A dead context aborts the whole batch, not just this root.
		if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			break
		}
	}

	return results, nil
}
