package depend

import (
	"context"
	"regexp"
	"strings"

	"github.com/dbsmedya/godepend/internal/logger"
)

// sessionSettingPattern matches the two idempotent session-setting statements
// that object scripts may carry as a prologue. They conflict with the
// recipient's batch-splitting rules and are session defaults anyway, so
// stripping them is always safe.
var sessionSettingPattern = regexp.MustCompile(`(?im)^[ \t]*SET[ \t]+(?:ANSI_NULLS|QUOTED_IDENTIFIER)[ \t]+(?:ON|OFF)[ \t]*;?[ \t]*\r?\n?`)

// batchTerminator separates batches in generated scripts.
const batchTerminator = "GO"

// NormalizeScript strips the ANSI_NULLS and QUOTED_IDENTIFIER session-setting
// statements from a creation script, however many times and in whatever
// casing they occur, and appends the batch terminator.
func NormalizeScript(script string) string {
	out := sessionSettingPattern.ReplaceAllString(script, "")
	out = strings.TrimRight(out, " \t\r\n")
	if out == "" {
		return batchTerminator + "\n"
	}
	return out + "\n" + batchTerminator + "\n"
}

// Enricher turns flattened nodes into dependency records by resolving
// identities against the catalog. Stateless across calls.
type Enricher struct {
	resolver CatalogResolver
	log      *logger.Logger
}

// NewEnricher creates an Enricher backed by the given catalog resolver.
func NewEnricher(resolver CatalogResolver, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Enricher{resolver: resolver, log: log}
}

// Enrich resolves one flattened node and its structural parent into a
// DependencyRecord. A node whose identity can no longer be resolved (dropped
// or inaccessible since discovery) yields a *ResolutionError; callers skip
// the node and continue with the rest of the batch.
func (e *Enricher) Enrich(ctx context.Context, node *FlatNode, origin Identity, includeScript bool) (DependencyRecord, error) {
	meta, err := e.resolver.Resolve(ctx, node.Identity)
	if err != nil {
		return DependencyRecord{}, &ResolutionError{Identity: node.Identity, Cause: err}
	}

	rec := DependencyRecord{
		Identity:    node.Identity,
		Kind:        meta.Kind,
		Owner:       meta.Owner,
		SchemaBound: node.SchemaBound || meta.SchemaBound,
		Tier:        node.Tier,
		OriginRoot:  origin,
	}

	if node.Parent != nil && node.Parent.Identity != nil {
		rec.Parent = node.Parent.Identity
		parentMeta, err := e.resolver.Resolve(ctx, node.Parent.Identity)
		if err != nil {
			return DependencyRecord{}, &ResolutionError{Identity: node.Parent.Identity, Cause: err}
		}
		rec.ParentKind = parentMeta.Kind
	}

	if includeScript {
		script, err := e.resolver.Script(ctx, node.Identity)
		if err != nil {
			return DependencyRecord{}, &ResolutionError{Identity: node.Identity, Cause: err}
		}
		rec.Script = NormalizeScript(script)
	}

	return rec, nil
}
