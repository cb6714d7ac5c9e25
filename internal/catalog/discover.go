package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/dbsmedya/godepend/internal/depend"
	"github.com/dbsmedya/godepend/internal/identity"
)

// systemSchemas are excluded from discovery unless system objects are
// explicitly requested.
var systemSchemas = map[string]bool{
	"mysql":              true,
	"information_schema": true,
	"performance_schema": true,
	"sys":                true,
}

func isSystemSchema(schema string) bool {
	return systemSchemas[schema]
}

// edge is one discovered dependency relationship into a neighboring object.
type edge struct {
	id          identity.URN
	schemaBound bool
}

// Discover builds the dependency tree for a set of root objects. Each root's
// tree hangs off its own node; multiple roots are chained as siblings of the
// returned node, and callers walk them per root. Expansion is capped at the
// store's configured depth and guarded against foreign-key cycles by an
// ancestor set per path; an object reachable through several distinct paths
// appears once per path, which downstream precedence resolution collapses.
func (s *Store) Discover(ctx context.Context, roots []depend.Identity, includeSystem bool, dir depend.Direction) (depend.TreeNode, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no root objects supplied")
	}

	var first, prev *RawNode
	for _, root := range roots {
		urn, err := asURN(root)
		if err != nil {
			return nil, err
		}

		node := NewRawNode(urn, false)
		ancestors := map[string]bool{urn.Key(): true}
		if err := s.expand(ctx, node, includeSystem, dir, ancestors, 0); err != nil {
			return nil, err
		}

		if first == nil {
			first = node
		} else {
			prev.sibling = node
		}
		prev = node
	}

	return first, nil
}

// expand discovers the immediate neighbors of node and recurses into each,
// up to the configured depth. ancestors holds the identities on the current
// path; revisiting one would loop forever on foreign-key cycles.
func (s *Store) expand(ctx context.Context, node *RawNode, includeSystem bool, dir depend.Direction, ancestors map[string]bool, depth int) error {
	if depth >= s.maxDepth {
		s.log.Warnf("Discovery depth cap (%d) reached at %s", s.maxDepth, node.id)
		return nil
	}

	var edges []edge
	var err error
	if dir == depend.Dependencies {
		edges, err = s.dependencyEdges(ctx, node.id)
	} else {
		edges, err = s.dependentEdges(ctx, node.id)
	}
	if err != nil {
		return err
	}

	for _, e := range edges {
		if !includeSystem && isSystemSchema(e.id.Database) {
			continue
		}
		if ancestors[e.id.Key()] {
			continue
		}

		child := NewRawNode(e.id, e.schemaBound)
		node.AddChild(child)

		ancestors[e.id.Key()] = true
		err := s.expand(ctx, child, includeSystem, dir, ancestors, depth+1)
		delete(ancestors, e.id.Key())
		if err != nil {
			return err
		}
	}

	return nil
}

// dependentEdges finds objects that rely on the given object: tables whose
// foreign keys reference it, views whose definition mentions it, and
// triggers defined on it. FK edges are reported schema-bound, since dropping
// the referenced columns breaks the dependent.
func (s *Store) dependentEdges(ctx context.Context, urn identity.URN) ([]edge, error) {
	var edges []edge

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT TABLE_SCHEMA, TABLE_NAME FROM information_schema.KEY_COLUMN_USAGE
		 WHERE REFERENCED_TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME = ?
		 ORDER BY TABLE_SCHEMA, TABLE_NAME`,
		urn.Database, urn.Name)
	if err != nil {
		return nil, fmt.Errorf("referencing-table lookup failed for %s: %w", urn, err)
	}
	edges, err = s.appendEdges(edges, rows, urn.Server, true)
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT TABLE_SCHEMA, TABLE_NAME FROM information_schema.VIEWS
		 WHERE VIEW_DEFINITION LIKE ?
		 ORDER BY TABLE_SCHEMA, TABLE_NAME`,
		"%`"+urn.Database+"`.`"+urn.Name+"`%")
	if err != nil {
		return nil, fmt.Errorf("referencing-view lookup failed for %s: %w", urn, err)
	}
	edges, err = s.appendEdges(edges, rows, urn.Server, false)
	if err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT TRIGGER_SCHEMA, TRIGGER_NAME FROM information_schema.TRIGGERS
		 WHERE EVENT_OBJECT_SCHEMA = ? AND EVENT_OBJECT_TABLE = ?
		 ORDER BY TRIGGER_SCHEMA, TRIGGER_NAME`,
		urn.Database, urn.Name)
	if err != nil {
		return nil, fmt.Errorf("trigger lookup failed for %s: %w", urn, err)
	}
	return s.appendEdges(edges, rows, urn.Server, false)
}

// dependencyEdges finds objects the given object relies on: tables its
// foreign keys reference, plus tables mentioned by its definition when the
// object is a view or routine.
func (s *Store) dependencyEdges(ctx context.Context, urn identity.URN) ([]edge, error) {
	var edges []edge

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT REFERENCED_TABLE_SCHEMA, REFERENCED_TABLE_NAME FROM information_schema.KEY_COLUMN_USAGE
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND REFERENCED_TABLE_NAME IS NOT NULL
		 ORDER BY REFERENCED_TABLE_SCHEMA, REFERENCED_TABLE_NAME`,
		urn.Database, urn.Name)
	if err != nil {
		return nil, fmt.Errorf("referenced-table lookup failed for %s: %w", urn, err)
	}
	edges, err = s.appendEdges(edges, rows, urn.Server, true)
	if err != nil {
		return nil, err
	}

	definition, err := s.objectDefinition(ctx, urn)
	if err != nil {
		return nil, err
	}
	if definition != "" {
		seen := make(map[string]bool, len(edges))
		for _, e := range edges {
			seen[e.id.Key()] = true
		}
		for _, ref := range extractReferences(definition, urn.Server) {
			if seen[ref.Key()] || ref.Equal(urn) {
				continue
			}
			seen[ref.Key()] = true
			edges = append(edges, edge{id: ref})
		}
	}

	return edges, nil
}

// objectDefinition returns the SQL body of a view or stored routine, or ""
// for objects without one (tables).
func (s *Store) objectDefinition(ctx context.Context, urn identity.URN) (string, error) {
	var definition sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT VIEW_DEFINITION FROM information_schema.VIEWS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&definition)
	if err == nil {
		return definition.String, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("view definition lookup failed for %s: %w", urn, err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT ROUTINE_DEFINITION FROM information_schema.ROUTINES WHERE ROUTINE_SCHEMA = ? AND ROUTINE_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&definition)
	if err == nil {
		return definition.String, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("routine definition lookup failed for %s: %w", urn, err)
	}

	return "", nil
}

// qualifiedRefPattern matches backtick-quoted qualified names the server
// writes into stored definitions, e.g. `shop`.`orders`.
var qualifiedRefPattern = regexp.MustCompile("`([a-zA-Z0-9_]+)`\\.`([a-zA-Z0-9_]+)`")

// tableAliasPattern matches an alias declared after a qualified table
// reference, e.g. `shop`.`orders` `o` or `shop`.`orders` AS `o`. The server
// qualifies column references in stored definitions with these aliases.
var tableAliasPattern = regexp.MustCompile("`[a-zA-Z0-9_]+`\\.`[a-zA-Z0-9_]+`\\s+(?:(?i:AS)\\s+)?`([a-zA-Z0-9_]+)`")

// extractReferences pulls the qualified object references out of a stored
// view or routine definition. Column references qualified by a declared
// table alias (`o`.`id`) are not objects and are skipped.
func extractReferences(definition, server string) []identity.URN {
	aliases := make(map[string]bool)
	for _, m := range tableAliasPattern.FindAllStringSubmatch(definition, -1) {
		aliases[m[1]] = true
	}

	matches := qualifiedRefPattern.FindAllStringSubmatch(definition, -1)
	refs := make([]identity.URN, 0, len(matches))
	for _, m := range matches {
		if aliases[m[1]] {
			continue
		}
		refs = append(refs, identity.New(server, m[1], "", m[2]))
	}
	return refs
}

// appendEdges scans (schema, name) rows into edges. Always closes rows.
func (s *Store) appendEdges(edges []edge, rows *sql.Rows, server string, schemaBound bool) ([]edge, error) {
	defer rows.Close()

	for rows.Next() {
		var schema, name string
		if err := rows.Scan(&schema, &name); err != nil {
			return nil, fmt.Errorf("edge scan failed: %w", err)
		}
		edges = append(edges, edge{
			id:          identity.New(server, schema, "", name),
			schemaBound: schemaBound,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("edge iteration failed: %w", err)
	}

	return edges, nil
}
