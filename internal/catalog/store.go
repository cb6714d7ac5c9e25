package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dbsmedya/godepend/internal/depend"
	"github.com/dbsmedya/godepend/internal/identity"
	"github.com/dbsmedya/godepend/internal/logger"
	"github.com/dbsmedya/godepend/internal/sqlutil"
)

// Object kinds reported by Resolve.
const (
	KindTable     = "table"
	KindView      = "view"
	KindProcedure = "procedure"
	KindFunction  = "function"
	KindTrigger   = "trigger"
)

// defaultMaxDepth caps discovery expansion when no explicit depth is set.
const defaultMaxDepth = 25

// Store implements depend.DiscoveryService and depend.CatalogResolver over a
// live server connection. It only reads catalog state.
type Store struct {
	db       *sql.DB
	server   string // server label carried into URNs
	maxDepth int
	log      *logger.Logger
}

// NewStore creates a Store over the given connection. server is the label
// used for the server component of discovered URNs. maxDepth caps discovery
// depth; values <= 0 select the default.
func NewStore(db *sql.DB, server string, maxDepth int, log *logger.Logger) *Store {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Store{db: db, server: server, maxDepth: maxDepth, log: log}
}

// asURN narrows a depend.Identity to the concrete URN type, falling back to
// parsing its key for foreign implementations.
func asURN(id depend.Identity) (identity.URN, error) {
	if urn, ok := id.(identity.URN); ok {
		return urn, nil
	}
	return identity.Parse(id.Key())
}

// Resolve looks up one object in the server catalog and returns its
// description. Objects are probed as table/view, then routine, then trigger.
func (s *Store) Resolve(ctx context.Context, id depend.Identity) (*depend.ObjectMeta, error) {
	urn, err := asURN(id)
	if err != nil {
		return nil, err
	}
	if urn.Database == "" || urn.Name == "" {
		return nil, fmt.Errorf("incomplete identity %s", urn)
	}

	// Tables and views
	var tableType string
	err = s.db.QueryRowContext(ctx,
		"SELECT TABLE_TYPE FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&tableType)
	switch {
	case err == nil:
		if strings.EqualFold(tableType, "VIEW") {
			return s.resolveView(ctx, urn)
		}
		return &depend.ObjectMeta{Kind: KindTable, Name: urn.Name}, nil
	case err != sql.ErrNoRows:
		return nil, fmt.Errorf("catalog lookup failed for %s: %w", urn, err)
	}

	// Stored routines
	var routineType, definer string
	err = s.db.QueryRowContext(ctx,
		"SELECT ROUTINE_TYPE, DEFINER FROM information_schema.ROUTINES WHERE ROUTINE_SCHEMA = ? AND ROUTINE_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&routineType, &definer)
	switch {
	case err == nil:
		kind := KindProcedure
		if strings.EqualFold(routineType, "FUNCTION") {
			kind = KindFunction
		}
		return &depend.ObjectMeta{Kind: kind, Owner: definer, Name: urn.Name}, nil
	case err != sql.ErrNoRows:
		return nil, fmt.Errorf("catalog lookup failed for %s: %w", urn, err)
	}

	// Triggers
	err = s.db.QueryRowContext(ctx,
		"SELECT DEFINER FROM information_schema.TRIGGERS WHERE TRIGGER_SCHEMA = ? AND TRIGGER_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&definer)
	switch {
	case err == nil:
		return &depend.ObjectMeta{Kind: KindTrigger, Owner: definer, Name: urn.Name}, nil
	case err != sql.ErrNoRows:
		return nil, fmt.Errorf("catalog lookup failed for %s: %w", urn, err)
	}

	return nil, fmt.Errorf("object %s not found in catalog", urn)
}

// resolveView fetches view metadata including its definer.
func (s *Store) resolveView(ctx context.Context, urn identity.URN) (*depend.ObjectMeta, error) {
	var definer string
	err := s.db.QueryRowContext(ctx,
		"SELECT DEFINER FROM information_schema.VIEWS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?",
		urn.Database, urn.Name,
	).Scan(&definer)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("view lookup failed for %s: %w", urn, err)
	}
	return &depend.ObjectMeta{Kind: KindView, Owner: definer, Name: urn.Name}, nil
}

// Script returns the object's creation script via SHOW CREATE. The statement
// and the result column vary per kind, so the script column is located by
// its "Create ..." header rather than by position.
func (s *Store) Script(ctx context.Context, id depend.Identity) (string, error) {
	urn, err := asURN(id)
	if err != nil {
		return "", err
	}

	meta, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	var stmt string
	qualified := sqlutil.QuoteQualified(urn.Database, urn.Name)
	switch meta.Kind {
	case KindTable:
		stmt = "SHOW CREATE TABLE " + qualified
	case KindView:
		stmt = "SHOW CREATE VIEW " + qualified
	case KindProcedure:
		stmt = "SHOW CREATE PROCEDURE " + qualified
	case KindFunction:
		stmt = "SHOW CREATE FUNCTION " + qualified
	case KindTrigger:
		stmt = "SHOW CREATE TRIGGER " + qualified
	default:
		return "", fmt.Errorf("no script support for kind %q", meta.Kind)
	}

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("script fetch failed for %s: %w", urn, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("script fetch failed for %s: %w", urn, err)
	}
	scriptCol := -1
	for i, col := range cols {
		if strings.HasPrefix(col, "Create") {
			scriptCol = i
			break
		}
	}
	if scriptCol < 0 {
		return "", fmt.Errorf("unexpected SHOW CREATE result for %s: no script column", urn)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("script fetch failed for %s: %w", urn, err)
		}
		return "", fmt.Errorf("no script returned for %s", urn)
	}

	values := make([]interface{}, len(cols))
	for i := range values {
		values[i] = new(sql.RawBytes)
	}
	if err := rows.Scan(values...); err != nil {
		return "", fmt.Errorf("script scan failed for %s: %w", urn, err)
	}

	// Driver returns []byte for text columns; normalize to string.
	return string(*values[scriptCol].(*sql.RawBytes)), nil
}
