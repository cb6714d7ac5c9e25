// Package identity provides path-like unique identifiers for database objects.
package identity

import (
	"fmt"
	"strings"
)

// URN identifies one schema object within a server context.
// The zero value is invalid; use New or Parse.
type URN struct {
	Server   string
	Database string
	Schema   string // optional; empty for servers where schema == database
	Name     string
}

// New creates a URN from its components. Schema may be empty.
func New(server, database, schema, name string) URN {
	return URN{Server: server, Database: database, Schema: schema, Name: name}
}

// Parse parses a URN from its textual form:
//
//	server/database/name
//	server/database/schema/name
//
// Returns an error for any other shape.
func Parse(s string) (URN, error) {
	parts := strings.Split(s, "/")
	for _, p := range parts {
		if p == "" {
			return URN{}, fmt.Errorf("invalid object URN %q: empty path segment", s)
		}
	}

	switch len(parts) {
	case 3:
		return URN{Server: parts[0], Database: parts[1], Name: parts[2]}, nil
	case 4:
		return URN{Server: parts[0], Database: parts[1], Schema: parts[2], Name: parts[3]}, nil
	default:
		return URN{}, fmt.Errorf("invalid object URN %q: want server/database[/schema]/name", s)
	}
}

// Key returns the stable unique key for this URN. Two URNs refer to the
// same object iff their keys are equal.
func (u URN) Key() string {
	if u.Schema == "" {
		return u.Server + "/" + u.Database + "/" + u.Name
	}
	return u.Server + "/" + u.Database + "/" + u.Schema + "/" + u.Name
}

// String returns the textual form, identical to Key.
func (u URN) String() string {
	return u.Key()
}

// Equal reports whether two URNs identify the same object.
func (u URN) Equal(other URN) bool {
	return u.Key() == other.Key()
}

// HasServer reports whether the URN carries a resolvable server context.
func (u URN) HasServer() bool {
	return u.Server != ""
}

// IsZero reports whether the URN is the zero value.
func (u URN) IsZero() bool {
	return u == URN{}
}

// Qualified returns the database-qualified object name without the server
// component, e.g. "shop.orders".
func (u URN) Qualified() string {
	if u.Schema == "" {
		return u.Database + "." + u.Name
	}
	return u.Database + "." + u.Schema + "." + u.Name
}
