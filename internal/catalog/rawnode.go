// Package catalog implements dependency discovery and object resolution
// against a live MySQL server's information_schema.
package catalog

import (
	"github.com/dbsmedya/godepend/internal/depend"
	"github.com/dbsmedya/godepend/internal/identity"
)

// RawNode is one node of a discovery result: a first-child/next-sibling tree
// produced by a single Discover call and owned by that call's lifetime.
// Consumers only read it.
type RawNode struct {
	id          identity.URN
	schemaBound bool

	child     *RawNode
	lastChild *RawNode
	sibling   *RawNode
}

// NewRawNode creates a childless node for the given object.
func NewRawNode(id identity.URN, schemaBound bool) *RawNode {
	return &RawNode{id: id, schemaBound: schemaBound}
}

// AddChild appends a child at the end of the sibling chain, preserving
// discovery order.
func (n *RawNode) AddChild(child *RawNode) {
	if n.child == nil {
		n.child = child
	} else {
		n.lastChild.sibling = child
	}
	n.lastChild = child
}

// FirstChild returns the first child, or nil when there is none.
func (n *RawNode) FirstChild() depend.TreeNode {
	if n.child == nil {
		return nil
	}
	return n.child
}

// NextSibling returns the next sibling, or nil when there is none.
func (n *RawNode) NextSibling() depend.TreeNode {
	if n.sibling == nil {
		return nil
	}
	return n.sibling
}

// Identity returns the object identity of this node.
func (n *RawNode) Identity() depend.Identity {
	return n.id
}

// IsSchemaBound reports whether the edge into this node is schema-bound.
func (n *RawNode) IsSchemaBound() bool {
	return n.schemaBound
}
