package depend

// frame is one unit of pending traversal work: a tree node, its unsigned
// depth, whether its sibling chain should be walked, and the FlatNode of
// its structural parent.
type frame struct {
	node     TreeNode
	depth    int
	parent   *FlatNode
	siblings bool
}

// Flatten walks a first-child/next-sibling discovery tree in pre-order and
// returns the annotated flat sequence. Direct children of the traversal root
// get tier 0; under self-inclusion the root itself is emitted at tier 0 and
// its children at tier 1. Descending into a first child increments the tier,
// moving to a next sibling keeps tier and structural parent. For the
// Dependencies direction every tier is negated, so ascending tier order is a
// valid causal order in both directions.
//
// A tree with no real content (nil root, or a childless root when the root
// itself is excluded) yields an empty sequence: zero dependencies is a valid
// outcome, not an error.
//
// The traversal uses an explicit work stack. Depth is bounded by the
// dependency graph, not the call stack, so pathologically deep chains
// cannot overflow.
func Flatten(root TreeNode, dir Direction, includeSelf bool) []*FlatNode {
	if root == nil {
		return nil
	}

	sign := 1
	if dir == Dependencies {
		sign = -1
	}

	var stack []frame
	if includeSelf {
		// The traversal root is singular; its sibling chain is never walked.
		stack = append(stack, frame{node: root, depth: 0})
	} else {
		first := root.FirstChild()
		if first == nil {
			return nil
		}
		// Synthetic entry for the discarded root, so direct children still
		// carry a structural parent reference.
		synthetic := &FlatNode{
			Identity:    root.Identity(),
			Tier:        0,
			SchemaBound: root.IsSchemaBound(),
		}
		stack = append(stack, frame{node: first, depth: 0, parent: synthetic, siblings: true})
	}

	var out []*FlatNode
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn := &FlatNode{
			Identity:    f.node.Identity(),
			Tier:        sign * f.depth,
			Parent:      f.parent,
			SchemaBound: f.node.IsSchemaBound(),
		}
		out = append(out, fn)

		// LIFO: push the sibling first so the child subtree pops before it,
		// preserving pre-order.
		if f.siblings {
			if sib := f.node.NextSibling(); sib != nil {
				stack = append(stack, frame{node: sib, depth: f.depth, parent: f.parent, siblings: true})
			}
		}
		if child := f.node.FirstChild(); child != nil {
			stack = append(stack, frame{node: child, depth: f.depth + 1, parent: fn, siblings: true})
		}
	}

	return out
}
