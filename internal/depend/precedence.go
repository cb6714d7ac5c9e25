package depend

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// ResolvePrecedence collapses duplicate records and emits the survivors in a
// valid causal order.
//
// An object reachable from the root through multiple paths appears once per
// path, at different tiers. The occurrence with the maximum tier was
// discovered via the longest path and therefore encodes the strongest
// ordering constraint; keeping it and discarding the shallower duplicates
// never violates a discovered dependency edge.
//
// Survivors are sorted ascending by tier. Records at equal tier keep their
// first-seen (pre-order) sequence, so repeated calls over identical input
// produce identical output, and applying ResolvePrecedence to its own output
// is a no-op.
func ResolvePrecedence(records []DependencyRecord) []DependencyRecord {
	if len(records) == 0 {
		return nil
	}

	groups := orderedmap.NewOrderedMap[string, DependencyRecord]()
	for _, rec := range records {
		key := rec.Identity.Key()
		if existing, ok := groups.Get(key); !ok || rec.Tier > existing.Tier {
			groups.Set(key, rec)
		}
	}

	out := make([]DependencyRecord, 0, groups.Len())
	for el := groups.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tier < out[j].Tier
	})

	return out
}
