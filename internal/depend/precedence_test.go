package depend

import (
	"reflect"
	"testing"
)

func rec(id testID, tier int) DependencyRecord {
	return DependencyRecord{Identity: id, Tier: tier, Kind: "table"}
}

func recIDs(records []DependencyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Identity.Key()
	}
	return out
}

func TestResolvePrecedence_Empty(t *testing.T) {
	if out := ResolvePrecedence(nil); len(out) != 0 {
		t.Errorf("Expected empty output for nil input, got %d records", len(out))
	}
	if out := ResolvePrecedence([]DependencyRecord{}); len(out) != 0 {
		t.Errorf("Expected empty output for empty input, got %d records", len(out))
	}
}

func TestResolvePrecedence_KeepsMaxTier(t *testing.T) {
	out := ResolvePrecedence([]DependencyRecord{
		rec("D", 1),
		rec("D", 3),
		rec("D", 2),
	})

	if len(out) != 1 {
		t.Fatalf("Expected 1 record after dedup, got %d", len(out))
	}
	if out[0].Tier != 3 {
		t.Errorf("Expected surviving tier 3, got %d", out[0].Tier)
	}
}

func TestResolvePrecedence_AscendingTiers(t *testing.T) {
	out := ResolvePrecedence([]DependencyRecord{
		rec("C", 2),
		rec("A", 0),
		rec("B", 1),
	})

	want := []string{"A", "B", "C"}
	if got := recIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}

func TestResolvePrecedence_Diamond(t *testing.T) {
	// A (root) depended on by B and C, both depended on by D:
	// flattened pre-order yields D twice at different tiers.
	out := ResolvePrecedence([]DependencyRecord{
		rec("B", 0),
		rec("D", 1),
		rec("C", 0),
		rec("E", 1),
		rec("D", 2),
	})

	want := []string{"B", "C", "E", "D"}
	if got := recIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}

	// D survives once with its deeper tier, positioned after B and C.
	last := out[len(out)-1]
	if last.Identity.Key() != "D" || last.Tier != 2 {
		t.Errorf("Expected D at tier 2 last, got %s at tier %d", last.Identity, last.Tier)
	}
}

func TestResolvePrecedence_StableTies(t *testing.T) {
	input := []DependencyRecord{
		rec("B", 0),
		rec("A", 0),
		rec("C", 0),
	}

	first := ResolvePrecedence(input)
	second := ResolvePrecedence(input)

	// Equal tiers keep first-seen order, identically across calls.
	want := []string{"B", "A", "C"}
	if got := recIDs(first); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected first-seen order %v, got %v", want, got)
	}
	if !reflect.DeepEqual(recIDs(first), recIDs(second)) {
		t.Errorf("Expected identical output across calls, got %v then %v", recIDs(first), recIDs(second))
	}
}

func TestResolvePrecedence_Idempotent(t *testing.T) {
	input := []DependencyRecord{
		rec("B", 0),
		rec("D", 1),
		rec("C", 0),
		rec("D", 2),
		rec("A", 3),
	}

	once := ResolvePrecedence(input)
	twice := ResolvePrecedence(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Expected idempotent resolution, got %v then %v", recIDs(once), recIDs(twice))
	}
}

func TestResolvePrecedence_NegativeTiers(t *testing.T) {
	// Dependencies direction: tiers are non-positive, deepest prerequisite
	// sorts first.
	out := ResolvePrecedence([]DependencyRecord{
		rec("B", -1),
		rec("C", -2),
		rec("A", 0),
	})

	want := []string{"C", "B", "A"}
	if got := recIDs(out); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected order %v, got %v", want, got)
	}
}
