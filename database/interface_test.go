package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPropertyKeyIndex_Canonicalizes(t *testing.T) {
	a := NewPropertyKeyIndex("idx", "RANGE", EntityNode,
		[]string{"B", "A", "B"}, []string{"z", "a", "z"})
	b := NewPropertyKeyIndex("idx", "RANGE", EntityNode,
		[]string{"A", "B"}, []string{"a", "z"})

	if !a.Equal(b) {
		t.Fatalf("expected definitions to be equal after canonicalization:\n%#v\n%#v", a, b)
	}
	if diff := cmp.Diff(b, a); diff != "" {
		t.Fatalf("canonicalized fields differ (-want +got):\n%s", diff)
	}
}

func TestPropertyKeyIndex_IdentityIncludesName(t *testing.T) {
	a := NewPropertyKeyIndex("idx_a", "RANGE", EntityNode, []string{"Customer"}, []string{"email"})
	b := NewPropertyKeyIndex("idx_b", "RANGE", EntityNode, []string{"Customer"}, []string{"email"})

	if a.Equal(b) {
		t.Fatal("definitions with different names must not be equal")
	}
}

func TestSortDefinitions_EmptyNamesFirst(t *testing.T) {
	defs := []PropertyKeyIndex{
		NewPropertyKeyIndex("b", "RANGE", EntityNode, []string{"L"}, []string{"p"}),
		NewPropertyKeyIndex("", "RANGE", EntityNode, []string{"L"}, []string{"p"}),
		NewPropertyKeyIndex("a", "RANGE", EntityNode, []string{"L"}, []string{"p"}),
	}

	SortDefinitions(defs)

	got := []string{defs[0].Name, defs[1].Name, defs[2].Name}
	want := []string{"", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestSnapshot_Normalize(t *testing.T) {
	snapshot := &Snapshot{
		NodeProperties: map[string][]string{
			"Customer": {"name", "id", "name"},
		},
		Indexes: []PropertyKeyIndex{
			{Name: "idx", Kind: "RANGE", EntityKind: EntityNode,
				LabelsOrTypes: []string{"B", "A"}, Properties: []string{"p"}},
			{Name: "idx", Kind: "RANGE", EntityKind: EntityNode,
				LabelsOrTypes: []string{"A", "B"}, Properties: []string{"p"}},
		},
	}

	snapshot.Normalize()

	if diff := cmp.Diff([]string{"id", "name"}, snapshot.NodeProperties["Customer"]); diff != "" {
		t.Fatalf("unexpected properties (-want +got):\n%s", diff)
	}
	if len(snapshot.Indexes) != 1 {
		t.Fatalf("expected structural duplicates to collapse, got %d indexes", len(snapshot.Indexes))
	}
	if snapshot.RelationshipProperties == nil {
		t.Fatal("expected Normalize to initialize nil maps")
	}
}
