package schema

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/graphplane/graphplane/database"
)

func TestBuildSnapshot_MultiLabelAttribution(t *testing.T) {
	nodeRows := []map[string]any{
		{"nodeLabels": []any{"Customer", "Person"}, "propertyName": "email"},
		{"nodeLabels": []any{"Customer"}, "propertyName": "id"},
	}

	snapshot := BuildSnapshot(nodeRows, nil, nil, nil)

	want := map[string][]string{
		"Customer": {"email", "id"},
		"Person":   {"email"},
	}
	if diff := cmp.Diff(want, snapshot.NodeProperties); diff != "" {
		t.Fatalf("unexpected node properties (-want +got):\n%s", diff)
	}
}

func TestBuildSnapshot_SkipsRelationshipRowsWithoutType(t *testing.T) {
	relRows := []map[string]any{
		{"relationshipType": "OWNS", "propertyName": "since"},
		{"relationshipType": nil, "propertyName": "orphan"},
		{"propertyName": "orphan"},
	}

	snapshot := BuildSnapshot(nil, relRows, nil, nil)

	want := map[string][]string{"OWNS": {"since"}}
	if diff := cmp.Diff(want, snapshot.RelationshipProperties); diff != "" {
		t.Fatalf("unexpected relationship properties (-want +got):\n%s", diff)
	}
}

func TestBuildSnapshot_DefinitionRows(t *testing.T) {
	indexRows := []map[string]any{
		{
			"name":          "idx_customer_email",
			"type":          "RANGE",
			"entityType":    "NODE",
			"labelsOrTypes": []any{"Customer"},
			"properties":    []any{"email"},
		},
		// Missing name coerces to empty, it does not fail the build.
		{
			"type":          "RANGE",
			"entityType":    "NODE",
			"labelsOrTypes": []any{"Order"},
			"properties":    []any{"placedAt"},
		},
	}

	snapshot := BuildSnapshot(nil, nil, indexRows, nil)

	if len(snapshot.Indexes) != 2 {
		t.Fatalf("got %d indexes, want 2", len(snapshot.Indexes))
	}
	if snapshot.Indexes[0].Name != "" {
		t.Fatalf("expected unnamed definition to sort first, got %q", snapshot.Indexes[0].Name)
	}
	want := database.NewPropertyKeyIndex("idx_customer_email", "RANGE", database.EntityNode,
		[]string{"Customer"}, []string{"email"})
	if !snapshot.Indexes[1].Equal(want) {
		t.Fatalf("unexpected definition: %#v", snapshot.Indexes[1])
	}
}

func TestBuildSnapshot_RowOrderInvariance(t *testing.T) {
	nodeRows := []map[string]any{
		{"nodeLabels": []any{"A"}, "propertyName": "x"},
		{"nodeLabels": []any{"A"}, "propertyName": "y"},
		{"nodeLabels": []any{"B"}, "propertyName": "z"},
	}
	indexRows := []map[string]any{
		{"name": "i1", "type": "RANGE", "entityType": "NODE",
			"labelsOrTypes": []any{"A"}, "properties": []any{"x"}},
		{"name": "i2", "type": "RANGE", "entityType": "NODE",
			"labelsOrTypes": []any{"B"}, "properties": []any{"z"}},
	}

	reference := BuildSnapshot(nodeRows, nil, indexRows, nil)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffledNodes := append([]map[string]any(nil), nodeRows...)
		shuffledIndexes := append([]map[string]any(nil), indexRows...)
		rng.Shuffle(len(shuffledNodes), func(i, j int) {
			shuffledNodes[i], shuffledNodes[j] = shuffledNodes[j], shuffledNodes[i]
		})
		rng.Shuffle(len(shuffledIndexes), func(i, j int) {
			shuffledIndexes[i], shuffledIndexes[j] = shuffledIndexes[j], shuffledIndexes[i]
		})

		got := BuildSnapshot(shuffledNodes, nil, shuffledIndexes, nil)
		if diff := cmp.Diff(reference, got); diff != "" {
			t.Fatalf("trial %d: snapshot depends on row order (-want +got):\n%s", trial, diff)
		}
	}
}
