package schema

import (
	"fmt"

	"github.com/graphplane/graphplane/database"
)

// BuildSnapshot turns raw introspection rows into a canonical snapshot.
//
// Node property rows carry a label list and one property name; the property
// is attributed to every label in the list, since the underlying procedure
// reports one row per property of a (possibly multi-labeled) node shape.
// Relationship rows are attributed to their single relationship type; rows
// without a type are ignored. Index and constraint rows are parsed into
// canonicalized definitions; a missing name coerces to the empty string
// rather than failing.
func BuildSnapshot(nodeRows, relRows, indexRows, constraintRows []map[string]any) *database.Snapshot {
	snapshot := &database.Snapshot{
		NodeProperties:         map[string][]string{},
		RelationshipProperties: map[string][]string{},
	}

	for _, row := range nodeRows {
		labels := stringList(row["nodeLabels"])
		prop := stringValue(row["propertyName"])
		for _, label := range labels {
			snapshot.NodeProperties[label] = append(snapshot.NodeProperties[label], prop)
		}
	}

	for _, row := range relRows {
		relType := stringValue(row["relationshipType"])
		if relType == "" {
			continue
		}
		prop := stringValue(row["propertyName"])
		snapshot.RelationshipProperties[relType] = append(snapshot.RelationshipProperties[relType], prop)
	}

	for _, row := range indexRows {
		snapshot.Indexes = append(snapshot.Indexes, definitionFromRow(row))
	}
	for _, row := range constraintRows {
		snapshot.Constraints = append(snapshot.Constraints, definitionFromRow(row))
	}

	snapshot.Normalize()
	return snapshot
}

// definitionFromRow parses one SHOW INDEXES / SHOW CONSTRAINTS row. Every
// field degrades to its zero value when absent or of an unexpected type.
func definitionFromRow(row map[string]any) database.PropertyKeyIndex {
	return database.NewPropertyKeyIndex(
		stringValue(row["name"]),
		stringValue(row["type"]),
		database.EntityKind(stringValue(row["entityType"])),
		stringList(row["labelsOrTypes"]),
		stringList(row["properties"]),
	)
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func stringList(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, stringValue(item))
		}
		return out
	default:
		return []string{stringValue(v)}
	}
}
