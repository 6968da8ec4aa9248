package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/graphplane/graphplane/database"
)

// ComputeSnapshotHash generates a deterministic hash of a snapshot. The hash
// covers every label, relationship type, property, index and constraint; any
// schema change produces a different hash. Relies on the snapshot invariant
// that all collections are sorted and de-duplicated (JSON object keys are
// emitted sorted, so map iteration order does not leak in).
func ComputeSnapshotHash(snapshot *database.Snapshot) (string, error) {
	if snapshot == nil {
		return computeHash([]byte("{}")), nil
	}

	canonical := map[string]any{
		"node_properties":         snapshot.NodeProperties,
		"relationship_properties": snapshot.RelationshipProperties,
		"indexes":                 canonicalizeDefinitions(snapshot.Indexes),
		"constraints":             canonicalizeDefinitions(snapshot.Constraints),
	}

	jsonBytes, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot for hashing: %w", err)
	}

	return computeHash(jsonBytes), nil
}

func canonicalizeDefinitions(defs []database.PropertyKeyIndex) []map[string]any {
	normalized := database.NormalizeDefinitions(defs)
	out := make([]map[string]any, 0, len(normalized))
	for _, def := range normalized {
		out = append(out, map[string]any{
			"name":            def.Name,
			"kind":            def.Kind,
			"entity_kind":     string(def.EntityKind),
			"labels_or_types": def.LabelsOrTypes,
			"properties":      def.Properties,
		})
	}
	return out
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
