package schema

import (
	"sort"

	"github.com/graphplane/graphplane/database"
)

// Diff represents all structural differences between two snapshots,
// partitioned by object kind and add/remove direction. Property differences
// are keyed by label or relationship type; index and constraint differences
// are whole-definition sets sorted by name (unnamed entries first) so plan
// generation is deterministic.
type Diff struct {
	AddedNodeProperties           map[string][]string          `json:"added_node_properties,omitempty"`
	RemovedNodeProperties         map[string][]string          `json:"removed_node_properties,omitempty"`
	AddedRelationshipProperties   map[string][]string          `json:"added_relationship_properties,omitempty"`
	RemovedRelationshipProperties map[string][]string          `json:"removed_relationship_properties,omitempty"`
	AddedIndexes                  []database.PropertyKeyIndex  `json:"added_indexes,omitempty"`
	RemovedIndexes                []database.PropertyKeyIndex  `json:"removed_indexes,omitempty"`
	AddedConstraints              []database.PropertyKeyIndex  `json:"added_constraints,omitempty"`
	RemovedConstraints            []database.PropertyKeyIndex  `json:"removed_constraints,omitempty"`
}

// IsEmpty returns true if there are no differences.
func (d *Diff) IsEmpty() bool {
	return len(d.AddedNodeProperties) == 0 &&
		len(d.RemovedNodeProperties) == 0 &&
		len(d.AddedRelationshipProperties) == 0 &&
		len(d.RemovedRelationshipProperties) == 0 &&
		len(d.AddedIndexes) == 0 &&
		len(d.RemovedIndexes) == 0 &&
		len(d.AddedConstraints) == 0 &&
		len(d.RemovedConstraints) == 0
}

// DiffSnapshots compares two snapshots and returns their structural
// differences. Pure function of its inputs; given canonical snapshots the
// result is fully deterministic. A definition present in both snapshots
// under a different name is reported as one removal plus one addition, never
// as a rename.
func DiffSnapshots(current, target *database.Snapshot) *Diff {
	diff := &Diff{}

	diff.AddedNodeProperties, diff.RemovedNodeProperties =
		diffProperties(current.NodeProperties, target.NodeProperties)
	diff.AddedRelationshipProperties, diff.RemovedRelationshipProperties =
		diffProperties(current.RelationshipProperties, target.RelationshipProperties)

	diff.AddedIndexes, diff.RemovedIndexes =
		diffDefinitions(current.Indexes, target.Indexes)
	diff.AddedConstraints, diff.RemovedConstraints =
		diffDefinitions(current.Constraints, target.Constraints)

	return diff
}

// diffProperties computes per-key set differences in both directions,
// including a key only when its difference is non-empty.
func diffProperties(current, target map[string][]string) (added, removed map[string][]string) {
	added = map[string][]string{}
	removed = map[string][]string{}

	for key, targetProps := range target {
		if missing := subtract(targetProps, current[key]); len(missing) > 0 {
			added[key] = missing
		}
	}
	for key, currentProps := range current {
		if missing := subtract(currentProps, target[key]); len(missing) > 0 {
			removed[key] = missing
		}
	}

	if len(added) == 0 {
		added = nil
	}
	if len(removed) == 0 {
		removed = nil
	}
	return added, removed
}

// subtract returns the sorted elements of a not present in b.
func subtract(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, v := range b {
		exclude[v] = struct{}{}
	}

	var out []string
	for _, v := range a {
		if _, ok := exclude[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// diffDefinitions treats each snapshot's definitions as a set keyed by
// structural identity and returns both directed differences, sorted.
func diffDefinitions(current, target []database.PropertyKeyIndex) (added, removed []database.PropertyKeyIndex) {
	currentKeys := definitionKeys(current)
	targetKeys := definitionKeys(target)

	for _, def := range target {
		if _, ok := currentKeys[def.Key()]; !ok {
			added = append(added, def)
		}
	}
	for _, def := range current {
		if _, ok := targetKeys[def.Key()]; !ok {
			removed = append(removed, def)
		}
	}

	database.SortDefinitions(added)
	database.SortDefinitions(removed)
	return added, removed
}

func definitionKeys(defs []database.PropertyKeyIndex) map[string]struct{} {
	keys := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		keys[def.Key()] = struct{}{}
	}
	return keys
}
