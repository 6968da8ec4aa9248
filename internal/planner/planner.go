package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/graphplane/graphplane/database"
	"github.com/graphplane/graphplane/internal/schema"
)

// GeneratePlan turns a schema diff into an ordered migration plan using the
// provided statement generator. Planning never fails for a structurally
// valid diff: definitions that cannot be translated become informational
// actions instead.
//
// Ordering is fixed: drops precede creates so a definition can be replaced
// without a transient naming conflict, and indexes precede constraints
// within each phase:
//
//  1. Drop removed indexes (unnamed definitions have nothing to target and
//     are skipped).
//  2. Drop removed constraints (same skip rule).
//  3. Create added indexes.
//  4. Create added constraints.
//  5. One informational notice per label or relationship type with added or
//     removed properties; a schemaless property graph does not enforce
//     property-level shape, so these exist purely for auditability.
//
// Within steps 1-4 the diff's name-sorted order is preserved, so the plan is
// fully deterministic for a given diff.
func GeneratePlan(diff *schema.Diff, gen database.CypherGenerator) *Plan {
	plan := &Plan{Actions: []Action{}}
	if diff.IsEmpty() {
		return plan
	}

	for _, def := range diff.RemovedIndexes {
		if def.Name == "" {
			continue
		}
		statement, description := gen.DropIndex(def)
		plan.Actions = append(plan.Actions, Action{Statement: statement, Description: description})
	}

	for _, def := range diff.RemovedConstraints {
		if def.Name == "" {
			continue
		}
		statement, description := gen.DropConstraint(def)
		plan.Actions = append(plan.Actions, Action{Statement: statement, Description: description})
	}

	for _, def := range diff.AddedIndexes {
		statement, description := gen.CreateIndex(def)
		plan.Actions = append(plan.Actions, Action{Statement: statement, Description: description})
	}

	for _, def := range diff.AddedConstraints {
		statement, description := gen.CreateConstraint(def)
		plan.Actions = append(plan.Actions, Action{Statement: statement, Description: description})
	}

	plan.Actions = append(plan.Actions, propertyNotices(diff)...)
	return plan
}

// propertyNotices emits the informational actions for property-level
// changes, in a fixed group order with keys sorted inside each group.
func propertyNotices(diff *schema.Diff) []Action {
	var actions []Action

	for _, label := range sortedKeys(diff.AddedNodeProperties) {
		actions = append(actions, Action{
			Statement:   database.InformationalPrefix + " Informational: add node properties",
			Description: propertyNoticeDescription("Add node properties", diff.AddedNodeProperties[label], "label", label),
		})
	}
	for _, label := range sortedKeys(diff.RemovedNodeProperties) {
		actions = append(actions, Action{
			Statement:   database.InformationalPrefix + " Informational: remove node properties",
			Description: propertyNoticeDescription("Remove node properties", diff.RemovedNodeProperties[label], "label", label),
		})
	}
	for _, relType := range sortedKeys(diff.AddedRelationshipProperties) {
		actions = append(actions, Action{
			Statement:   database.InformationalPrefix + " Informational: add relationship properties",
			Description: propertyNoticeDescription("Add relationship properties", diff.AddedRelationshipProperties[relType], "type", relType),
		})
	}
	for _, relType := range sortedKeys(diff.RemovedRelationshipProperties) {
		actions = append(actions, Action{
			Statement:   database.InformationalPrefix + " Informational: remove relationship properties",
			Description: propertyNoticeDescription("Remove relationship properties", diff.RemovedRelationshipProperties[relType], "type", relType),
		})
	}

	return actions
}

func propertyNoticeDescription(verb string, properties []string, keyKind, key string) string {
	return fmt.Sprintf("%s {%s} on %s %s", verb, strings.Join(properties, ", "), keyKind, key)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
