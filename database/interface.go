package database

import (
	"context"
	"sort"
	"strings"
)

// EntityKind distinguishes node-backed from relationship-backed schema objects.
type EntityKind string

const (
	EntityNode         EntityKind = "NODE"
	EntityRelationship EntityKind = "RELATIONSHIP"
)

// InformationalPrefix marks a plan statement that must never be sent to the
// database. The planner emits it for actions that cannot be safely
// auto-generated; the executor skips anything carrying it.
const InformationalPrefix = "//"

// PropertyKeyIndex is a single index or constraint definition. The label and
// property collections are stored sorted and de-duplicated so that two
// definitions reported in different collection orders compare equal. Identity
// is full structural equality, not just the name: a renamed but otherwise
// identical definition is a different definition.
type PropertyKeyIndex struct {
	Name          string     `json:"name"`
	Kind          string     `json:"kind"`
	EntityKind    EntityKind `json:"entity_kind"`
	LabelsOrTypes []string   `json:"labels_or_types"`
	Properties    []string   `json:"properties"`
}

// NewPropertyKeyIndex builds a canonicalized definition. Callers may pass the
// label and property collections in any order and with duplicates.
func NewPropertyKeyIndex(name, kind string, entity EntityKind, labelsOrTypes, properties []string) PropertyKeyIndex {
	return PropertyKeyIndex{
		Name:          name,
		Kind:          kind,
		EntityKind:    entity,
		LabelsOrTypes: sortedSet(labelsOrTypes),
		Properties:    sortedSet(properties),
	}
}

// Key returns a canonical identity string covering every field. Definitions
// are equal iff their keys are equal; the differ uses keys for set algebra.
func (p PropertyKeyIndex) Key() string {
	parts := []string{
		p.Name,
		p.Kind,
		string(p.EntityKind),
		strings.Join(p.LabelsOrTypes, "\x1f"),
		strings.Join(p.Properties, "\x1f"),
	}
	return strings.Join(parts, "\x1e")
}

// Equal reports structural equality after canonicalization.
func (p PropertyKeyIndex) Equal(other PropertyKeyIndex) bool {
	return p.Key() == other.Key()
}

// Snapshot is an immutable, canonicalized description of a graph schema at
// one point in time: which properties each label and relationship type
// carries, and the full set of index and constraint definitions. Snapshots
// are JSON-serializable and are the persisted form of a desired schema.
type Snapshot struct {
	NodeProperties         map[string][]string `json:"node_properties"`
	RelationshipProperties map[string][]string `json:"relationship_properties"`
	Indexes                []PropertyKeyIndex  `json:"indexes"`
	Constraints            []PropertyKeyIndex  `json:"constraints"`
}

// Normalize sorts and de-duplicates every collection in place, restoring the
// construction invariant after e.g. JSON unmarshalling. Property sets end up
// sorted with no duplicates and definition sets contain one entry per
// structural identity, ordered by name (empty names first) then key.
func (s *Snapshot) Normalize() {
	if s.NodeProperties == nil {
		s.NodeProperties = map[string][]string{}
	}
	if s.RelationshipProperties == nil {
		s.RelationshipProperties = map[string][]string{}
	}
	for label, props := range s.NodeProperties {
		s.NodeProperties[label] = sortedSet(props)
	}
	for relType, props := range s.RelationshipProperties {
		s.RelationshipProperties[relType] = sortedSet(props)
	}
	s.Indexes = NormalizeDefinitions(s.Indexes)
	s.Constraints = NormalizeDefinitions(s.Constraints)
}

// NormalizeDefinitions canonicalizes each definition, drops structural
// duplicates, and sorts the result by name ascending with ties broken by the
// full canonical key.
func NormalizeDefinitions(defs []PropertyKeyIndex) []PropertyKeyIndex {
	seen := make(map[string]struct{}, len(defs))
	out := make([]PropertyKeyIndex, 0, len(defs))
	for _, def := range defs {
		canonical := NewPropertyKeyIndex(def.Name, def.Kind, def.EntityKind, def.LabelsOrTypes, def.Properties)
		key := canonical.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, canonical)
	}
	SortDefinitions(out)
	return out
}

// SortDefinitions orders definitions by name ascending; unnamed definitions
// sort first. Equal names fall back to the canonical key so the order is
// total.
func SortDefinitions(defs []PropertyKeyIndex) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Name != defs[j].Name {
			return defs[i].Name < defs[j].Name
		}
		return defs[i].Key() < defs[j].Key()
	})
}

func sortedSet(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Transaction is an open transaction on the graph database.
type Transaction interface {
	// Run executes a single statement with its parameters.
	Run(ctx context.Context, statement string, parameters map[string]any) error

	// Commit makes the transaction's writes durable and closes it.
	Commit(ctx context.Context) error

	// Rollback discards the transaction's writes and closes it.
	Rollback(ctx context.Context) error
}

// Session is a scoped unit of database work. A session owns at most one open
// transaction at a time and must be closed by its opener.
type Session interface {
	BeginTransaction(ctx context.Context) (Transaction, error)
	Close(ctx context.Context) error
}

// SessionOpener hands out sessions. The plan executor opens exactly one
// session per run and releases it on every exit path.
type SessionOpener interface {
	OpenSession(ctx context.Context) (Session, error)
}

// Querier runs a read-only statement and returns its rows as loosely-typed
// maps keyed by result column.
type Querier interface {
	Query(ctx context.Context, statement string, parameters map[string]any) ([]map[string]any, error)
}

// Introspector reads the live schema into a snapshot.
type Introspector interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// CypherGenerator produces the statement text for schema migration actions.
// When a definition cannot be translated into an executable statement (the
// metadata is incomplete, or the shape is unsupported) the generator returns
// an informational statement carrying InformationalPrefix instead of failing.
type CypherGenerator interface {
	// CreateIndex generates a statement to create an index.
	CreateIndex(def PropertyKeyIndex) (statement string, description string)

	// DropIndex generates a statement to drop an index by name.
	DropIndex(def PropertyKeyIndex) (statement string, description string)

	// CreateConstraint generates a statement to create a constraint.
	CreateConstraint(def PropertyKeyIndex) (statement string, description string)

	// DropConstraint generates a statement to drop a constraint by name.
	DropConstraint(def PropertyKeyIndex) (statement string, description string)
}

// Driver is a full graph database backend: introspection, read queries,
// transactional sessions, and statement generation.
type Driver interface {
	Introspector
	Querier
	SessionOpener
	CypherGenerator

	// Name returns the backend name (e.g. "neo4j").
	Name() string

	// Close releases the underlying connection pool.
	Close(ctx context.Context) error
}
