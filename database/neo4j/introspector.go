package neo4j

import (
	"context"
	"fmt"

	"github.com/graphplane/graphplane/database"
	"github.com/graphplane/graphplane/internal/schema"
)

// Introspection statements. The schema procedures report one row per
// (node shape, property); SHOW INDEXES / SHOW CONSTRAINTS report one row
// per definition with labelsOrTypes and properties columns.
const (
	nodePropertiesQuery  = "CALL db.schema.nodeTypeProperties()"
	relPropertiesQuery   = "CALL db.schema.relTypeProperties()"
	showIndexesQuery     = "SHOW INDEXES"
	showConstraintsQuery = "SHOW CONSTRAINTS"
)

// Snapshot reads the live schema into a canonical snapshot. Always builds a
// fresh snapshot from a fresh introspection; nothing is cached.
func (d *Driver) Snapshot(ctx context.Context) (*database.Snapshot, error) {
	nodeRows, err := d.Query(ctx, nodePropertiesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect node properties: %w", err)
	}

	relRows, err := d.Query(ctx, relPropertiesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect relationship properties: %w", err)
	}

	indexRows, err := d.Query(ctx, showIndexesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect indexes: %w", err)
	}

	constraintRows, err := d.Query(ctx, showConstraintsQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect constraints: %w", err)
	}

	return schema.BuildSnapshot(nodeRows, relRows, indexRows, constraintRows), nil
}
