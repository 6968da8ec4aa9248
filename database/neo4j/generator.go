package neo4j

import (
	"fmt"
	"strings"

	"github.com/graphplane/graphplane/database"
)

// Generator produces Cypher statement text for migration actions. Creation
// statements are idempotent (IF NOT EXISTS) so a re-run after a partial
// failure does not trip over already-applied actions.
//
// Only node indexes and uniqueness constraints have a supported creation
// shape; everything else, and any definition with incomplete metadata,
// yields an informational statement the executor will skip.
type Generator struct{}

// CreateIndex generates the creation statement for an added index.
func (Generator) CreateIndex(def database.PropertyKeyIndex) (string, string) {
	description := fmt.Sprintf("Create index %s", def.Name)

	labelExpr := labelExpression(def.LabelsOrTypes)
	propsExpr := propertyExpression(def.Properties)
	switch {
	case labelExpr == "" || propsExpr == "":
		return database.InformationalPrefix + " Informational: index metadata incomplete", description
	case def.EntityKind != database.EntityNode:
		return fmt.Sprintf("%s Informational: index creation for entity kind %s is not supported",
			database.InformationalPrefix, def.EntityKind), description
	default:
		return fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (%s)",
			def.Name, labelExpr, propsExpr), description
	}
}

// DropIndex generates the drop statement for a removed index. The planner
// only calls this for named definitions.
func (Generator) DropIndex(def database.PropertyKeyIndex) (string, string) {
	return fmt.Sprintf("DROP INDEX %s", def.Name), fmt.Sprintf("Drop index %s", def.Name)
}

// CreateConstraint generates the creation statement for an added constraint.
func (Generator) CreateConstraint(def database.PropertyKeyIndex) (string, string) {
	description := fmt.Sprintf("Create constraint %s", def.Name)

	labelExpr := labelExpression(def.LabelsOrTypes)
	propsExpr := propertyExpression(def.Properties)
	switch {
	case labelExpr == "" || propsExpr == "":
		return database.InformationalPrefix + " Informational: constraint metadata incomplete", description
	case !strings.HasSuffix(def.Kind, "UNIQUENESS"):
		return fmt.Sprintf("%s Informational: constraint creation for kind %s is not supported",
			database.InformationalPrefix, def.Kind), description
	default:
		return fmt.Sprintf("CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE (%s) IS UNIQUE",
			def.Name, labelExpr, propsExpr), description
	}
}

// DropConstraint generates the drop statement for a removed constraint.
func (Generator) DropConstraint(def database.PropertyKeyIndex) (string, string) {
	return fmt.Sprintf("DROP CONSTRAINT %s", def.Name), fmt.Sprintf("Drop constraint %s", def.Name)
}

// labelExpression renders `A`:`B` for the non-empty labels.
func labelExpression(labels []string) string {
	var parts []string
	for _, label := range labels {
		if label != "" {
			parts = append(parts, "`"+label+"`")
		}
	}
	return strings.Join(parts, ":")
}

// propertyExpression renders n.`a`, n.`b` for the non-empty properties.
func propertyExpression(properties []string) string {
	var parts []string
	for _, prop := range properties {
		if prop != "" {
			parts = append(parts, "n.`"+prop+"`")
		}
	}
	return strings.Join(parts, ", ")
}

var _ database.CypherGenerator = Generator{}
