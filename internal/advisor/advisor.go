// Package advisor recommends incremental job slices over the live graph.
package advisor

import (
	"context"
	"fmt"

	"github.com/graphplane/graphplane/database"
)

// DefaultOrgProperty is the node property used to partition slices by
// organization when the caller does not choose one.
const DefaultOrgProperty = "orgId"

// Recommendation is one label/org slice, sized by node count so callers can
// schedule the heaviest slices first.
type Recommendation struct {
	Label     string `json:"label"`
	OrgID     any    `json:"orgId"`
	NodeCount int64  `json:"count"`
}

// Advisor groups nodes by label and organization property to suggest
// incremental processing slices.
type Advisor struct {
	querier     database.Querier
	orgProperty string
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithOrgProperty overrides the property used to group nodes by organization.
func WithOrgProperty(property string) Option {
	return func(a *Advisor) {
		if property != "" {
			a.orgProperty = property
		}
	}
}

// New creates an Advisor over the given read-query capability.
func New(querier database.Querier, opts ...Option) *Advisor {
	a := &Advisor{
		querier:     querier,
		orgProperty: DefaultOrgProperty,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

const recommendQuery = `
MATCH (n)
WHERE $labels IS NULL OR any(label IN labels(n) WHERE label IN $labels)
WITH labels(n) AS nodeLabels, n[$orgProp] AS orgId
UNWIND nodeLabels AS nodeLabel
WITH nodeLabel AS label, orgId, count(*) AS nodeCount
ORDER BY nodeCount DESC
RETURN label, orgId, nodeCount
LIMIT $limit`

// Recommend returns up to limit slices, largest first. A nil label filter
// considers every label; a non-positive limit is raised to one.
func (a *Advisor) Recommend(ctx context.Context, labels []string, limit int) ([]Recommendation, error) {
	if limit < 1 {
		limit = 1
	}

	parameters := map[string]any{
		"labels":  nil,
		"limit":   limit,
		"orgProp": a.orgProperty,
	}
	if len(labels) > 0 {
		parameters["labels"] = labels
	}

	rows, err := a.querier.Query(ctx, recommendQuery, parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to query job slices: %w", err)
	}

	recommendations := make([]Recommendation, 0, len(rows))
	for _, row := range rows {
		recommendations = append(recommendations, Recommendation{
			Label:     stringValue(row["label"]),
			OrgID:     row["orgId"],
			NodeCount: intValue(row["nodeCount"]),
		})
	}
	return recommendations, nil
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
