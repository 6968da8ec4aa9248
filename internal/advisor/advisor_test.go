package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeQuerier struct {
	rows       []map[string]any
	err        error
	statement  string
	parameters map[string]any
}

func (f *fakeQuerier) Query(ctx context.Context, statement string, parameters map[string]any) ([]map[string]any, error) {
	f.statement = statement
	f.parameters = parameters
	return f.rows, f.err
}

func TestRecommend(t *testing.T) {
	querier := &fakeQuerier{rows: []map[string]any{
		{"label": "Customer", "orgId": "acme", "nodeCount": int64(120)},
		{"label": "Order", "orgId": "acme", "nodeCount": int64(45)},
		{"label": "Customer", "orgId": nil, "nodeCount": int64(3)},
	}}

	got, err := New(querier).Recommend(context.Background(), nil, 10)
	if err != nil {
		t.Fatal(err)
	}

	want := []Recommendation{
		{Label: "Customer", OrgID: "acme", NodeCount: 120},
		{Label: "Order", OrgID: "acme", NodeCount: 45},
		{Label: "Customer", OrgID: nil, NodeCount: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected recommendations (-want +got):\n%s", diff)
	}
	if querier.parameters["labels"] != nil {
		t.Fatalf("empty filter should pass nil labels, got %v", querier.parameters["labels"])
	}
	if querier.parameters["orgProp"] != DefaultOrgProperty {
		t.Fatalf("orgProp = %v, want %q", querier.parameters["orgProp"], DefaultOrgProperty)
	}
}

func TestRecommend_LabelFilterAndLimit(t *testing.T) {
	querier := &fakeQuerier{}

	if _, err := New(querier).Recommend(context.Background(), []string{"Customer"}, 0); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"Customer"}, querier.parameters["labels"]); diff != "" {
		t.Fatalf("unexpected labels parameter (-want +got):\n%s", diff)
	}
	if querier.parameters["limit"] != 1 {
		t.Fatalf("limit = %v, want non-positive limit raised to 1", querier.parameters["limit"])
	}
}

func TestRecommend_CustomOrgProperty(t *testing.T) {
	querier := &fakeQuerier{}

	_, err := New(querier, WithOrgProperty("tenantId")).Recommend(context.Background(), nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if querier.parameters["orgProp"] != "tenantId" {
		t.Fatalf("orgProp = %v, want tenantId", querier.parameters["orgProp"])
	}
}

func TestRecommend_QueryError(t *testing.T) {
	querier := &fakeQuerier{err: errors.New("database unavailable")}

	if _, err := New(querier).Recommend(context.Background(), nil, 5); err == nil {
		t.Fatal("expected query error to surface")
	}
}
