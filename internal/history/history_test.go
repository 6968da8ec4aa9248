package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Entry{
		StartedAt:   time.Unix(1700000000, 0),
		Environment: "local",
		SourceHash:  "hash-a",
		Executed:    4,
	}
	second := Entry{
		StartedAt:   time.Unix(1700000100, 0),
		Environment: "staging",
		SourceHash:  "hash-b",
		Executed:    2,
		Failures:    []string{"syntax error near DROP"},
	}
	if err := store.Record(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := store.Record(ctx, second); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Environment != "staging" || entries[1].Environment != "local" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Environment, entries[1].Environment)
	}
	if diff := cmp.Diff([]string{"syntax error near DROP"}, entries[0].Failures); diff != "" {
		t.Fatalf("failures not round-tripped (-want +got):\n%s", diff)
	}
	if !entries[1].StartedAt.Equal(first.StartedAt) {
		t.Fatalf("started at = %v, want %v", entries[1].StartedAt, first.StartedAt)
	}
	if entries[1].Failures != nil {
		t.Fatalf("failures = %v, want nil for a clean run", entries[1].Failures)
	}
}

func TestRecent_Limit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Entry{Environment: "local", SourceHash: "h"}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	entries, err = store.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("non-positive limit should return one entry, got %d", len(entries))
	}
}

func TestRecord_DefaultsStartedAt(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	if err := store.Record(ctx, Entry{Environment: "local", SourceHash: "h"}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].StartedAt.Before(before) {
		t.Fatalf("started at %v not defaulted to now", entries[0].StartedAt)
	}
}
