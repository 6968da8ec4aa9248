package schema

import (
	"testing"

	"github.com/graphplane/graphplane/database"
)

func TestComputeSnapshotHash_Deterministic(t *testing.T) {
	a, err := ComputeSnapshotHash(snapshotFixture())
	if err != nil {
		t.Fatal(err)
	}
	b, err := ComputeSnapshotHash(snapshotFixture())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("hashes of identical snapshots differ: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64 hex characters", len(a))
	}
}

func TestComputeSnapshotHash_SensitiveToChange(t *testing.T) {
	base, err := ComputeSnapshotHash(snapshotFixture())
	if err != nil {
		t.Fatal(err)
	}

	changed := snapshotFixture()
	changed.NodeProperties["Customer"] = append(changed.NodeProperties["Customer"], "email")
	changed.Normalize()

	got, err := ComputeSnapshotHash(changed)
	if err != nil {
		t.Fatal(err)
	}
	if got == base {
		t.Fatal("adding a property did not change the hash")
	}
}

func TestComputeSnapshotHash_NilAndEmpty(t *testing.T) {
	nilHash, err := ComputeSnapshotHash(nil)
	if err != nil {
		t.Fatal(err)
	}
	if nilHash == "" {
		t.Fatal("nil snapshot should still hash")
	}

	empty := &database.Snapshot{}
	empty.Normalize()
	emptyHash, err := ComputeSnapshotHash(empty)
	if err != nil {
		t.Fatal(err)
	}
	if emptyHash == "" {
		t.Fatal("empty snapshot should still hash")
	}
}
