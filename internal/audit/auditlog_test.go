package audit

import "testing"

func TestChainVerifies(t *testing.T) {
	l := New()
	l.Record("u1", "project.create", "id=1")
	l.Record("u1", "project.delete", "id=1")
	l.Record("u2", "bio.upsert", "")
	if err := l.Verify(); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got := l.Entries(); len(got) != 3 {
		t.Fatalf("entries = %d, want 3", len(got))
	}
}

func TestTamperDetected(t *testing.T) {
	l := New()
	l.Record("u1", "project.create", "id=1")
	l.Record("u1", "project.delete", "id=1")
	l.entries[0].Detail = "id=2"
	if err := l.Verify(); err == nil {
		t.Fatalf("expected tampering to break the chain")
	}
}
