package results

import (
	"errors"
	"testing"
	"time"

	"github.com/pengelbrecht/mathx/internal/worksheet"
)

func sampleSnapshot() *worksheet.Snapshot {
	return &worksheet.Snapshot{
		Path: "/tmp/demo.mx",
		Name: "demo",
		Results: []worksheet.Result{
			{Line: 1, Expr: "5 + 3", Value: 8},
			{Line: 2, Expr: "5 * 3", Value: 15},
		},
		EvaluatedAt: time.Now().UTC(),
	}
}

func TestWriteAndRead(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Write("demo", sampleSnapshot()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	snap, err := store.Read("demo")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if snap.Name != "demo" {
		t.Errorf("Name = %q, want %q", snap.Name, "demo")
	}
	if len(snap.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(snap.Results))
	}
	if snap.Results[1].Value != 15 {
		t.Errorf("result value = %d, want 15", snap.Results[1].Value)
	}
}

func TestReadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Read("absent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	store := NewStore(t.TempDir())

	if store.Exists("demo") {
		t.Error("Exists() = true before write")
	}
	if err := store.Write("demo", sampleSnapshot()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !store.Exists("demo") {
		t.Error("Exists() = false after write")
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Write("demo", sampleSnapshot()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := store.Delete("demo"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if store.Exists("demo") {
		t.Error("snapshot still exists after Delete()")
	}

	// Deleting again is not an error.
	if err := store.Delete("demo"); err != nil {
		t.Fatalf("second Delete() error: %v", err)
	}
}

func TestList(t *testing.T) {
	store := NewStore(t.TempDir())

	names, err := store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty list, got %v", names)
	}

	for _, name := range []string{"alpha", "beta"} {
		if err := store.Write(name, sampleSnapshot()); err != nil {
			t.Fatalf("Write(%q) error: %v", name, err)
		}
	}

	names, err = store.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
}
