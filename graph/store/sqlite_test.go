package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "workflows.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s := testSQLiteStore(t)

	t.Run("ping", func(t *testing.T) {
		if err := s.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		if err := s.Save(ctx, "fox", testSnapshot()); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Load(ctx, "fox")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got.Nodes) != 2 || len(got.Connections) != 1 {
			t.Fatalf("loaded %d nodes %d connections", len(got.Nodes), len(got.Connections))
		}
		if _, ok := got.Nodes[0].Data["base64Image"]; ok {
			t.Error("heavy data must not be persisted")
		}
		if got.Connections[0].FromNodeID != "node-1" {
			t.Errorf("connection = %+v", got.Connections[0])
		}
	})

	t.Run("save upserts", func(t *testing.T) {
		snap := testSnapshot()
		snap.View.Scale = 2
		if err := s.Save(ctx, "fox", snap); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		got, err := s.Load(ctx, "fox")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if got.View.Scale != 2 {
			t.Errorf("view scale = %v, want 2", got.View.Scale)
		}
		names, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(names) != 1 {
			t.Errorf("names = %v, want a single entry after upsert", names)
		}
	})

	t.Run("load unknown name", func(t *testing.T) {
		if _, err := s.Load(ctx, "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("list is sorted", func(t *testing.T) {
		if err := s.Save(ctx, "zebra", Snapshot{}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := s.Save(ctx, "alpha", Snapshot{}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		names, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		want := []string{"alpha", "fox", "zebra"}
		if len(names) != len(want) {
			t.Fatalf("names = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Fatalf("names = %v, want %v", names, want)
			}
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := s.Delete(ctx, "zebra"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete(ctx, "zebra"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second delete = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStoreClose(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "close.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close = %v, want nil", err)
	}
	if err := s.Save(ctx, "fox", Snapshot{}); err == nil {
		t.Error("Save on a closed store should fail")
	}
	if _, err := s.Load(ctx, "fox"); err == nil {
		t.Error("Load on a closed store should fail")
	}
}
