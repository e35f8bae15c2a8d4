package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mwessel/phigrid/pkg/store"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

func makeRecord(t *testing.T, name string) store.Record {
	t.Helper()
	c, err := topology.Generate(system.ArchIntegrated, 16)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rec, err := store.NewRecord(name, c)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return rec
}

func TestSaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	rec := makeRecord(t, "baseline")
	if err := s.Save(ctx, "baseline", rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "baseline")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	c, err := got.Complex()
	if err != nil {
		t.Fatalf("Complex: %v", err)
	}
	if c.Architecture != system.ArchIntegrated || c.Graph.Len() != 16 {
		t.Errorf("restored complex: arch=%s len=%d", c.Architecture, c.Graph.Len())
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(context.Background(), "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	older := makeRecord(t, "older")
	older.Info.SavedAt = time.Now().Add(-time.Hour)
	newer := makeRecord(t, "newer")

	if err := s.Save(ctx, "older", older); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "newer", newer); err != nil {
		t.Fatal(err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d infos, want 2", len(infos))
	}
	if infos[0].Name != "newer" || infos[1].Name != "older" {
		t.Errorf("List order = %s, %s; want newer, older", infos[0].Name, infos[1].Name)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.Save(ctx, "temp", makeRecord(t, "temp")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "temp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "temp"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}
