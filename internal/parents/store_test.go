package parents

import (
	"context"
	"testing"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestUpsertAndLoadAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := Document{
		ID:          "PLAY_ULTIMATE_parent",
		Package:     "PLAY ULTIMATE",
		FullContent: "full bundle description",
		Sports:      []catalog.Sport{catalog.SportEPL, catalog.SportNBA},
		SourceFile:  "final_PLAY_ULTIMATE_clean.md",
	}
	if err := store.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	docs, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	got, ok := docs["PLAY_ULTIMATE_parent"]
	if !ok {
		t.Fatal("parent not found after upsert")
	}
	if got.Package != "PLAY ULTIMATE" || got.FullContent != "full bundle description" {
		t.Errorf("unexpected document: %+v", got)
	}
	if len(got.Sports) != 2 || got.Sports[0] != catalog.SportEPL {
		t.Errorf("sports lost in round trip: %v", got.Sports)
	}
}

func TestUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	doc := Document{ID: "p1", Package: "PLAY SPORTS", FullContent: "v1"}
	if err := store.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert v1: %v", err)
	}
	doc.FullContent = "v2"
	if err := store.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert v2: %v", err)
	}

	docs, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if docs["p1"].FullContent != "v2" {
		t.Errorf("upsert did not replace content: %q", docs["p1"].FullContent)
	}
}

func TestLoadAllEmpty(t *testing.T) {
	store := newTestStore(t)

	docs, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty map, got %d entries", len(docs))
	}

	n, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count: got %d, want 0", n)
	}
}
