package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/collection"
)

type note struct {
	Text string `json:"text"`
}

func newDisk(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(&Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func mustRecord(t *testing.T, c collection.Type, id string, created time.Time, text string) *Record {
	t.Helper()
	r, err := NewRecord(c, id, created, note{Text: text})
	if err != nil {
		t.Fatalf("new record: %v", err)
	}
	return r
}

func persistences(t *testing.T) map[string]Persistence {
	return map[string]Persistence{
		"diskv":  newDisk(t),
		"memory": NewMemory(),
	}
}

func TestStoreListGetDelete(t *testing.T) {
	day := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	for name, p := range persistences(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := "6f1c2a9e-5b1d-4c55-9c0e-2a1f8d1e0b77"
			if err := p.Store(ctx, mustRecord(t, collection.TypeEvents, id, day, "first")); err != nil {
				t.Fatalf("store: %v", err)
			}
			if err := p.Store(ctx, mustRecord(t, collection.TypeEvents, "b", day.Add(time.Hour), "second")); err != nil {
				t.Fatalf("store: %v", err)
			}
			if err := p.Store(ctx, mustRecord(t, collection.TypeFriends, "c", day, "friend")); err != nil {
				t.Fatalf("store: %v", err)
			}

			events := p.List(ctx, collection.TypeEvents)
			if len(events) != 2 || events[0].ID != id || events[1].ID != "b" {
				t.Fatalf("unexpected events %+v", events)
			}
			if all := p.ListAll(ctx); len(all) != 3 {
				t.Fatalf("expected 3 records, got %d", len(all))
			}

			got, err := p.Get(ctx, collection.TypeEvents, id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			var n note
			if err := got.Decode(&n); err != nil || n.Text != "first" {
				t.Fatalf("decode: %v %+v", err, n)
			}

			if err := p.Delete(ctx, collection.TypeEvents, id); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := p.Get(ctx, collection.TypeEvents, id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			if err := p.Delete(ctx, collection.TypeEvents, id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound on second delete, got %v", err)
			}
		})
	}
}

func TestStoreReplacesEarlierCopy(t *testing.T) {
	day := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	for name, p := range persistences(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := p.Store(ctx, mustRecord(t, collection.TypeGoals, "g", day, "old")); err != nil {
				t.Fatalf("store: %v", err)
			}
			if err := p.Store(ctx, mustRecord(t, collection.TypeGoals, "g", day.AddDate(0, 0, 3), "new")); err != nil {
				t.Fatalf("store: %v", err)
			}
			goals := p.List(ctx, collection.TypeGoals)
			if len(goals) != 1 {
				t.Fatalf("expected one goal, got %d", len(goals))
			}
			var n note
			_ = goals[0].Decode(&n)
			if n.Text != "new" {
				t.Fatalf("expected replaced body, got %q", n.Text)
			}
		})
	}
}

func TestStoreRejectsUnknownCollection(t *testing.T) {
	for name, p := range persistences(t) {
		t.Run(name, func(t *testing.T) {
			r := mustRecord(t, collection.Type("notes"), "x", time.Now(), "x")
			if err := p.Store(context.Background(), r); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCollectionsMeta(t *testing.T) {
	for name, p := range persistences(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := p.EnsureCollection(collection.TypeParties); err != nil {
				t.Fatalf("ensure: %v", err)
			}
			if err := p.Store(ctx, mustRecord(t, collection.TypeEvents, "a", time.Now(), "x")); err != nil {
				t.Fatalf("store: %v", err)
			}
			metas := p.CollectionsMeta(ctx)
			counts := map[collection.Type]int{}
			for _, m := range metas {
				counts[m.Name] = m.Count
			}
			if len(counts) != 2 || counts[collection.TypeEvents] != 1 || counts[collection.TypeParties] != 0 {
				t.Fatalf("unexpected metas %+v", metas)
			}
		})
	}
}

func TestDiskLayoutUsesCollectionDateID(t *testing.T) {
	base := t.TempDir()
	p, err := Load(&Settings{Path: base})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	day := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)
	if err := p.Store(context.Background(), mustRecord(t, collection.TypeEvents, "ab", day, "x")); err != nil {
		t.Fatalf("store: %v", err)
	}
	want := filepath.Join(base, toCollection("events"), "2024", "01", "15", toID("ab"))
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected record at %s: %v", want, err)
	}
}

func TestMemoryWatch(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := m.Store(ctx, mustRecord(t, collection.TypeFriends, "f", time.Now(), "x")); err != nil {
		t.Fatalf("store: %v", err)
	}
	select {
	case ev := <-ch:
		if ev.Type != EventCollectionChanged || ev.Collection != collection.TypeFriends {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	cancel()
	for range ch {
	}
}

func TestForUserKeepsUsersApart(t *testing.T) {
	base := filepath.Join(t.TempDir(), "pilot.db")
	cfg := &Settings{Path: base, Key: "k"}

	ana, err := ForUser(cfg, "ana")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	bruno, err := ForUser(cfg, "../bruno")
	if err != nil {
		t.Fatalf("for user: %v", err)
	}
	if ana.BasePath() == bruno.BasePath() || ana.BasePath() == base {
		t.Fatalf("expected separate trees, got %s and %s", ana.BasePath(), bruno.BasePath())
	}
	if filepath.Dir(bruno.BasePath()) != base+".users" {
		t.Fatalf("user tree escaped the users dir: %s", bruno.BasePath())
	}
	if ana.Secret() != "k" {
		t.Fatalf("expected the rest of the config to carry over")
	}

	ctx := context.Background()
	pa, err := Load(ana)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	pb, err := Load(bruno)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := pa.Store(ctx, mustRecord(t, collection.TypeEvents, "e1", time.Now(), "dentist")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if got := pb.List(ctx, collection.TypeEvents); len(got) != 0 {
		t.Fatalf("expected bruno to see nothing, got %d records", len(got))
	}

	if _, err := ForUser(cfg, " "); err == nil {
		t.Fatalf("expected an error for an empty user id")
	}
}
