package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/collection"
)

func TestPersistenceWatchEmitsCollectionChanges(t *testing.T) {
	p := newDisk(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	r := mustRecord(t, collection.TypeEvents, "e1", time.Now(), "hello world")
	if err := p.Store(ctx, r); err != nil {
		t.Fatalf("store record: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventCollectionsInvalidated {
				return
			}
			if evt.Type == EventCollectionChanged {
				if evt.Collection != collection.TypeEvents {
					t.Fatalf("expected collection 'events', got %q", evt.Collection)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for collection change event")
		}
	}
}

func TestSettingsExpandHome(t *testing.T) {
	s := &Settings{Path: "~/planner", Directory: "/abs/dir.sqlite"}
	if err := s.expand(); err != nil {
		t.Fatalf("expand: %v", err)
	}
	if s.Path == "~/planner" || s.Directory != "/abs/dir.sqlite" {
		t.Fatalf("unexpected expansion %+v", s)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"a@x.io, b@x.io", " ", "c@x.io"})
	if len(got) != 3 || got[1] != "b@x.io" {
		t.Fatalf("unexpected list %v", got)
	}
}
