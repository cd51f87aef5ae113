package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/pilot/pkg/collection"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventCollectionChanged indicates records of the given collection were
	// added, edited or removed.
	EventCollectionChanged EventType = iota

	// EventCollectionsInvalidated asks callers to reload everything.
	EventCollectionsInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type       EventType
	Collection collection.Type
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is busy; the next refresh catches up.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					// diskv nests records in date directories, so new
					// directories need their own watch.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								p.log.Warn("watch directory", "dir", absDir, "err", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
						continue
					}
				}

				changed := p.collectionForPath(evt.Name)
				if changed == "" {
					throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
					continue
				}

				throttle.Enqueue(Event{Type: EventCollectionChanged, Collection: changed}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// collectionForPath attempts to derive the logical collection from a diskv path.
func (p *persistence) collectionForPath(path string) collection.Type {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	if rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) == 0 {
		return ""
	}
	encoded := parts[0]
	if encoded == "" || strings.HasPrefix(encoded, collectionsIndexFile) {
		return ""
	}
	c, err := collection.ParseType(fromCollection(encoded))
	if err != nil {
		return ""
	}
	return c
}

// eventThrottle coalesces bursts of change notifications into one per
// collection.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[collection.Type]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[collection.Type]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[collection.Type]struct{})
	}
	key := ev.Collection
	t.pending[ev.Type][key] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[collection.Type]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, collections := range pending {
		if len(collections) == 0 {
			send(Event{Type: eventType})
			continue
		}

		for c := range collections {
			send(Event{Type: eventType, Collection: c})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
