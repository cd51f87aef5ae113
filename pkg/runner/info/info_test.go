package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/store"
)

func TestInfo(t *testing.T) {
	color.NoColor = true
	t.Setenv("PILOT_CONFIG_PATH", "")
	mem := store.NewMemory()
	if err := mem.Store(context.Background(), &store.Record{Collection: collection.TypeGoals, ID: "g1", Body: []byte(`{}`)}); err != nil {
		t.Fatalf("store: %v", err)
	}

	var buf bytes.Buffer
	n := &Info{
		Config:      &store.Settings{Path: "/tmp/pilot.db", Directory: "/tmp/pilot.sqlite", AdminList: []string{"a@example.com"}},
		Persistence: mem,
		Out:         &buf,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"env var not set", "/tmp/pilot.db", "/tmp/pilot.sqlite", "goals"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
