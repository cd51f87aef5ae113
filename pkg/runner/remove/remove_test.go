package remove

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/store"
)

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(nil)}
	f, err := social.NewFriend("Rui", "", time.Now())
	if err != nil {
		t.Fatalf("new friend: %v", err)
	}
	if _, err := svc.AddFriend(ctx, f); err != nil {
		t.Fatalf("add friend: %v", err)
	}

	tests := []struct {
		name     string
		kind     string
		id       string
		wantErr  bool
		notFound bool
	}{
		{name: "unknown kind", kind: "pets", id: f.ID, wantErr: true},
		{name: "missing id", kind: "friend", id: "nope", wantErr: true, notFound: true},
		{name: "ok", kind: "friend", id: f.ID},
		{name: "twice", kind: "friends", id: f.ID, wantErr: true, notFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := (&Remove{App: svc, Kind: tt.kind, ID: tt.id, Out: &buf}).Do(ctx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if tt.notFound && !errors.Is(err, app.ErrNotFound) {
					t.Fatalf("expected app.ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(svc.Session.Friends()) != 0 {
				t.Fatalf("expected the friend removed")
			}
		})
	}
}
