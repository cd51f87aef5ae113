package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeDirectory struct {
	users       []User
	failList    bool
	failMutate  bool
	listed      int
	notes       []Notification
	stats       Stats
	seededEmail map[string]bool
}

func (f *fakeDirectory) ListUsers(_ context.Context, limit int) ([]User, error) {
	f.listed++
	if f.failList {
		return nil, errors.New("offline")
	}
	if limit < len(f.users) {
		return append([]User(nil), f.users[:limit]...), nil
	}
	return append([]User(nil), f.users...), nil
}

func (f *fakeDirectory) SetSuspended(_ context.Context, id string, suspended bool) error {
	if f.failMutate {
		return errors.New("offline")
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Suspended = suspended
			return nil
		}
	}
	return errors.New("no such user")
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id string) error {
	if f.failMutate {
		return errors.New("offline")
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeDirectory) InsertNotification(_ context.Context, n Notification) error {
	if f.failMutate {
		return errors.New("offline")
	}
	f.notes = append(f.notes, n)
	return nil
}

func (f *fakeDirectory) Stats(context.Context, time.Time) (Stats, error) {
	return f.stats, nil
}

func (f *fakeDirectory) CreateUser(_ context.Context, u User, _ string) error {
	if f.seededEmail == nil {
		f.seededEmail = map[string]bool{}
	}
	if f.seededEmail[u.Email] {
		return ErrDuplicate
	}
	f.seededEmail[u.Email] = true
	u.ID = u.Email
	f.users = append(f.users, u)
	return nil
}

type alerts struct{ msgs []string }

func (a *alerts) Alert(msg string) { a.msgs = append(a.msgs, msg) }

func newService(dir *fakeDirectory, confirm bool) (*Service, *alerts) {
	a := &alerts{}
	return &Service{
		Directory:   dir,
		Broadcaster: dir,
		StatsSource: dir,
		Seeder:      dir,
		Notifier:    a,
		Confirmer:   ConfirmerFunc(func(string) bool { return confirm }),
		Now:         func() time.Time { return fixedNow },
	}, a
}

func sampleDirectory() *fakeDirectory {
	return &fakeDirectory{users: []User{
		{ID: "1", Email: "ana@pilot.com", FullName: "Ana Costa"},
		{ID: "2", Email: "bruno@pilot.com", FullName: "Bruno Dias"},
	}}
}

func TestRefreshHonoursLimit(t *testing.T) {
	dir := sampleDirectory()
	svc, _ := newService(dir, true)
	svc.Limit = 1
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := len(svc.Users()); got != 1 {
		t.Fatalf("users = %d, want 1", got)
	}
}

func TestSearch(t *testing.T) {
	svc, _ := newService(sampleDirectory(), true)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	tests := []struct {
		term string
		want int
	}{
		{"", 2},
		{"BRUNO", 1},
		{"costa", 1},
		{"pilot.com", 2},
		{"nobody", 0},
	}
	for _, tt := range tests {
		if got := len(svc.Search(tt.term)); got != tt.want {
			t.Errorf("Search(%q) = %d, want %d", tt.term, got, tt.want)
		}
	}
}

func TestSuspendResyncs(t *testing.T) {
	ctx := context.Background()
	dir := sampleDirectory()
	svc, a := newService(dir, true)
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := svc.Suspend(ctx, "2"); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if !svc.Users()[1].Suspended {
		t.Fatalf("snapshot not resynced after suspend")
	}
	if err := svc.Reinstate(ctx, "2"); err != nil {
		t.Fatalf("reinstate: %v", err)
	}
	if svc.Users()[1].Suspended {
		t.Fatalf("snapshot not resynced after reinstate")
	}
	if len(a.msgs) != 2 {
		t.Fatalf("alerts = %v", a.msgs)
	}
}

func TestFailedMutationKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := sampleDirectory()
	svc, a := newService(dir, true)
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	listed := dir.listed
	dir.failMutate = true

	if err := svc.Suspend(ctx, "1"); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Delete(ctx, "1"); err == nil {
		t.Fatalf("expected error")
	}
	if dir.listed != listed {
		t.Fatalf("failed mutations must not reload")
	}
	if len(svc.Users()) != 2 || svc.Users()[0].Suspended {
		t.Fatalf("snapshot changed: %+v", svc.Users())
	}
	if len(a.msgs) != 2 || !strings.HasPrefix(a.msgs[0], "Failed") {
		t.Fatalf("alerts = %v", a.msgs)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	dir := sampleDirectory()
	svc, _ := newService(dir, false)
	if err := svc.Delete(ctx, "1"); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if len(dir.users) != 2 {
		t.Fatalf("user deleted without confirmation")
	}

	svc.Confirmer = ConfirmerFunc(func(string) bool { return true })
	if err := svc.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := svc.Users(); len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("users = %+v", got)
	}
}

func TestNotify(t *testing.T) {
	ctx := context.Background()
	dir := sampleDirectory()
	svc, _ := newService(dir, true)

	if _, err := svc.Notify(ctx, "Maintenance", "  "); err == nil {
		t.Fatalf("blank message must be rejected")
	}
	if _, err := svc.Notify(ctx, "", "body"); err == nil {
		t.Fatalf("blank title must be rejected")
	}
	if len(dir.notes) != 0 {
		t.Fatalf("invalid notifications stored: %+v", dir.notes)
	}

	n, err := svc.Notify(ctx, "Maintenance", "Down at noon")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if !n.Global || !n.CreatedAt.Equal(fixedNow) {
		t.Fatalf("notification = %+v", n)
	}
	if len(dir.notes) != 1 {
		t.Fatalf("stored = %d", len(dir.notes))
	}
}

func TestDashboard(t *testing.T) {
	dir := sampleDirectory()
	dir.stats = Stats{TotalUsers: 2, ActiveUsers24h: 1}
	svc, _ := newService(dir, true)
	got, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got != dir.stats {
		t.Fatalf("stats = %+v", got)
	}
}

func TestSeedSkipsExisting(t *testing.T) {
	ctx := context.Background()
	dir := &fakeDirectory{}
	svc, _ := newService(dir, true)
	n, err := svc.Seed(ctx, "password123")
	if err != nil || n != 2 {
		t.Fatalf("seed = %d, %v", n, err)
	}
	n, err = svc.Seed(ctx, "password123")
	if err != nil || n != 0 {
		t.Fatalf("second seed = %d, %v", n, err)
	}
	if got := len(svc.Users()); got != 2 {
		t.Fatalf("users = %d", got)
	}
}
