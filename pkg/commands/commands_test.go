package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/event"
)

func setEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PILOT_PATH", filepath.Join(dir, "planner"))
	t.Setenv("PILOT_DIRECTORY", filepath.Join(dir, "pilot.sqlite"))
	t.Setenv("PILOT_SESSION", filepath.Join(dir, "session"))
	t.Setenv("PILOT_SECRET", "test-secret")
	t.Setenv("PILOT_ADMINS", "boss@example.com")
	t.Setenv("PILOT_LOG", "error")
	color.NoColor = true
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := New()
	paths := [][]string{
		{"ui"}, {"calendar"}, {"agenda"}, {"list"}, {"delete"}, {"report"}, {"export"},
		{"add", "event"}, {"add", "goal"}, {"add", "recurring"}, {"add", "aigoal"}, {"add", "party"}, {"add", "friend"},
		{"aigoal", "complete"}, {"aigoal", "advance"}, {"aigoal", "message"}, {"aigoal", "read"},
		{"aigoal", "list"}, {"aigoal", "suggestions"},
		{"party", "respond"},
		{"register"}, {"login"}, {"logout"}, {"whoami"},
		{"admin", "users"}, {"admin", "suspend"}, {"admin", "reinstate"}, {"admin", "delete"},
		{"admin", "notify"}, {"admin", "stats"}, {"admin", "seed"},
		{"serve"}, {"mcp"}, {"key"}, {"info"}, {"version"}, {"completion"},
	}
	for _, path := range paths {
		found, _, err := root.Find(path)
		if err != nil || found.Name() != path[len(path)-1] {
			t.Fatalf("missing command %v", path)
		}
	}
}

func TestAddEventThenAgenda(t *testing.T) {
	setEnv(t)

	if out, err := run(t, "add", "event", "--on", "2024-07-16", "--start", "18:00", "--end", "19:00", "-c", "leisure", "Evening", "swim"); err != nil {
		t.Fatalf("add event: %v\n%s", err, out)
	}

	out, err := run(t, "agenda", "--on", "2024-07-16", "--json")
	if err != nil {
		t.Fatalf("agenda: %v\n%s", err, out)
	}
	var events []*event.Event
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("decode agenda: %v\n%s", err, out)
	}
	if len(events) != 1 || events[0].Title != "Evening swim" || events[0].Category != event.CategoryLeisure {
		t.Fatalf("unexpected agenda %+v", events)
	}

	out, err = run(t, "calendar", "--month", "2024-07")
	if err != nil {
		t.Fatalf("calendar: %v\n%s", err, out)
	}
	if !strings.Contains(out, "July 2024") {
		t.Fatalf("expected the month title:\n%s", out)
	}

	if _, err := run(t, "delete", "event", events[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	out, _ = run(t, "agenda", "--on", "2024-07-16", "--json")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected an empty agenda after delete, got %s", out)
	}
}

func TestJSONErrors(t *testing.T) {
	setEnv(t)
	var buf bytes.Buffer
	saved := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = saved })

	if _, err := run(t, "list", "nonsense", "--json"); err != nil {
		t.Fatalf("json mode must report errors as output, got %v", err)
	}
	var body map[string]string
	if err := json.Unmarshal(buf.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v\n%s", err, buf.String())
	}
	if body["error"] == "" {
		t.Fatalf("expected an error message, got %v", body)
	}
}

func TestAdminNeedsAnAllowListedSession(t *testing.T) {
	setEnv(t)

	if _, err := run(t, "admin", "users"); err == nil {
		t.Fatalf("expected admin commands to refuse a signed out user")
	}

	if out, err := run(t, "register", "boss@example.com", "--name", "The Boss", "--password", "hunter22"); err != nil {
		t.Fatalf("register: %v\n%s", err, out)
	}
	if out, err := run(t, "register", "pleb@example.com", "--password", "hunter22"); err != nil {
		t.Fatalf("register: %v\n%s", err, out)
	}

	if out, err := run(t, "login", "pleb@example.com", "--password", "hunter22"); err != nil {
		t.Fatalf("login: %v\n%s", err, out)
	}
	if _, err := run(t, "admin", "stats"); err == nil {
		t.Fatalf("expected a user outside the admins list to be refused")
	}

	if out, err := run(t, "login", "boss@example.com", "--password", "hunter22"); err != nil {
		t.Fatalf("login: %v\n%s", err, out)
	}
	out, err := run(t, "admin", "users", "--json", "--search", "boss")
	if err != nil {
		t.Fatalf("admin users: %v\n%s", err, out)
	}
	var users []admin.User
	if err := json.Unmarshal([]byte(out), &users); err != nil {
		t.Fatalf("decode users: %v\n%s", err, out)
	}
	if len(users) != 1 || users[0].FullName != "The Boss" {
		t.Fatalf("unexpected users %+v", users)
	}

	if out, err := run(t, "admin", "delete", users[0].ID); err != nil || !strings.Contains(out, "Nothing deleted") {
		t.Fatalf("a delete without an answer must cancel: %v\n%s", err, out)
	}

	out, err = run(t, "whoami")
	if err != nil || !strings.Contains(out, "boss@example.com") {
		t.Fatalf("whoami: %v\n%s", err, out)
	}
	if _, err := run(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if out, _ := run(t, "whoami"); !strings.Contains(out, "Not signed in") {
		t.Fatalf("expected signed out, got %s", out)
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		addr net.Addr
		host string
		tls  bool
		want string
	}{
		{addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8090}, host: "127.0.0.1", want: "http://127.0.0.1:8090/mcp"},
		{addr: &net.TCPAddr{IP: net.IPv4zero, Port: 9000}, host: "0.0.0.0", tls: true, want: "https://127.0.0.1:9000/mcp"},
		{addr: &net.TCPAddr{IP: net.ParseIP("::1"), Port: 80}, host: "::", want: "http://[::1]:80/mcp"},
	}
	for _, tt := range tests {
		if got := listenURL(tt.addr, tt.host, "/mcp", tt.tls); got != tt.want {
			t.Fatalf("listenURL(%v, %q) = %q, want %q", tt.addr, tt.host, got, tt.want)
		}
	}
}
