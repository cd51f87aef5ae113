package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.Local)

func clock() time.Time { return fixedNow }

type fakeDirectory struct {
	users []admin.User
	notes []admin.Notification
}

func (f *fakeDirectory) ListUsers(context.Context, int) ([]admin.User, error) {
	return append([]admin.User(nil), f.users...), nil
}

func (f *fakeDirectory) SetSuspended(_ context.Context, id string, suspended bool) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Suspended = suspended
		}
	}
	return nil
}

func (f *fakeDirectory) DeleteUser(_ context.Context, id string) error {
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeDirectory) InsertNotification(_ context.Context, n admin.Notification) error {
	f.notes = append(f.notes, n)
	return nil
}

func (f *fakeDirectory) Stats(context.Context, time.Time) (admin.Stats, error) {
	return admin.Stats{TotalUsers: len(f.users)}, nil
}

func (f *fakeDirectory) User(_ context.Context, id string) (admin.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return admin.User{}, errors.New("no such user")
}

type fakeCredentials map[string]string

func (f fakeCredentials) Verify(_ context.Context, email, password string) (string, error) {
	if f[email] == "" || f[email] != password {
		return "", auth.ErrInvalidCredentials
	}
	return "id-" + email, nil
}

type fixture struct {
	srv    *Server
	router *gin.Engine
	dir    *fakeDirectory
	user   string
	admin  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := auth.NewTokens("test-secret")
	dir := &fakeDirectory{users: []admin.User{
		{ID: "1", Email: "ana@pilot.com", FullName: "Ana"},
		{ID: "2", Email: "bruno@pilot.com", FullName: "Bruno"},
	}}
	srv := &Server{
		Planners: &Planners{Open: func(context.Context, *auth.Session) (*app.Service, error) {
			return &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(clock), Now: clock}, nil
		}},
		Admin: &admin.Service{
			Directory:   dir,
			Broadcaster: dir,
			StatsSource: dir,
			Confirmer:   admin.ConfirmerFunc(func(string) bool { return true }),
			Now:         clock,
		},
		Tokens:      tokens,
		Credentials: fakeCredentials{"boss@pilot.com": "pw", "user@pilot.com": "pw"},
		Allow:       auth.NewAllowList("boss@pilot.com"),
	}
	userTok, err := tokens.Issue("u1", "user@pilot.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	adminTok, err := tokens.Issue("a1", "boss@pilot.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return &fixture{srv: srv, router: srv.Router(), dir: dir, user: userTok, admin: adminTok}
}

func (f *fixture) planner(t *testing.T, id, email string) *app.Service {
	t.Helper()
	svc, err := f.srv.Planners.For(context.Background(), &auth.Session{UserID: id, Email: email})
	if err != nil {
		t.Fatalf("planner: %v", err)
	}
	return svc
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		name   string
		body   map[string]string
		status int
		route  auth.Route
	}{
		{"admin", map[string]string{"email": "boss@pilot.com", "password": "pw"}, http.StatusOK, auth.RouteAdmin},
		{"user", map[string]string{"email": "user@pilot.com", "password": "pw"}, http.StatusOK, auth.RouteMain},
		{"wrong password", map[string]string{"email": "user@pilot.com", "password": "no"}, http.StatusUnauthorized, ""},
		{"bad email", map[string]string{"email": "nope", "password": "pw"}, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/api/login", "", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body)
			}
			if tt.route == "" {
				return
			}
			var resp struct {
				Token string     `json:"token"`
				Route auth.Route `json:"route"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Token == "" || resp.Route != tt.route {
				t.Fatalf("resp = %+v", resp)
			}
		})
	}
}

func TestPlannerRequiresToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/calendar/2024/1", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCalendarMonth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/calendar/2024/2", f.user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp monthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Cells) != 42 || resp.Title != "February 2024" {
		t.Fatalf("cells = %d, title = %q", len(resp.Cells), resp.Title)
	}
	in := 0
	for _, c := range resp.Cells {
		if c.InMonth {
			in++
		}
	}
	if in != 29 {
		t.Fatalf("in-month cells = %d, want 29", in)
	}

	if rec := f.do(t, http.MethodGet, "/api/calendar/2024/13", f.user, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("month 13 status = %d", rec.Code)
	}
}

func TestEventsAndAgenda(t *testing.T) {
	f := newFixture(t)
	add := func(title, start, end string) *httptest.ResponseRecorder {
		return f.do(t, http.MethodPost, "/api/events", f.user, map[string]string{
			"title": title, "date": "2024-01-15", "startTime": start, "endTime": end, "category": "work",
		})
	}
	if rec := add("review", "14:00", "15:00"); rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rec.Code, rec.Body)
	}
	if rec := add("standup", "09:00", "09:30"); rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rec.Code, rec.Body)
	}
	if rec := add("broken", "10:00", "09:00"); rec.Code != http.StatusBadRequest {
		t.Fatalf("end before start status = %d", rec.Code)
	}

	var resp struct {
		Events []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"events"`
	}
	rec := f.do(t, http.MethodGet, "/api/agenda?date=2024-01-15&sort=start", f.user, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 2 || resp.Events[0].Title != "standup" {
		t.Fatalf("agenda = %+v", resp.Events)
	}

	path := "/api/events/" + resp.Events[0].ID
	if rec := f.do(t, http.MethodDelete, path, f.user, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, path, f.user, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
}

func TestPlannersAreOwnedByTheirUser(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/events", f.user, map[string]string{
		"title": "private dentist", "date": "2024-01-15", "startTime": "08:00", "endTime": "09:00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rec.Code, rec.Body)
	}
	var saved struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.do(t, http.MethodGet, "/api/agenda?date=2024-01-15", f.admin, nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "private dentist") {
		t.Fatalf("another user can read the event: %d %s", rec.Code, rec.Body)
	}
	if rec := f.do(t, http.MethodDelete, "/api/events/"+saved.ID, f.admin, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("another user's delete status = %d, want 404", rec.Code)
	}

	rec = f.do(t, http.MethodGet, "/api/agenda?date=2024-01-15", f.user, nil)
	if !strings.Contains(rec.Body.String(), "private dentist") {
		t.Fatalf("owner lost the event: %s", rec.Body)
	}
	if got := f.planner(t, "u1", "user@pilot.com").Session.UserID(); got != "u1" {
		t.Fatalf("planner user = %q, want u1", got)
	}
}

func TestSuspendedTokensAreRefused(t *testing.T) {
	f := newFixture(t)
	f.srv.Accounts = f.dir
	ana, err := f.srv.Tokens.Issue("1", "ana@pilot.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if rec := f.do(t, http.MethodGet, "/api/aigoals", ana, nil); rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	f.dir.users[0].Suspended = true
	if rec := f.do(t, http.MethodGet, "/api/aigoals", ana, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("suspended status = %d, want 403", rec.Code)
	}

	f.dir.users = f.dir.users[1:]
	if rec := f.do(t, http.MethodGet, "/api/aigoals", ana, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("deleted user status = %d, want 401", rec.Code)
	}
}

func TestAIGoalEndpoints(t *testing.T) {
	f := newFixture(t)
	g, err := f.planner(t, "u1", "user@pilot.com").StartSuggestion(context.Background(), "1",
		goal.Schedule{Days: timeutil.NewWeekdaySet(time.Monday), Time: timeutil.MustClock("07:00")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	locked := "/api/aigoals/" + g.ID + "/milestones/" + g.Milestones[1].ID + "/complete"
	if rec := f.do(t, http.MethodPost, locked, f.user, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("locked milestone status = %d: %s", rec.Code, rec.Body)
	}
	first := "/api/aigoals/" + g.ID + "/milestones/" + g.Milestones[0].ID + "/complete"
	rec := f.do(t, http.MethodPost, first, f.user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d: %s", rec.Code, rec.Body)
	}
	var got goal.AIGoal
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Progress != 25 {
		t.Fatalf("progress = %d, want 25", got.Progress)
	}

	rec = f.do(t, http.MethodPost, "/api/aigoals/"+g.ID+"/advance", f.user, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.CurrentWeek != 2 {
		t.Fatalf("week = %d, want 2", got.CurrentWeek)
	}

	if rec := f.do(t, http.MethodGet, "/api/aigoals", f.user, nil); !strings.Contains(rec.Body.String(), g.ID) {
		t.Fatalf("list missing goal: %s", rec.Body)
	}
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodGet, "/api/admin/users", f.user, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d", rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/api/admin/users?q=BRU", f.admin, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("users status = %d", rec.Code)
	}
	var resp struct {
		Users []admin.User `json:"users"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].ID != "2" {
		t.Fatalf("users = %+v", resp.Users)
	}

	if rec := f.do(t, http.MethodPost, "/api/admin/users/2/suspend", f.admin, nil); rec.Code != http.StatusOK {
		t.Fatalf("suspend status = %d", rec.Code)
	}
	if !f.dir.users[1].Suspended {
		t.Fatalf("user not suspended")
	}
	if rec := f.do(t, http.MethodDelete, "/api/admin/users/1", f.admin, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if len(f.dir.users) != 1 {
		t.Fatalf("users left = %d", len(f.dir.users))
	}

	if rec := f.do(t, http.MethodPost, "/api/admin/notifications", f.admin, map[string]string{"title": "Hi"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete notification status = %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/admin/notifications", f.admin, map[string]string{"title": "Hi", "message": "Hello"}); rec.Code != http.StatusCreated {
		t.Fatalf("notification status = %d", rec.Code)
	}
	if len(f.dir.notes) != 1 {
		t.Fatalf("notes = %d", len(f.dir.notes))
	}

	rec = f.do(t, http.MethodGet, "/api/admin/stats", f.admin, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total_users":1`) {
		t.Fatalf("stats = %d %s", rec.Code, rec.Body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/healthz", "", nil)
	rec := f.do(t, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "pilot_http_requests_total") {
		t.Fatalf("metrics = %d", rec.Code)
	}
}
