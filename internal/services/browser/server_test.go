package browser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/observability"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/sessioncookie"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin/luaplugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/session"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage/sqlite"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type brokenTools struct{ plugin.Base }

func (brokenTools) ID() string { return "broken" }

func (brokenTools) ToolsMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return nil, errors.New("tools exploded")
}

type testEnv struct {
	handler http.Handler
	store   *sqlite.Store
	logs    *observer.ObservedLogs
}

type envOptions struct {
	extra   []plugin.Plugin
	isolate bool
}

func newTestEnv(t *testing.T, opts envOptions) testEnv {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "data", "pgconsole.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	if err := bootstrapAdmin(ctx, store, "admin@example.com", "secret", logger); err != nil {
		t.Fatalf("bootstrapAdmin() error = %v", err)
	}
	sessions, err := session.NewManager(session.Config{Secret: []byte(testSecret), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	registry, err := DefaultRegistry(store, luaplugin.Set{Modules: opts.extra})
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	handler, err := NewHandler(Dependencies{
		Store:                 store,
		Sessions:              sessions,
		Registry:              registry,
		Metrics:               observability.NewMetrics(),
		Logger:                logger,
		IsolatePluginFailures: opts.isolate,
	})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return testEnv{handler: handler, store: store, logs: logs}
}

func (e testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func (e testEnv) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, routepath.Login, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	rr := e.do(req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessioncookie.Name {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func authed(method, target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(cookie)
	return req
}

func TestNewHandlerRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(Dependencies{}); err == nil {
		t.Fatal("expected error without store")
	}
}

func TestPublicRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{})
	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{name: "root", path: "/", wantStatus: http.StatusFound, wantLocation: routepath.BrowserIndex},
		{name: "health", path: routepath.Health, wantStatus: http.StatusOK},
		{name: "login", path: routepath.Login, wantStatus: http.StatusOK},
		{name: "browser unauthenticated", path: routepath.BrowserIndex, wantStatus: http.StatusFound, wantLocation: "/login?next=%2Fbrowser%2F"},
		{name: "unknown", path: "/nowhere", wantStatus: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantStatus)
			}
			if tc.wantLocation != "" {
				if got := rr.Header().Get("Location"); got != tc.wantLocation {
					t.Fatalf("Location = %q, want %q", got, tc.wantLocation)
				}
			}
			if rr.Header().Get(httpx.RequestIDHeader) == "" {
				t.Fatal("request id header missing")
			}
		})
	}
}

func TestSignedInBrowserFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{})
	cookie := env.login(t, "admin@example.com", "secret")

	rr := env.do(authed(http.MethodGet, routepath.BrowserIndex, cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"About pgconsole", "Online Help", "Reset Layout", "admin@example.com", "www.gravatar.com/avatar/"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index body missing %q", want)
		}
	}

	rr = env.do(authed(http.MethodGet, routepath.BrowserJS, cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("script status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "pgConsole.Settings") || !strings.Contains(rr.Body.String(), `pgBrowser.Nodes["server"]`) {
		t.Fatalf("script body missing plugin snippets:\n%s", rr.Body.String())
	}

	rr = env.do(authed(http.MethodGet, routepath.BrowserCSS, cookie))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), ".icon-server-group") {
		t.Fatalf("stylesheet status = %d body = %q", rr.Code, rr.Body.String())
	}

	rr = env.do(authed(http.MethodGet, routepath.BrowserNodes, cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("nodes status = %d, want %d", rr.Code, http.StatusOK)
	}
	var env2 struct {
		Success int           `json:"success"`
		Data    []plugin.Node `json:"data"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&env2); err != nil {
		t.Fatalf("decode nodes: %v", err)
	}
	if env2.Success != 1 || len(env2.Data) != 1 || env2.Data[0].Label != "Servers" || env2.Data[0].Type != "server-group" {
		t.Fatalf("nodes = %+v, want the default Servers group", env2)
	}
}

func TestSettingsRoundTripFeedsLayout(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{})
	cookie := env.login(t, "admin@example.com", "secret")

	form := url.Values{"setting": {"Browser/Layout"}, "value": {"saved-layout"}}
	req := httptest.NewRequest(http.MethodPost, routepath.SettingsStore, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	req.AddCookie(cookie)
	if rr := env.do(req); rr.Code != http.StatusOK {
		t.Fatalf("store status = %d, want %d", rr.Code, http.StatusOK)
	}

	rr := env.do(authed(http.MethodGet, routepath.BrowserJS, cookie))
	if !strings.Contains(rr.Body.String(), `"saved-layout"`) {
		t.Fatalf("script body missing saved layout:\n%s", rr.Body.String())
	}
}

func TestSettingsMutationRequiresSameOrigin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{})
	cookie := env.login(t, "admin@example.com", "secret")

	form := url.Values{"setting": {"k"}, "value": {"v"}}
	req := httptest.NewRequest(http.MethodPost, routepath.SettingsStore, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	if rr := env.do(req); rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestInactiveUserLosesAccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{})
	sessions, err := session.NewManager(session.Config{Secret: []byte(testSecret), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if err := env.store.CreateUser(context.Background(), storage.User{ID: "user-off", Email: "off@example.com", PasswordHash: []byte("x")}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	token, err := sessions.Issue("user-off", "off@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	rr := env.do(authed(http.MethodGet, routepath.BrowserIndex, &http.Cookie{Name: sessioncookie.Name, Value: token}))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
}

func TestPluginFailurePropagatesByDefault(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{extra: []plugin.Plugin{brokenTools{}}})
	cookie := env.login(t, "admin@example.com", "secret")

	rr := env.do(authed(http.MethodGet, routepath.BrowserIndex, cookie))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if env.logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("request failed logs = %d, want 1", env.logs.FilterMessage("request failed").Len())
	}
}

func TestPluginFailureIsolated(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, envOptions{extra: []plugin.Plugin{brokenTools{}}, isolate: true})
	cookie := env.login(t, "admin@example.com", "secret")

	rr := env.do(authed(http.MethodGet, routepath.BrowserIndex, cookie))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	warnings := env.logs.FilterMessage("plugin hook failed").All()
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	fields := warnings[0].ContextMap()
	if fields["plugin"] != "broken" || fields["hook"] != string(plugin.HookToolsMenu) {
		t.Fatalf("warning fields = %v", fields)
	}

	rr = env.do(httptest.NewRequest(http.MethodGet, routepath.Metrics, nil))
	if !strings.Contains(rr.Body.String(), `pgconsole_plugin_hook_failures_total{hook="tools_menu_items",plugin="broken"} 1`) {
		t.Fatalf("metrics missing failure counter:\n%s", rr.Body.String())
	}
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "pgconsole.db"))
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	defer store.Close()

	for range 2 {
		if err := bootstrapAdmin(ctx, store, "admin@example.com", "secret", zap.NewNop()); err != nil {
			t.Fatalf("bootstrapAdmin() error = %v", err)
		}
	}
	user, err := store.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	groups, err := store.ListServerGroups(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListServerGroups() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if err := bootstrapAdmin(ctx, store, "", "", zap.NewNop()); err != nil {
		t.Fatalf("bootstrapAdmin() without email error = %v", err)
	}
}

func TestNewServerValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing addr", cfg: Config{DBPath: filepath.Join(t.TempDir(), "a.db"), SessionSecret: testSecret}},
		{name: "short secret", cfg: Config{HTTPAddr: "localhost:0", DBPath: filepath.Join(t.TempDir(), "b.db"), SessionSecret: "short", SessionTTL: time.Hour}},
		{name: "missing plugin dir", cfg: Config{HTTPAddr: "localhost:0", DBPath: filepath.Join(t.TempDir(), "c.db"), SessionSecret: testSecret, SessionTTL: time.Hour, PluginDir: filepath.Join(t.TempDir(), "missing")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv, err := NewServer(context.Background(), tc.cfg)
			if err == nil {
				_ = srv.Close()
				t.Fatal("expected error")
			}
		})
	}
}

func TestServerListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	srv, err := NewServer(context.Background(), Config{
		HTTPAddr:      "127.0.0.1:0",
		DBPath:        filepath.Join(t.TempDir(), "pgconsole.db"),
		SessionSecret: testSecret,
		SessionTTL:    time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "secret",
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not stop")
	}
}
