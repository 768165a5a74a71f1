package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// fakePlugin contributes canned values; nil fields contribute nothing.
type fakePlugin struct {
	plugin.Base
	id          string
	file        []plugin.MenuItem
	tools       []plugin.MenuItem
	help        []plugin.MenuItem
	create      []plugin.MenuItem
	panels      []plugin.Panel
	stylesheets []string
	scripts     []string
	jsSnippet   string
	cssSnippet  string
	nodes       []plugin.Node
	err         error
}

func (p fakePlugin) ID() string { return p.id }

func (p fakePlugin) FileMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return p.file, p.err
}

func (p fakePlugin) ToolsMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return p.tools, p.err
}

func (p fakePlugin) HelpMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return p.help, nil
}

func (p fakePlugin) CreateMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return p.create, nil
}

func (p fakePlugin) Panels(context.Context) ([]plugin.Panel, error) {
	return p.panels, nil
}

func (p fakePlugin) Stylesheets(context.Context) ([]string, error) {
	return p.stylesheets, nil
}

func (p fakePlugin) Scripts(context.Context) ([]string, error) {
	return p.scripts, nil
}

func (p fakePlugin) ScriptSnippets(context.Context) (string, error) {
	return p.jsSnippet, nil
}

func (p fakePlugin) CSSSnippets(context.Context) (string, error) {
	return p.cssSnippet, p.err
}

func (p fakePlugin) Nodes(context.Context) ([]plugin.Node, error) {
	return p.nodes, p.err
}

// bare relies entirely on plugin.Base.
type bare struct{ plugin.Base }

func (bare) ID() string { return "bare" }

type staticSettings map[string]string

func (s staticSettings) GetSetting(_ context.Context, userID, key, fallback string) (string, error) {
	if value, ok := s[userID+"|"+key]; ok {
		return value, nil
	}
	return fallback, nil
}

type failingSettings struct{ err error }

func (s failingSettings) GetSetting(context.Context, string, string, string) (string, error) {
	return "", s.err
}

func mustRegistry(t *testing.T, cfg plugin.RegistryConfig) plugin.Registry {
	t.Helper()
	registry, err := plugin.NewRegistry(cfg)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return registry
}

func signedInRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(requestctx.WithPrincipal(req.Context(), requestctx.Principal{
		UserID: "user-1",
		Email:  "Admin@Example.com",
	}))
}

func serve(t *testing.T, m Module, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	return rr
}
