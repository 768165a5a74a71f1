package plugin

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMenuItemsSortsAcrossPluginsByPriority(t *testing.T) {
	t.Parallel()

	a := fakePlugin{id: "a", tools: []MenuItem{{Name: "a-tool", Priority: 20}}}
	b := fakePlugin{id: "b", tools: []MenuItem{{Name: "b-tool", Priority: 5}}}

	got, err := NewCollector([]Plugin{a, b}).MenuItems(context.Background(), HookToolsMenu)
	if err != nil {
		t.Fatalf("MenuItems() error = %v", err)
	}
	want := []MenuItem{{Name: "b-tool", Priority: 5}, {Name: "a-tool", Priority: 20}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tools menu mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuItemsKeepsSourceOrderForEqualPriority(t *testing.T) {
	t.Parallel()

	a := fakePlugin{id: "a", help: []MenuItem{{Name: "a1", Priority: 1}, {Name: "a2", Priority: 1}}}
	b := fakePlugin{id: "b", help: []MenuItem{{Name: "b1", Priority: 1}, {Name: "b0", Priority: 0}}}

	got, err := NewCollector([]Plugin{a, b}).MenuItems(context.Background(), HookHelpMenu)
	if err != nil {
		t.Fatalf("MenuItems() error = %v", err)
	}
	names := make([]string, 0, len(got))
	for _, item := range got {
		names = append(names, item.Name)
	}
	if diff := cmp.Diff([]string{"b0", "a1", "a2", "b1"}, names); diff != "" {
		t.Fatalf("help menu order mismatch (-want +got):\n%s", diff)
	}
}

func TestMenuItemsKeepsDuplicates(t *testing.T) {
	t.Parallel()

	dup := MenuItem{Name: "same", Label: "Same", Priority: 3}
	a := fakePlugin{id: "a", tools: []MenuItem{dup}}
	b := fakePlugin{id: "b", tools: []MenuItem{dup}}

	got, err := NewCollector([]Plugin{a, b}).MenuItems(context.Background(), HookToolsMenu)
	if err != nil {
		t.Fatalf("MenuItems() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(got))
	}
}

func TestMenuItemsPluginWithoutHookContributesNothing(t *testing.T) {
	t.Parallel()

	p := fakePlugin{id: "tools-only", tools: []MenuItem{{Name: "t"}}}
	c := NewCollector([]Plugin{p, bare{id: "bare"}})

	for _, hook := range []Hook{HookFileMenu, HookEditMenu, HookManagementMenu, HookHelpMenu, HookStandardMenu, HookContextMenu} {
		got, err := c.MenuItems(context.Background(), hook)
		if err != nil {
			t.Fatalf("MenuItems(%s) error = %v", hook, err)
		}
		if len(got) != 0 {
			t.Fatalf("MenuItems(%s) = %v, want empty", hook, got)
		}
	}
}

func TestMenuItemsRejectsUnknownHook(t *testing.T) {
	t.Parallel()

	if _, err := NewCollector(nil).MenuItems(context.Background(), HookPanels); err == nil {
		t.Fatal("expected unknown hook error")
	}
}

func TestMenuItemsPropagatesHookErrorWithPluginID(t *testing.T) {
	t.Parallel()

	cause := errors.New("catalog unavailable")
	c := NewCollector([]Plugin{
		fakePlugin{id: "ok", tools: []MenuItem{{Name: "t"}}},
		fakePlugin{id: "broken", err: cause},
	})
	_, err := c.MenuItems(context.Background(), HookToolsMenu)
	if !errors.Is(err, cause) {
		t.Fatalf("err = %v, want wrapped %v", err, cause)
	}
	var hookErr *HookError
	if !errors.As(err, &hookErr) {
		t.Fatalf("err = %T, want *HookError", err)
	}
	if hookErr.PluginID != "broken" || hookErr.Hook != HookToolsMenu {
		t.Fatalf("hook error = %+v", hookErr)
	}
}

func TestIsolationSkipsFailingPlugin(t *testing.T) {
	t.Parallel()

	var failures []string
	c := NewCollector([]Plugin{
		fakePlugin{id: "broken", err: errors.New("boom")},
		fakePlugin{id: "ok", tools: []MenuItem{{Name: "t"}}, jsSnippet: "ok();"},
	}, WithIsolation(func(_ context.Context, err *HookError) {
		failures = append(failures, err.PluginID+"/"+string(err.Hook))
	}))

	items, err := c.MenuItems(context.Background(), HookToolsMenu)
	if err != nil {
		t.Fatalf("MenuItems() error = %v", err)
	}
	if len(items) != 1 || items[0].Name != "t" {
		t.Fatalf("items = %v", items)
	}
	js, err := c.ScriptSnippets(context.Background())
	if err != nil {
		t.Fatalf("ScriptSnippets() error = %v", err)
	}
	if js != "ok();" {
		t.Fatalf("js = %q, want %q", js, "ok();")
	}
	want := []string{"broken/tools_menu_items", "broken/script_snippets"}
	if diff := cmp.Diff(want, failures); diff != "" {
		t.Fatalf("failures mismatch (-want +got):\n%s", diff)
	}
}

func TestPanelsSortedByPriority(t *testing.T) {
	t.Parallel()

	c := NewCollector([]Plugin{
		fakePlugin{id: "a", panels: []Panel{{Name: "properties", Priority: 2}}},
		fakePlugin{id: "b", panels: []Panel{{Name: "dashboard", Priority: 1}}},
	})
	got, err := c.Panels(context.Background())
	if err != nil {
		t.Fatalf("Panels() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "dashboard" || got[1].Name != "properties" {
		t.Fatalf("panels = %+v", got)
	}
}

func TestAssetsConcatenateInPluginOrderWithoutSorting(t *testing.T) {
	t.Parallel()

	c := NewCollector([]Plugin{
		fakePlugin{id: "a", sheets: []string{"/z.css"}, scripts: []string{"/z.js", "/y.js"}},
		bare{id: "bare"},
		fakePlugin{id: "b", sheets: []string{"/a.css"}, scripts: []string{"/a.js"}},
	})
	sheets, err := c.Stylesheets(context.Background())
	if err != nil {
		t.Fatalf("Stylesheets() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/z.css", "/a.css"}, sheets); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	scripts, err := c.Scripts(context.Background())
	if err != nil {
		t.Fatalf("Scripts() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/z.js", "/y.js", "/a.js"}, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestSnippetsConcatenateVerbatim(t *testing.T) {
	t.Parallel()

	c := NewCollector([]Plugin{
		fakePlugin{id: "a", cssSnip: ".a{}\n", jsSnippet: "a();\n"},
		bare{id: "bare"},
		fakePlugin{id: "b", cssSnip: ".b{}", jsSnippet: "b();"},
	})
	css, err := c.CSSSnippets(context.Background())
	if err != nil {
		t.Fatalf("CSSSnippets() error = %v", err)
	}
	if css != ".a{}\n.b{}" {
		t.Fatalf("css = %q", css)
	}
	js, err := c.ScriptSnippets(context.Background())
	if err != nil {
		t.Fatalf("ScriptSnippets() error = %v", err)
	}
	if js != "a();\nb();" {
		t.Fatalf("js = %q", js)
	}
}

func TestSnippetsEmptyWithoutContributors(t *testing.T) {
	t.Parallel()

	c := NewCollector([]Plugin{bare{id: "bare"}})
	css, err := c.CSSSnippets(context.Background())
	if err != nil || css != "" {
		t.Fatalf("CSSSnippets() = %q, %v; want empty", css, err)
	}
}

func TestNodesConcatenateInProviderOrder(t *testing.T) {
	t.Parallel()

	first := fakePlugin{id: "first", nodes: []Node{{ID: "sg/1", Label: "Servers"}}}
	second := fakePlugin{id: "second", nodes: []Node{{ID: "x/1"}, {ID: "x/2"}}}

	got, err := NewCollector(nil).Nodes(context.Background(), []NodeProvider{first, second})
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	ids := []string{}
	for _, node := range got {
		ids = append(ids, node.ID)
	}
	if diff := cmp.Diff([]string{"sg/1", "x/1", "x/2"}, ids); diff != "" {
		t.Fatalf("node order mismatch (-want +got):\n%s", diff)
	}
}

func TestNodesEmptyIsNonNil(t *testing.T) {
	t.Parallel()

	got, err := NewCollector(nil).Nodes(context.Background(), nil)
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Nodes() = %#v, want empty non-nil slice", got)
	}
}

func TestNodesPropagatesProviderError(t *testing.T) {
	t.Parallel()

	_, err := NewCollector(nil).Nodes(context.Background(), []NodeProvider{fakePlugin{id: "sg", err: errors.New("db down")}})
	var hookErr *HookError
	if !errors.As(err, &hookErr) || hookErr.Hook != HookNodes {
		t.Fatalf("err = %v, want nodes hook error", err)
	}
}
