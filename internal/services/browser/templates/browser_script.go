package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// BrowserScript renders the core browser.js fragment that seeds the client
// with the saved layout and the sorted menu and panel lists. Plugin script
// snippets are appended after it by the caller.
func BrowserScript(view BrowserScriptView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		values := []struct {
			name  string
			value any
		}{
			{"layout", view.Layout},
			{"standardMenus", nonNil(view.StandardItems)},
			{"createMenus", nonNil(view.CreateItems)},
			{"contextMenus", nonNil(view.ContextItems)},
			{"panels", nonNilPanels(view.Panels)},
			{"nodesURL", view.NodesURL},
			{"settingsURL", view.SettingsURL},
		}
		m := &markup{w: w}
		m.raw("(function(pgBrowser) {\n")
		for _, entry := range values {
			encoded, err := json.Marshal(entry.value)
			if err != nil {
				return fmt.Errorf("encode %s: %w", entry.name, err)
			}
			m.raw("  pgBrowser.", entry.name, " = ", string(encoded), ";\n")
		}
		m.raw("  pgBrowser.init = function() {\n",
			"    pgBrowser.docker = new wcDocker('#dockerContainer', {allowContextMenu: false});\n",
			"    if (pgBrowser.layout) {\n",
			"      try { pgBrowser.docker.restore(pgBrowser.layout); } catch (e) { pgBrowser.layout = ''; }\n",
			"    }\n",
			"    pgBrowser.panels.forEach(function(panel) { pgBrowser.addPanel(panel); });\n",
			"    pgBrowser.standardMenus.forEach(function(item) { pgBrowser.addMenu('standard', item); });\n",
			"    pgBrowser.createMenus.forEach(function(item) { pgBrowser.addMenu('create', item); });\n",
			"    pgBrowser.contextMenus.forEach(function(item) { pgBrowser.addMenu('context', item); });\n",
			"  };\n",
			"})(window.pgBrowser = window.pgBrowser || {});\n",
		)
		return m.err
	})
}

func nonNil(items []plugin.MenuItem) []plugin.MenuItem {
	if items == nil {
		return []plugin.MenuItem{}
	}
	return items
}

func nonNilPanels(panels []plugin.Panel) []plugin.Panel {
	if panels == nil {
		return []plugin.Panel{}
	}
	return panels
}
