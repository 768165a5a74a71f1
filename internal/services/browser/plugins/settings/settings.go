// Package settings contributes the client wiring for the per-user settings
// store.
package settings

import (
	"context"
	"encoding/json"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

// ID is the plugin identifier.
const ID = "settings"

// Plugin adds layout persistence to the client.
type Plugin struct {
	plugin.Base
}

// New returns the settings plugin.
func New() Plugin { return Plugin{} }

func (Plugin) ID() string { return ID }

func (Plugin) FileMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{{
		Name:     "mnu_resetlayout",
		Label:    "Reset Layout",
		Module:   "pgConsole.Settings",
		Callback: "reset_layout",
		Priority: 999,
	}}, nil
}

func (Plugin) ScriptSnippets(context.Context) (string, error) {
	storeURL, err := json.Marshal(routepath.SettingsStore)
	if err != nil {
		return "", err
	}
	return `pgConsole.Settings = {
  store: function(setting, value) {
    return $.post(` + string(storeURL) + `, {setting: setting, value: value});
  },
  reset_layout: function() {
    this.store("Browser/Layout", "").done(function() { location.reload(); });
  }
};
`, nil
}

var _ plugin.Plugin = Plugin{}
