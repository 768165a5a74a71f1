// Package about contributes the About dialog.
package about

import (
	"context"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// ID is the plugin identifier.
const ID = "about"

// Plugin adds the About entry to the Help menu.
type Plugin struct {
	plugin.Base
	version string
}

// New returns the about plugin reporting version.
func New(version string) Plugin {
	return Plugin{version: version}
}

func (Plugin) ID() string { return ID }

func (Plugin) HelpMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{{
		Name:     "mnu_about",
		Label:    "About pgconsole",
		Module:   "pgConsole.About",
		Callback: "about_show",
		Priority: 999,
	}}, nil
}

func (p Plugin) Panels(context.Context) ([]plugin.Panel, error) {
	version := p.version
	if version == "" {
		version = "dev"
	}
	return []plugin.Panel{{
		Name:        "pnl_about",
		Title:       "About pgconsole",
		Width:       500,
		Height:      200,
		ShowTitle:   true,
		IsCloseable: true,
		IsPrivate:   true,
		Content:     `<div class="about">pgconsole ` + version + `</div>`,
		Priority:    999,
	}}, nil
}

var _ plugin.Plugin = Plugin{}
