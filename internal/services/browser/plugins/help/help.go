// Package help contributes documentation links to the Help menu.
package help

import (
	"context"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// ID is the plugin identifier.
const ID = "help"

// Links configures the help menu targets.
type Links struct {
	OnlineHelp string
	PostgreSQL string
	Project    string
}

// DefaultLinks are the stock documentation targets.
var DefaultLinks = Links{
	OnlineHelp: "/static/docs/index.html",
	PostgreSQL: "https://www.postgresql.org/",
	Project:    "https://github.com/pgconsole/pgconsole",
}

// Plugin adds documentation links.
type Plugin struct {
	plugin.Base
	links Links
}

// New returns the help plugin for links.
func New(links Links) Plugin {
	return Plugin{links: links}
}

func (Plugin) ID() string { return ID }

func (p Plugin) HelpMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{
		{Name: "mnu_online_help", Label: "Online Help", URL: p.links.OnlineHelp, Target: "_blank", Priority: 100},
		{Name: "mnu_postgresql", Label: "PostgreSQL Website", URL: p.links.PostgreSQL, Target: "_blank", Priority: 200},
		{Name: "mnu_pgconsole", Label: "pgconsole Website", URL: p.links.Project, Target: "_blank", Priority: 300},
	}, nil
}
