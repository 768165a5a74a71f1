// Package server provides the server node type. Servers are descriptors
// nested under server groups, so the type is not a root provider.
package server

import (
	"context"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

const (
	// ID is the plugin identifier.
	ID = "server"
	// NodeType is the tree node _type.
	NodeType = "server"
)

// Plugin is the server node type.
type Plugin struct {
	plugin.Base
}

// New returns the server node type.
func New() Plugin { return Plugin{} }

func (Plugin) ID() string { return ID }

func (Plugin) CreateMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{{
		Name:     "create_server",
		Label:    "Server...",
		Module:   "pgBrowser.Nodes.server",
		Callback: "show_obj_properties",
		Category: "create",
		Icon:     "icon-server",
		Priority: 10,
	}}, nil
}

func (Plugin) ContextMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{
		{Name: "connect_server", Label: "Connect", Module: "pgBrowser.Nodes.server", Callback: "connect_server", Category: NodeType, Icon: "icon-server-connected", Priority: 10},
		{Name: "disconnect_server", Label: "Disconnect", Module: "pgBrowser.Nodes.server", Callback: "disconnect_server", Category: NodeType, Icon: "icon-server-not-connected", Priority: 20},
	}, nil
}

func (Plugin) CSSSnippets(context.Context) (string, error) {
	return `.icon-server { background-image: url('/browser/static/img/server.svg') !important; }
.icon-server-connected { background-image: url('/browser/static/img/server-connected.svg') !important; }
.icon-server-not-connected { background-image: url('/browser/static/img/server-not-connected.svg') !important; }
`, nil
}

func (Plugin) ScriptSnippets(context.Context) (string, error) {
	return `pgBrowser.Nodes = pgBrowser.Nodes || {};
pgBrowser.Nodes["server"] = { type: "server", label: "Server", parent_type: "server-group" };
`, nil
}

var _ plugin.Plugin = Plugin{}
