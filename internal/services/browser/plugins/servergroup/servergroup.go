// Package servergroup provides the server-group node type, the root of the
// object browser tree.
package servergroup

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
)

const (
	// ID is the plugin identifier.
	ID = "server-group"
	// NodeType is the tree node _type.
	NodeType = "server-group"
	// DefaultGroup is created for every bootstrapped user.
	DefaultGroup = "Servers"
)

// Lister loads a user's server groups.
type Lister interface {
	ListServerGroups(ctx context.Context, userID string) ([]storage.ServerGroup, error)
}

// Plugin lists server groups at the tree root.
type Plugin struct {
	plugin.Base
	groups Lister
}

// New returns the server-group node type backed by groups.
func New(groups Lister) Plugin {
	return Plugin{groups: groups}
}

func (Plugin) ID() string { return ID }

func (Plugin) CreateMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{{
		Name:     "create_server_group",
		Label:    "Server Group...",
		Module:   "pgBrowser.Nodes.server-group",
		Callback: "show_obj_properties",
		Category: "create",
		Icon:     "icon-server-group",
		Priority: 1,
	}}, nil
}

func (Plugin) ContextMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return []plugin.MenuItem{{
		Name:     "rename_server_group",
		Label:    "Rename...",
		Module:   "pgBrowser.Nodes.server-group",
		Callback: "rename_obj",
		Category: NodeType,
		Priority: 50,
	}}, nil
}

func (Plugin) CSSSnippets(context.Context) (string, error) {
	return ".icon-server-group { background-image: url('/browser/static/img/server-group.svg') !important; }\n", nil
}

// Nodes returns the signed-in user's groups. Without a user there is nothing
// to list.
func (p Plugin) Nodes(ctx context.Context) ([]plugin.Node, error) {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" || p.groups == nil {
		return nil, nil
	}
	groups, err := p.groups.ListServerGroups(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list server groups: %w", err)
	}
	nodes := make([]plugin.Node, 0, len(groups))
	for _, group := range groups {
		nodes = append(nodes, plugin.Node{
			ID:    "sg/" + strconv.FormatInt(group.ID, 10),
			Label: group.Name,
			Icon:  "icon-server-group",
			Inode: true,
			Type:  NodeType,
			Data:  map[string]any{"id": group.ID},
		})
	}
	return nodes, nil
}

var _ plugin.NodeProvider = Plugin{}
