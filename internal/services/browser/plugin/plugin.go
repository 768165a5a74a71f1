package plugin

import "context"

// Hooks is the full set of contribution points a plugin exposes to the
// browser. Hooks receive the request context; the signed-in user is
// available through requestctx.
type Hooks interface {
	FileMenuItems(context.Context) ([]MenuItem, error)
	EditMenuItems(context.Context) ([]MenuItem, error)
	ToolsMenuItems(context.Context) ([]MenuItem, error)
	ManagementMenuItems(context.Context) ([]MenuItem, error)
	HelpMenuItems(context.Context) ([]MenuItem, error)

	StandardMenuItems(context.Context) ([]MenuItem, error)
	CreateMenuItems(context.Context) ([]MenuItem, error)
	ContextMenuItems(context.Context) ([]MenuItem, error)
	Panels(context.Context) ([]Panel, error)

	Stylesheets(context.Context) ([]string, error)
	Scripts(context.Context) ([]string, error)
	ScriptSnippets(context.Context) (string, error)
	CSSSnippets(context.Context) (string, error)
}

// Plugin is an installable feature module or node type.
type Plugin interface {
	ID() string
	Hooks
}

// NodeProvider is a plugin that contributes root entries to the object
// browser tree.
type NodeProvider interface {
	Plugin
	Nodes(context.Context) ([]Node, error)
}

// Base implements every hook as "contributes nothing". Embed it in plugin
// types and override the hooks the plugin needs.
type Base struct{}

func (Base) FileMenuItems(context.Context) ([]MenuItem, error)       { return nil, nil }
func (Base) EditMenuItems(context.Context) ([]MenuItem, error)       { return nil, nil }
func (Base) ToolsMenuItems(context.Context) ([]MenuItem, error)      { return nil, nil }
func (Base) ManagementMenuItems(context.Context) ([]MenuItem, error) { return nil, nil }
func (Base) HelpMenuItems(context.Context) ([]MenuItem, error)       { return nil, nil }
func (Base) StandardMenuItems(context.Context) ([]MenuItem, error)   { return nil, nil }
func (Base) CreateMenuItems(context.Context) ([]MenuItem, error)     { return nil, nil }
func (Base) ContextMenuItems(context.Context) ([]MenuItem, error)    { return nil, nil }
func (Base) Panels(context.Context) ([]Panel, error)                 { return nil, nil }
func (Base) Stylesheets(context.Context) ([]string, error)           { return nil, nil }
func (Base) Scripts(context.Context) ([]string, error)               { return nil, nil }
func (Base) ScriptSnippets(context.Context) (string, error)          { return "", nil }
func (Base) CSSSnippets(context.Context) (string, error)             { return "", nil }

var _ Hooks = Base{}
