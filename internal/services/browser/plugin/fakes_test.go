package plugin

import "context"

// fakePlugin contributes canned values for the hooks tests care about.
type fakePlugin struct {
	Base
	id        string
	tools     []MenuItem
	help      []MenuItem
	create    []MenuItem
	panels    []Panel
	sheets    []string
	scripts   []string
	jsSnippet string
	cssSnip   string
	nodes     []Node
	err       error
}

func (p fakePlugin) ID() string { return p.id }

func (p fakePlugin) ToolsMenuItems(context.Context) ([]MenuItem, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.tools, nil
}

func (p fakePlugin) HelpMenuItems(context.Context) ([]MenuItem, error) { return p.help, nil }

func (p fakePlugin) CreateMenuItems(context.Context) ([]MenuItem, error) { return p.create, nil }

func (p fakePlugin) Panels(context.Context) ([]Panel, error) { return p.panels, nil }

func (p fakePlugin) Stylesheets(context.Context) ([]string, error) { return p.sheets, nil }

func (p fakePlugin) Scripts(context.Context) ([]string, error) { return p.scripts, nil }

func (p fakePlugin) ScriptSnippets(context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.jsSnippet, nil
}

func (p fakePlugin) CSSSnippets(context.Context) (string, error) { return p.cssSnip, nil }

func (p fakePlugin) Nodes(context.Context) ([]Node, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.nodes, nil
}

// bare relies on Base for every hook.
type bare struct {
	Base
	id string
}

func (b bare) ID() string { return b.id }
