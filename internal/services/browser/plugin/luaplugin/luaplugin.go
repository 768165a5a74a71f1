package luaplugin

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// Plugin is a static contributor built by a Lua script.
type Plugin struct {
	id string

	file       []plugin.MenuItem
	edit       []plugin.MenuItem
	tools      []plugin.MenuItem
	management []plugin.MenuItem
	help       []plugin.MenuItem
	standard   []plugin.MenuItem
	create     []plugin.MenuItem
	context    []plugin.MenuItem

	panels      []plugin.Panel
	stylesheets []string
	scripts     []string
	jsSnippets  []string
	cssSnippets []string
	nodes       []plugin.Node
}

func (p *Plugin) ID() string { return p.id }

func (p *Plugin) FileMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.file), nil
}

func (p *Plugin) EditMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.edit), nil
}

func (p *Plugin) ToolsMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.tools), nil
}

func (p *Plugin) ManagementMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.management), nil
}

func (p *Plugin) HelpMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.help), nil
}

func (p *Plugin) StandardMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.standard), nil
}

func (p *Plugin) CreateMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.create), nil
}

func (p *Plugin) ContextMenuItems(context.Context) ([]plugin.MenuItem, error) {
	return slices.Clone(p.context), nil
}

func (p *Plugin) Panels(context.Context) ([]plugin.Panel, error) {
	return slices.Clone(p.panels), nil
}

func (p *Plugin) Stylesheets(context.Context) ([]string, error) {
	return slices.Clone(p.stylesheets), nil
}

func (p *Plugin) Scripts(context.Context) ([]string, error) {
	return slices.Clone(p.scripts), nil
}

func (p *Plugin) ScriptSnippets(context.Context) (string, error) {
	return strings.Join(p.jsSnippets, ""), nil
}

func (p *Plugin) CSSSnippets(context.Context) (string, error) {
	return strings.Join(p.cssSnippets, ""), nil
}

// Nodes returns the declared root nodes.
func (p *Plugin) Nodes(context.Context) ([]plugin.Node, error) {
	return slices.Clone(p.nodes), nil
}

// ProvidesNodes reports whether the script declared root nodes.
func (p *Plugin) ProvidesNodes() bool { return len(p.nodes) > 0 }

var _ plugin.NodeProvider = (*Plugin)(nil)

// Set is the outcome of loading a plugin directory.
type Set struct {
	// Modules contribute menus, panels and assets only.
	Modules []plugin.Plugin
	// Providers declared root nodes. Register them both as node types and
	// as root providers.
	Providers []plugin.NodeProvider
}

// Apply appends the loaded plugins to cfg.
func (s Set) Apply(cfg plugin.RegistryConfig) plugin.RegistryConfig {
	cfg.Modules = append(cfg.Modules, s.Modules...)
	for _, provider := range s.Providers {
		cfg.Nodes = append(cfg.Nodes, provider)
		cfg.Children = append(cfg.Children, provider)
	}
	return cfg
}

// LoadDir runs every *.lua file at the root of fsys in lexical order. All
// failing files are reported together.
func LoadDir(fsys fs.FS) (Set, error) {
	names, err := fs.Glob(fsys, "*.lua")
	if err != nil {
		return Set{}, fmt.Errorf("list lua plugins: %w", err)
	}
	slices.Sort(names)

	var (
		set  Set
		errs error
	)
	for _, name := range names {
		p, err := LoadFile(fsys, name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if p.ProvidesNodes() {
			set.Providers = append(set.Providers, p)
		} else {
			set.Modules = append(set.Modules, p)
		}
	}
	if errs != nil {
		return Set{}, errs
	}
	return set, nil
}

// LoadFile runs one script and returns the plugin it builds.
func LoadFile(fsys fs.FS, name string) (*Plugin, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read lua plugin %s: %w", name, err)
	}
	p, err := run(string(src), "@"+path.Base(name))
	if err != nil {
		return nil, fmt.Errorf("lua plugin %s: %w", name, err)
	}
	return p, nil
}
