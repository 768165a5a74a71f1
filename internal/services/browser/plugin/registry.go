package plugin

import (
	"fmt"
	"slices"
	"strings"
)

// RegistryConfig lists the plugins installed into the browser.
type RegistryConfig struct {
	// Modules are feature modules (menus, panels, assets).
	Modules []Plugin
	// Nodes are every node type known to the object browser.
	Nodes []Plugin
	// Children are the node providers queried for the tree root. Each one
	// must also be registered in Nodes.
	Children []NodeProvider
}

// Registry is the immutable set of installed plugins. It is built once at
// process start and shared read-only by concurrent requests.
type Registry struct {
	modules  []Plugin
	nodes    []Plugin
	children []NodeProvider
}

// NewRegistry validates cfg and copies its lists.
func NewRegistry(cfg RegistryConfig) (Registry, error) {
	if err := validateGroup("module", cfg.Modules); err != nil {
		return Registry{}, err
	}
	if err := validateGroup("node", cfg.Nodes); err != nil {
		return Registry{}, err
	}

	nodeIDs := make(map[string]struct{}, len(cfg.Nodes))
	for _, node := range cfg.Nodes {
		nodeIDs[node.ID()] = struct{}{}
	}
	seenChildren := make(map[string]struct{}, len(cfg.Children))
	for idx, child := range cfg.Children {
		if child == nil {
			return Registry{}, fmt.Errorf("child provider %d is nil", idx)
		}
		id := child.ID()
		if _, ok := nodeIDs[id]; !ok {
			return Registry{}, fmt.Errorf("child provider %q is not a registered node", id)
		}
		if _, ok := seenChildren[id]; ok {
			return Registry{}, fmt.Errorf("child provider %q registered twice", id)
		}
		seenChildren[id] = struct{}{}
	}

	return Registry{
		modules:  slices.Clone(cfg.Modules),
		nodes:    slices.Clone(cfg.Nodes),
		children: slices.Clone(cfg.Children),
	}, nil
}

func validateGroup(kind string, plugins []Plugin) error {
	seen := make(map[string]struct{}, len(plugins))
	for idx, p := range plugins {
		if p == nil {
			return fmt.Errorf("%s plugin %d is nil", kind, idx)
		}
		id := strings.TrimSpace(p.ID())
		if id == "" {
			return fmt.Errorf("%s plugin %d has empty id", kind, idx)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%s plugin %q registered twice", kind, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Modules returns the feature modules in registration order.
func (r Registry) Modules() []Plugin { return slices.Clone(r.modules) }

// Nodes returns every registered node type in registration order.
func (r Registry) Nodes() []Plugin { return slices.Clone(r.nodes) }

// Children returns the root node providers in registration order.
func (r Registry) Children() []NodeProvider { return slices.Clone(r.children) }

// Contributors returns the modules followed by the node types: the full
// set whose hooks feed the page, script and stylesheet responses.
func (r Registry) Contributors() []Plugin {
	out := make([]Plugin, 0, len(r.modules)+len(r.nodes))
	out = append(out, r.modules...)
	return append(out, r.nodes...)
}
