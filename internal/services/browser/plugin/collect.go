package plugin

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Hook names one contribution category.
type Hook string

const (
	HookFileMenu       Hook = "file_menu_items"
	HookEditMenu       Hook = "edit_menu_items"
	HookToolsMenu      Hook = "tools_menu_items"
	HookManagementMenu Hook = "management_menu_items"
	HookHelpMenu       Hook = "help_menu_items"
	HookStandardMenu   Hook = "standard_menu_items"
	HookCreateMenu     Hook = "create_menu_items"
	HookContextMenu    Hook = "context_menu_items"
	HookPanels         Hook = "panels"
	HookStylesheets    Hook = "stylesheets"
	HookScripts        Hook = "scripts"
	HookScriptSnippets Hook = "script_snippets"
	HookCSSSnippets    Hook = "css_snippets"
	HookNodes          Hook = "nodes"
)

var tracer trace.Tracer = otel.Tracer("github.com/pgconsole/pgconsole/internal/services/browser/plugin")

// HookError reports a failed hook call.
type HookError struct {
	PluginID string
	Hook     Hook
	Err      error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("plugin %s %s: %v", e.PluginID, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// FailureFunc observes a hook failure the collector chose to skip.
type FailureFunc func(ctx context.Context, err *HookError)

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithIsolation makes the collector skip a failing plugin's contribution
// instead of aborting. onFailure, when set, observes every skipped failure.
func WithIsolation(onFailure FailureFunc) CollectorOption {
	return func(c *Collector) {
		c.isolate = true
		c.onFailure = onFailure
	}
}

// Collector merges hook results from an ordered plugin list.
type Collector struct {
	plugins   []Plugin
	isolate   bool
	onFailure FailureFunc
}

// NewCollector returns a collector over plugins in the given order.
func NewCollector(plugins []Plugin, opts ...CollectorOption) Collector {
	c := Collector{plugins: plugins}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// MenuItems concatenates every plugin's items for a menu hook and sorts the
// result by ascending priority. Equal priorities keep plugin order.
func (c Collector) MenuItems(ctx context.Context, hook Hook) ([]MenuItem, error) {
	call, ok := menuHooks[hook]
	if !ok {
		return nil, fmt.Errorf("unknown menu hook %q", hook)
	}
	items, err := collectLists(ctx, c, hook, call)
	if err != nil {
		return nil, err
	}
	SortByPriority(items, func(item MenuItem) int { return item.Priority })
	return items, nil
}

// Panels concatenates and priority-sorts every plugin's panels.
func (c Collector) Panels(ctx context.Context) ([]Panel, error) {
	panels, err := collectLists(ctx, c, HookPanels, Plugin.Panels)
	if err != nil {
		return nil, err
	}
	SortByPriority(panels, func(panel Panel) int { return panel.Priority })
	return panels, nil
}

// Stylesheets concatenates plugin stylesheet URLs in plugin order.
func (c Collector) Stylesheets(ctx context.Context) ([]string, error) {
	return collectLists(ctx, c, HookStylesheets, Plugin.Stylesheets)
}

// Scripts concatenates plugin script URLs in plugin order.
func (c Collector) Scripts(ctx context.Context) ([]string, error) {
	return collectLists(ctx, c, HookScripts, Plugin.Scripts)
}

// ScriptSnippets concatenates plugin JavaScript fragments in plugin order.
func (c Collector) ScriptSnippets(ctx context.Context) (string, error) {
	return collectText(ctx, c, HookScriptSnippets, Plugin.ScriptSnippets)
}

// CSSSnippets concatenates plugin CSS fragments in plugin order.
func (c Collector) CSSSnippets(ctx context.Context) (string, error) {
	return collectText(ctx, c, HookCSSSnippets, Plugin.CSSSnippets)
}

// Nodes concatenates node lists from providers in provider order. The
// result is never nil so it serializes as an empty JSON array.
func (c Collector) Nodes(ctx context.Context, providers []NodeProvider) ([]Node, error) {
	ctx, span := tracer.Start(ctx, "plugin.collect", trace.WithAttributes(attribute.String("hook", string(HookNodes))))
	defer span.End()

	nodes := []Node{}
	for _, provider := range providers {
		if provider == nil {
			continue
		}
		got, err := provider.Nodes(ctx)
		if err != nil {
			if c.skip(ctx, span, provider.ID(), HookNodes, err) {
				continue
			}
			return nil, &HookError{PluginID: provider.ID(), Hook: HookNodes, Err: err}
		}
		nodes = append(nodes, got...)
	}
	return nodes, nil
}

// SortByPriority stable-sorts items ascending by key.
func SortByPriority[T any](items []T, key func(T) int) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
}

var menuHooks = map[Hook]func(Plugin, context.Context) ([]MenuItem, error){
	HookFileMenu:       Plugin.FileMenuItems,
	HookEditMenu:       Plugin.EditMenuItems,
	HookToolsMenu:      Plugin.ToolsMenuItems,
	HookManagementMenu: Plugin.ManagementMenuItems,
	HookHelpMenu:       Plugin.HelpMenuItems,
	HookStandardMenu:   Plugin.StandardMenuItems,
	HookCreateMenu:     Plugin.CreateMenuItems,
	HookContextMenu:    Plugin.ContextMenuItems,
}

func collectLists[T any](ctx context.Context, c Collector, hook Hook, call func(Plugin, context.Context) ([]T, error)) ([]T, error) {
	ctx, span := tracer.Start(ctx, "plugin.collect", trace.WithAttributes(attribute.String("hook", string(hook))))
	defer span.End()

	out := []T{}
	for _, p := range c.plugins {
		if p == nil {
			continue
		}
		got, err := call(p, ctx)
		if err != nil {
			if c.skip(ctx, span, p.ID(), hook, err) {
				continue
			}
			return nil, &HookError{PluginID: p.ID(), Hook: hook, Err: err}
		}
		out = append(out, got...)
	}
	span.SetAttributes(attribute.Int("items", len(out)))
	return out, nil
}

func collectText(ctx context.Context, c Collector, hook Hook, call func(Plugin, context.Context) (string, error)) (string, error) {
	ctx, span := tracer.Start(ctx, "plugin.collect", trace.WithAttributes(attribute.String("hook", string(hook))))
	defer span.End()

	var b strings.Builder
	for _, p := range c.plugins {
		if p == nil {
			continue
		}
		got, err := call(p, ctx)
		if err != nil {
			if c.skip(ctx, span, p.ID(), hook, err) {
				continue
			}
			return "", &HookError{PluginID: p.ID(), Hook: hook, Err: err}
		}
		b.WriteString(got)
	}
	return b.String(), nil
}

// skip records err on the span and reports whether collection continues.
func (c Collector) skip(ctx context.Context, span trace.Span, pluginID string, hook Hook, err error) bool {
	span.RecordError(err, trace.WithAttributes(attribute.String("plugin", pluginID)))
	if !c.isolate {
		span.SetStatus(codes.Error, err.Error())
		return false
	}
	if c.onFailure != nil {
		c.onFailure(ctx, &HookError{PluginID: pluginID, Hook: hook, Err: err})
	}
	return true
}
