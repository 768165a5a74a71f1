package browser

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	"github.com/pgconsole/pgconsole/internal/services/browser/assets"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/templates"
)

// LayoutSetting is the per-user setting holding the saved docker layout.
const LayoutSetting = "Browser/Layout"

// SettingReader reads per-user settings.
type SettingReader interface {
	GetSetting(ctx context.Context, userID, key, fallback string) (string, error)
}

// pageMenus lists the top-level page menus in display order.
var pageMenus = []struct {
	name    string
	heading string
	hook    plugin.Hook
}{
	{"file", "menu.file", plugin.HookFileMenu},
	{"edit", "menu.edit", plugin.HookEditMenu},
	{"tools", "menu.tools", plugin.HookToolsMenu},
	{"management", "menu.management", plugin.HookManagementMenu},
	{"help", "menu.help", plugin.HookHelpMenu},
}

type service struct {
	registry      plugin.Registry
	settings      SettingReader
	assets        assets.Resolver
	debug         bool
	collectorOpts []plugin.CollectorOption
}

func newService(registry plugin.Registry, settings SettingReader, resolver assets.Resolver, debug bool, opts ...plugin.CollectorOption) service {
	return service{
		registry:      registry,
		settings:      settings,
		assets:        resolver,
		debug:         debug,
		collectorOpts: opts,
	}
}

func (s service) contributors() plugin.Collector {
	return plugin.NewCollector(s.registry.Contributors(), s.collectorOpts...)
}

// indexPage assembles the main page: sorted menus, core then plugin assets
// and the user's identity.
func (s service) indexPage(ctx context.Context, principal requestctx.Principal, loc templates.Localizer) (templates.BrowserPage, error) {
	collector := s.contributors()
	page := templates.BrowserPage{
		Loc:       loc,
		Title:     templates.T(loc, "browser.title"),
		Username:  principal.Email,
		LogoutURL: routepath.Logout,
	}
	if principal.Email != "" {
		page.AvatarURL = gravatarURL(principal.Email)
	}

	for _, menu := range pageMenus {
		items, err := collector.MenuItems(ctx, menu.hook)
		if err != nil {
			return templates.BrowserPage{}, err
		}
		page.Menus = append(page.Menus, templates.Menu{
			Name:    menu.name,
			Heading: templates.T(loc, menu.heading),
			Items:   items,
		})
	}

	stylesheets, err := collector.Stylesheets(ctx)
	if err != nil {
		return templates.BrowserPage{}, err
	}
	scripts, err := collector.Scripts(ctx)
	if err != nil {
		return templates.BrowserPage{}, err
	}
	page.Stylesheets = append(assets.CoreStylesheets(s.assets, s.debug), stylesheets...)
	page.Scripts = append(assets.CoreScripts(s.assets, s.debug), scripts...)
	return page, nil
}

// script renders the core fragment followed by every plugin snippet.
func (s service) script(ctx context.Context, userID string) (string, error) {
	collector := s.contributors()
	view := templates.BrowserScriptView{
		NodesURL:    routepath.BrowserNodes,
		SettingsURL: routepath.SettingsStore,
	}
	var err error
	if view.StandardItems, err = collector.MenuItems(ctx, plugin.HookStandardMenu); err != nil {
		return "", err
	}
	if view.CreateItems, err = collector.MenuItems(ctx, plugin.HookCreateMenu); err != nil {
		return "", err
	}
	if view.ContextItems, err = collector.MenuItems(ctx, plugin.HookContextMenu); err != nil {
		return "", err
	}
	if view.Panels, err = collector.Panels(ctx); err != nil {
		return "", err
	}
	if s.settings != nil {
		if view.Layout, err = s.settings.GetSetting(ctx, userID, LayoutSetting, ""); err != nil {
			return "", fmt.Errorf("load layout setting: %w", err)
		}
	}
	snippets, err := collector.ScriptSnippets(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := templates.BrowserScript(view).Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render browser script: %w", err)
	}
	if snippets != "" {
		if !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteByte('\n')
		}
		buf.WriteString(snippets)
	}
	return buf.String(), nil
}

func (s service) stylesheet(ctx context.Context) (string, error) {
	return s.contributors().CSSSnippets(ctx)
}

func (s service) nodes(ctx context.Context) ([]plugin.Node, error) {
	return plugin.NewCollector(nil, s.collectorOpts...).Nodes(ctx, s.registry.Children())
}
