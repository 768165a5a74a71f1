package templates

import (
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/i18n"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
)

// Localizer resolves translated copy.
type Localizer = i18n.Localizer

// T translates key through loc.
func T(loc Localizer, key string, args ...any) string {
	return i18n.T(loc, key, args...)
}

// Menu is one top-level browser menu with its sorted items.
type Menu struct {
	Name    string
	Heading string
	Items   []plugin.MenuItem
}

// BrowserPage is the view model of the main browser document.
type BrowserPage struct {
	Lang        string
	Loc         Localizer
	Title       string
	Stylesheets []string
	Scripts     []string
	Menus       []Menu
	Username    string
	AvatarURL   string
	LogoutURL   string
}

// BrowserScriptView is the data the core script fragment needs.
type BrowserScriptView struct {
	Layout        string
	StandardItems []plugin.MenuItem
	CreateItems   []plugin.MenuItem
	ContextItems  []plugin.MenuItem
	Panels        []plugin.Panel
	NodesURL      string
	SettingsURL   string
}

// LoginPage is the view model of the sign-in form.
type LoginPage struct {
	Lang      string
	Loc       Localizer
	Action    string
	Next      string
	Email     string
	ErrorText string
}
