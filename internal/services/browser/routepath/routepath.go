// Package routepath stores canonical HTTP paths for browser service modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root          = "/"
	Health        = "/up"
	Metrics       = "/metrics"
	Login         = "/login"
	Logout        = "/logout"
	StaticPrefix  = "/static/"
	BrowserPrefix = "/browser/"
	BrowserIndex  = BrowserPrefix
	BrowserJS     = BrowserPrefix + "browser.js"
	BrowserCSS    = BrowserPrefix + "browser.css"
	BrowserNodes  = BrowserPrefix + "nodes/"
	// BrowserStaticPrefix serves browser-owned assets.
	BrowserStaticPrefix = BrowserPrefix + "static/"
	SettingsPrefix      = "/settings/"
	SettingsStore       = SettingsPrefix + "store"
	SettingsRest        = SettingsPrefix + "{rest...}"
	BrowserRest         = BrowserPrefix + "{rest...}"
)

// LoginWithNext returns the login path that returns to next after sign-in.
func LoginWithNext(next string) string {
	next = SafeNext(next)
	if next == "" {
		return Login
	}
	return Login + "?" + url.Values{"next": {next}}.Encode()
}

// SafeNext returns next when it is a local absolute path, otherwise "".
func SafeNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return ""
	}
	return next
}
