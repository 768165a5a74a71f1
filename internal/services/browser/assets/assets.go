// Package assets resolves static asset URLs and owns the browser's fixed
// core stylesheet and script lists.
package assets

import (
	"strings"

	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

// Resolver builds public URLs for static files.
type Resolver struct {
	// BaseURL prefixes static file URLs, e.g. a CDN origin. Empty keeps
	// URLs host-relative. Generated endpoints are always served locally.
	BaseURL string
}

// Static returns the URL of a shared console asset under /static/.
func (r Resolver) Static(filename string) string {
	return r.join(routepath.StaticPrefix, filename)
}

// BrowserStatic returns the URL of a browser-owned asset.
func (r Resolver) BrowserStatic(filename string) string {
	return r.join(routepath.BrowserStaticPrefix, filename)
}

// Route returns the URL of a generated endpoint path.
func (Resolver) Route(path string) string {
	return path
}

func (r Resolver) join(prefix string, filename string) string {
	base := strings.TrimRight(strings.TrimSpace(r.BaseURL), "/")
	return base + prefix + strings.TrimLeft(strings.TrimSpace(filename), "/")
}

// CoreStylesheets returns the stylesheets every browser page loads before
// plugin stylesheets, in load order. debug selects the unminified wcDocker
// skeleton.
func CoreStylesheets(r Resolver, debug bool) []string {
	return []string{
		r.Static("css/codemirror/codemirror.css"),
		r.Static(variant("css/wcDocker/wcDockerSkeleton", ".css", debug)),
		r.Static("css/wcDocker/theme.css"),
		r.Static("css/jQuery-contextMenu/jquery.contextMenu.css"),
		r.BrowserStatic("css/browser.css"),
		r.BrowserStatic("css/aciTree/css/aciTree.css"),
		r.Route(routepath.BrowserCSS),
	}
}

// CoreScripts returns the scripts every browser page loads before plugin
// scripts, in load order. debug selects the unminified wcDocker bundle.
func CoreScripts(r Resolver, debug bool) []string {
	return []string{
		r.Static("js/codemirror/codemirror.js"),
		r.Static("js/codemirror/mode/sql.js"),
		r.Static(variant("js/wcDocker/wcDocker", ".js", debug)),
		r.Static("js/jQuery-contextMenu/jquery.ui.position.js"),
		r.Static("js/jQuery-contextMenu/jquery.contextMenu.js"),
		r.BrowserStatic("js/aciTree/jquery.aciPlugin.min.js"),
		r.BrowserStatic("js/aciTree/jquery.aciTree.dom.js"),
		r.BrowserStatic("js/aciTree/jquery.aciTree.min.js"),
		r.Route(routepath.BrowserJS),
	}
}

func variant(stem string, ext string, debug bool) string {
	if debug {
		return stem + ext
	}
	return stem + ".min" + ext
}
