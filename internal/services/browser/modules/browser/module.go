// Package browser serves the main browser page and the generated script,
// stylesheet and root tree-node endpoints assembled from plugin
// contributions.
package browser

import (
	"io/fs"
	"net/http"

	"github.com/pgconsole/pgconsole/internal/services/browser/assets"
	"github.com/pgconsole/pgconsole/internal/services/browser/module"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/plugin"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/static"
)

// Option configures a browser module.
type Option func(*Module)

// WithRegistry sets the plugin registry the endpoints aggregate.
func WithRegistry(registry plugin.Registry) Option {
	return func(m *Module) { m.registry = registry }
}

// WithSettings sets the per-user setting reader used for the saved layout.
func WithSettings(settings SettingReader) Option {
	return func(m *Module) { m.settings = settings }
}

// WithAssets sets the static asset resolver.
func WithAssets(resolver assets.Resolver) Option {
	return func(m *Module) { m.assets = resolver }
}

// WithDebug selects unminified core assets.
func WithDebug(debug bool) Option {
	return func(m *Module) { m.debug = debug }
}

// WithCollectorOptions sets options applied to every aggregation.
func WithCollectorOptions(opts ...plugin.CollectorOption) Option {
	return func(m *Module) { m.collectorOpts = append(m.collectorOpts, opts...) }
}

// WithBase sets the handler base.
func WithBase(base modulehandler.Base) Option {
	return func(m *Module) { m.base = base }
}

// WithStaticFS overrides the browser-owned asset filesystem.
func WithStaticFS(fsys fs.FS) Option {
	return func(m *Module) { m.staticFS = fsys }
}

// Module provides the authenticated browser routes.
type Module struct {
	registry      plugin.Registry
	settings      SettingReader
	assets        assets.Resolver
	debug         bool
	collectorOpts []plugin.CollectorOption
	base          modulehandler.Base
	staticFS      fs.FS
}

// New returns a browser module configured by the given options.
func New(opts ...Option) Module {
	m := Module{base: modulehandler.NewBase(nil), staticFS: static.FS}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "browser" }

// Mount wires browser route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.registry, m.settings, m.assets, m.debug, m.collectorOpts...)
	registerRoutes(mux, newHandlers(svc, m.base), m.staticFS)
	return module.Mount{Prefix: routepath.BrowserPrefix, Handler: mux}, nil
}
