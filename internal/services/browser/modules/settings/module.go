// Package settings serves the per-user settings store used by the browser
// client to persist layout and preferences.
package settings

import (
	"context"
	"net/http"

	"github.com/pgconsole/pgconsole/internal/services/browser/module"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

// Store reads and writes per-user settings.
type Store interface {
	GetSetting(ctx context.Context, userID, key, fallback string) (string, error)
	SetSetting(ctx context.Context, userID, key, value string) error
}

// Option configures a settings module.
type Option func(*Module)

// WithStore sets the settings persistence.
func WithStore(store Store) Option {
	return func(m *Module) { m.store = store }
}

// WithBase sets the handler base.
func WithBase(base modulehandler.Base) Option {
	return func(m *Module) { m.base = base }
}

// Module provides the authenticated settings routes.
type Module struct {
	store Store
	base  modulehandler.Base
}

// New returns a settings module configured by the given options.
func New(opts ...Option) Module {
	m := Module{base: modulehandler.NewBase(nil)}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "settings" }

// Mount wires settings route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.store), m.base))
	return module.Mount{Prefix: routepath.SettingsPrefix, Handler: mux}, nil
}
