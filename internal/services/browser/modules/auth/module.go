// Package auth serves the console sign-in and sign-out routes.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/pgconsole/pgconsole/internal/services/browser/module"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/requestmeta"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/storage"
)

// UserReader loads users by email.
type UserReader interface {
	GetUserByEmail(ctx context.Context, email string) (storage.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	TTL() time.Duration
}

// Option configures an auth module.
type Option func(*Module)

// WithUsers sets the user lookup.
func WithUsers(users UserReader) Option {
	return func(m *Module) { m.users = users }
}

// WithSessions sets the session token issuer.
func WithSessions(issuer TokenIssuer) Option {
	return func(m *Module) { m.issuer = issuer }
}

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(p requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = p }
}

// WithBase sets the handler base.
func WithBase(b modulehandler.Base) Option {
	return func(m *Module) { m.base = b }
}

// Module provides the public sign-in routes.
type Module struct {
	users  UserReader
	issuer TokenIssuer
	policy requestmeta.SchemePolicy
	base   modulehandler.Base
}

// New returns an auth module configured by the given options.
func New(opts ...Option) Module {
	m := Module{base: modulehandler.NewBase(nil)}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Mount wires sign-in route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.users, m.issuer), m.base, m.policy))
	return module.Mount{Paths: []string{routepath.Login, routepath.Logout}, Handler: mux}, nil
}
