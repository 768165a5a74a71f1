// Package modulehandler provides a composable base for browser module
// handlers: principal lookup, localization, buffered rendering and error
// responses.
package modulehandler

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/i18n"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/weberror"
	"github.com/pgconsole/pgconsole/internal/services/browser/templates"
)

// Base carries shared request helpers. Embed it in module handler structs.
type Base struct {
	logger *zap.Logger
}

// NewBase builds a handler base that logs server errors to logger.
func NewBase(logger *zap.Logger) Base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Base{logger: logger}
}

// Logger returns the handler logger.
func (b Base) Logger() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

// RequestPrincipal returns the signed-in user placed on the request by the
// protected-module wrapper.
func (b Base) RequestPrincipal(r *http.Request) (requestctx.Principal, bool) {
	return requestctx.PrincipalFromContext(httpx.RequestContext(r))
}

// RequirePrincipal returns the request principal or writes 401.
func (b Base) RequirePrincipal(w http.ResponseWriter, r *http.Request) (requestctx.Principal, bool) {
	principal, ok := b.RequestPrincipal(r)
	if !ok {
		b.WriteError(w, r, apperrors.E(apperrors.KindUnauthorized, "sign-in required"))
	}
	return principal, ok
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (templates.Localizer, string) {
	return i18n.ResolveLocalizer(w, r)
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, b.Logger(), err)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.NotFound(w, r)
}

// WriteComponent renders component into a buffer and writes it with
// statusCode, so a render failure still produces a clean error response.
func (b Base) WriteComponent(w http.ResponseWriter, r *http.Request, statusCode int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		b.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteHTML(w, statusCode, buf.String()); err != nil {
		b.Logger().Warn("write response", zap.Error(err))
	}
}
