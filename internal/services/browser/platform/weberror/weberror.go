// Package weberror renders shared error responses for browser modules.
package weberror

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/i18n"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/templates"
)

// ShouldRenderPage reports whether status uses the full error page.
func ShouldRenderPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// WritePage writes the localized error document with statusCode.
func WritePage(w http.ResponseWriter, r *http.Request, statusCode int) {
	if w == nil {
		return
	}
	if !ShouldRenderPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, lang := i18n.ResolveLocalizer(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	page := templates.AppError(templates.ErrorPage{
		Lang:       lang,
		Loc:        loc,
		StatusCode: statusCode,
		BackURL:    routepath.BrowserIndex,
	})
	if err := page.Render(httpx.RequestContext(r), w); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError logs err and writes the response its kind maps to.
func WriteModuleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError && logger != nil {
		fields := []zap.Field{zap.Error(err)}
		if r != nil {
			fields = append(fields,
				zap.String("path", r.URL.Path),
				zap.String("request_id", r.Header.Get(httpx.RequestIDHeader)),
			)
		}
		logger.Error("request failed", fields...)
	}
	if ShouldRenderPage(statusCode) {
		WritePage(w, r, statusCode)
		return
	}
	loc, _ := i18n.ResolveLocalizer(w, r)
	message := http.StatusText(statusCode)
	if key := apperrors.LocalizationKey(err); key != "" {
		message = i18n.T(loc, key)
	}
	http.Error(w, message, statusCode)
}

// NotFound writes the 404 page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WritePage(w, r, http.StatusNotFound)
}
