package browser

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.RequirePrincipal(w, r)
	if !ok {
		return
	}
	loc, lang := h.PageLocalizer(w, r)
	page, err := h.service.indexPage(r.Context(), principal, loc)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	page.Lang = lang
	h.WriteComponent(w, r, http.StatusOK, templates.BrowserIndex(page))
}

func (h handlers) handleScript(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.RequirePrincipal(w, r)
	if !ok {
		return
	}
	body, err := h.service.script(r.Context(), principal.UserID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteJavaScript(w, body); err != nil {
		h.Logger().Warn("write browser.js", zap.Error(err))
	}
}

func (h handlers) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.stylesheet(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteCSS(w, body); err != nil {
		h.Logger().Warn("write browser.css", zap.Error(err))
	}
}

func (h handlers) handleNodes(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.service.nodes(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteEnvelope(w, nodes); err != nil {
		h.Logger().Warn("write nodes", zap.Error(err))
	}
}
