package auth

import (
	"net/http"
	"strings"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/i18n"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/requestmeta"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/sessioncookie"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
	"github.com/pgconsole/pgconsole/internal/services/browser/templates"
)

type handlers struct {
	modulehandler.Base
	service service
	policy  requestmeta.SchemePolicy
}

func newHandlers(s service, base modulehandler.Base, policy requestmeta.SchemePolicy) handlers {
	return handlers{Base: base, service: s, policy: policy}
}

func (h handlers) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, routepath.SafeNext(r.URL.Query().Get("next")), "", "")
}

func (h handlers) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, h.policy) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "failed to parse login form"))
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	next := routepath.SafeNext(r.PostFormValue("next"))

	result, err := h.service.signIn(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		status := apperrors.HTTPStatus(err)
		if status != http.StatusBadRequest && status != http.StatusUnauthorized {
			h.WriteError(w, r, err)
			return
		}
		loc, _ := h.PageLocalizer(w, r)
		h.renderLogin(w, r, status, next, email, i18n.T(loc, apperrors.LocalizationKey(err)))
		return
	}

	sessioncookie.Write(w, r, result.Token, result.TTL, h.policy)
	if next == "" {
		next = routepath.BrowserIndex
	}
	httpx.WriteRedirect(w, r, next)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !requestmeta.HasSameOriginProof(r, h.policy) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	sessioncookie.Clear(w, r, h.policy)
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, next, email, errorText string) {
	loc, lang := h.PageLocalizer(w, r)
	h.WriteComponent(w, r, status, templates.Login(templates.LoginPage{
		Lang:      lang,
		Loc:       loc,
		Action:    routepath.Login,
		Next:      next,
		Email:     email,
		ErrorText: errorText,
	}))
}
