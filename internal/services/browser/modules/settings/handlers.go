package settings

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/modulehandler"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleGet(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.RequirePrincipal(w, r)
	if !ok {
		return
	}
	value, err := h.service.get(r.Context(), principal.UserID, r.URL.Query().Get("setting"))
	if err != nil {
		h.writeEnvelopeError(w, r, err)
		return
	}
	if err := httpx.WriteEnvelope(w, value); err != nil {
		h.Logger().Warn("write setting", zap.Error(err))
	}
}

func (h handlers) handleStore(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.RequirePrincipal(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxValueBytes+4096)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	err := h.service.set(r.Context(), principal.UserID, r.PostFormValue("setting"), r.PostFormValue("value"))
	if err != nil {
		h.writeEnvelopeError(w, r, err)
		return
	}
	if err := httpx.WriteEnvelope(w, nil); err != nil {
		h.Logger().Warn("write setting", zap.Error(err))
	}
}

func (h handlers) writeEnvelopeError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		h.Logger().Error("settings request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get(httpx.RequestIDHeader)),
		)
	}
	if writeErr := httpx.WriteEnvelopeError(w, err); writeErr != nil {
		h.Logger().Warn("write settings error", zap.Error(writeErr))
	}
}
