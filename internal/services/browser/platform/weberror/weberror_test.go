package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/pgconsole/pgconsole/internal/services/browser/platform/errors"
)

func TestWriteModuleErrorRendersPageForServerErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	req := httptest.NewRequest(http.MethodGet, "/browser/", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, zap.New(core), errors.New("plugin servergroup nodes: disk I/O"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("Content-Type = %q", got)
	}
	if strings.Contains(rr.Body.String(), "disk I/O") {
		t.Fatalf("internal error leaked into page: %s", rr.Body.String())
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("expected one error log entry")
	}
}

func TestWriteModuleErrorUsesLocalizedPlainTextForClientErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/login?lang=pt-BR", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, nil, apperrors.EK(apperrors.KindUnauthorized, "error.login.invalid", "bad credentials"))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rr.Body.String(), "Email ou senha incorretos.") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NotFound(rr, httptest.NewRequest(http.MethodGet, "/browser/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), "404 Not Found") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
