package modulehandler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
)

func TestRequirePrincipal(t *testing.T) {
	t.Parallel()

	base := NewBase(nil)
	rr := httptest.NewRecorder()
	if _, ok := base.RequirePrincipal(rr, httptest.NewRequest(http.MethodGet, "/browser/", nil)); ok {
		t.Fatal("expected missing principal")
	}
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest(http.MethodGet, "/browser/", nil)
	req = req.WithContext(requestctx.WithPrincipal(req.Context(), requestctx.Principal{UserID: "user-1", Email: "a@example.com"}))
	principal, ok := base.RequirePrincipal(httptest.NewRecorder(), req)
	if !ok || principal.Email != "a@example.com" {
		t.Fatalf("principal = %+v, ok = %t", principal, ok)
	}
}

func TestWriteComponentBuffersFailures(t *testing.T) {
	t.Parallel()

	base := NewBase(nil)
	failing := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<partial>")
		return errors.New("render failed")
	})
	rr := httptest.NewRecorder()
	base.WriteComponent(rr, httptest.NewRequest(http.MethodGet, "/browser/", nil), http.StatusOK, failing)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rr.Body.String(), "<partial>") {
		t.Fatalf("partial output leaked: %q", rr.Body.String())
	}

	ok := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>ok</p>")
		return err
	})
	rr = httptest.NewRecorder()
	base.WriteComponent(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, ok)
	if rr.Code != http.StatusCreated || rr.Body.String() != "<p>ok</p>" {
		t.Fatalf("response = %d %q", rr.Code, rr.Body.String())
	}
}
