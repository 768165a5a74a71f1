package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLogsMethodAndPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/browser/nodes/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != "GET" || fields["path"] != "/browser/nodes/" || fields["request_id"] != "req-123" {
		t.Fatalf("fields = %v", fields)
	}
	if fields["status"] != int64(http.StatusNoContent) {
		t.Fatalf("status field = %v, want %d", fields["status"], http.StatusNoContent)
	}
}

func TestRequestLoggerCapturesImplicitStatusOKAndBytes(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/up", nil))
	fields := logs.All()[0].ContextMap()
	if fields["status"] != int64(http.StatusOK) {
		t.Fatalf("status field = %v, want 200", fields["status"])
	}
	if fields["bytes"] != int64(2) {
		t.Fatalf("bytes field = %v, want 2", fields["bytes"])
	}
	if _, ok := fields["latency"]; !ok {
		t.Fatalf("missing latency field: %v", fields)
	}
}

func TestMetricsObserveRequestsAndPluginFailures(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /browser/browser.css", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := m.Middleware()(mux)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/browser/browser.css", nil))

	if got := testutil.CollectAndCount(m.RequestDuration); got != 1 {
		t.Fatalf("request series = %d, want 1", got)
	}

	m.RecordPluginFailure("server", "css_snippets")
	m.RecordPluginFailure("server", "css_snippets")
	if got := testutil.ToFloat64(m.PluginFailures.WithLabelValues("server", "css_snippets")); got != 2 {
		t.Fatalf("plugin failures = %v, want 2", got)
	}

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "pgconsole_plugin_hook_failures_total") {
		t.Fatalf("metrics output missing plugin failure counter")
	}
	if !strings.Contains(rr.Body.String(), `route="GET /browser/browser.css"`) {
		t.Fatalf("metrics output missing route label")
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordPluginFailure("a", "b")
	rr := httptest.NewRecorder()
	m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusAccepted)
	}
}
