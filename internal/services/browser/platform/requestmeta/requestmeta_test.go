package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "http://console.local/browser/", nil)
	if IsHTTPS(plain, SchemePolicy{}) {
		t.Fatal("plain request reported https")
	}

	forwarded := httptest.NewRequest(http.MethodGet, "/browser/", nil)
	forwarded.Header.Set("X-Forwarded-Proto", "https")
	if IsHTTPS(forwarded, SchemePolicy{}) {
		t.Fatal("forwarded proto trusted without policy")
	}
	if !IsHTTPS(forwarded, SchemePolicy{TrustForwardedProto: true}) {
		t.Fatal("forwarded proto ignored with policy")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/browser/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !IsHTTPS(tlsReq, SchemePolicy{}) {
		t.Fatal("tls request not https")
	}
}

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		origin  string
		referer string
		want    bool
	}{
		{name: "matching origin", origin: "http://console.local", want: true},
		{name: "matching origin explicit port", origin: "http://console.local:80", want: true},
		{name: "other host", origin: "http://evil.example", want: false},
		{name: "other scheme", origin: "https://console.local", want: false},
		{name: "referer fallback", referer: "http://console.local/browser/", want: true},
		{name: "no proof", want: false},
		{name: "garbage", origin: "::", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "http://console.local/settings/store", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			if got := HasSameOriginProof(req, SchemePolicy{}); got != tc.want {
				t.Fatalf("HasSameOriginProof() = %t, want %t", got, tc.want)
			}
		})
	}
}
