// Package app composes browser feature modules into one root handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
	"github.com/pgconsole/pgconsole/internal/services/browser/module"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/httpx"
	"github.com/pgconsole/pgconsole/internal/services/browser/platform/requestmeta"
	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// Root receives the modules; nil starts a fresh mux.
	Root                *http.ServeMux
	ResolvePrincipal    module.ResolvePrincipal
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// Compose mounts module groups on a mux. Protected modules only see requests
// with a resolved principal, which they read back through requestctx.
func Compose(input ComposeInput) (*http.ServeMux, error) {
	root := input.Root
	if root == nil {
		root = http.NewServeMux()
	}
	if input.ResolvePrincipal == nil {
		input.ResolvePrincipal = func(*http.Request) (requestctx.Principal, bool) { return requestctx.Principal{}, false }
	}
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountModule(root, feature, seen, nil); err != nil {
			return nil, err
		}
	}

	protect := wrapProtectedModule(input.ResolvePrincipal, input.RequestSchemePolicy)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountModule(root, feature, seen, protect); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func mountModule(root *http.ServeMux, feature module.Module, seen map[string]string, wrap httpx.Middleware) error {
	mount, err := feature.Mount()
	if err != nil {
		return fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	patterns := append([]string(nil), mount.Paths...)
	if mount.Prefix != "" {
		if !strings.HasSuffix(mount.Prefix, "/") {
			return fmt.Errorf("mount module %q has invalid prefix %q: prefix must end with /", feature.ID(), mount.Prefix)
		}
		patterns = append(patterns, mount.Prefix)
	}
	if len(patterns) == 0 {
		return fmt.Errorf("mount module %q: prefix or paths are required", feature.ID())
	}

	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, pattern := range patterns {
		if err := validatePattern(pattern); err != nil {
			return fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), pattern, err)
		}
		if previous, ok := seen[pattern]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, previous)
		}
		seen[pattern] = feature.ID()
		root.Handle(pattern, handler)
	}
	return nil
}

func validatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(pattern) != pattern {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	return nil
}

// requireAuth redirects page loads to the login form and rejects other
// requests with 401.
func requireAuth(resolve module.ResolvePrincipal) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := resolve(r)
			if !ok {
				if r.Method == http.MethodGet || r.Method == http.MethodHead {
					httpx.WriteRedirect(w, r, routepath.LoginWithNext(r.URL.RequestURI()))
					return
				}
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithPrincipal(r.Context(), principal)))
		})
	}
}

func wrapProtectedModule(resolve module.ResolvePrincipal, policy requestmeta.SchemePolicy) httpx.Middleware {
	authWrap := requireAuth(resolve)
	csrfWrap := requireSameOriginMutation(policy)
	return func(next http.Handler) http.Handler {
		return authWrap(csrfWrap(next))
	}
}

func requireSameOriginMutation(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isMutationMethod(r) && !requestmeta.HasSameOriginProof(r, policy) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
