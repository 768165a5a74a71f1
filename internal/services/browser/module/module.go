// Package module defines the feature contract used by browser composition.
package module

import (
	"net/http"

	"github.com/pgconsole/pgconsole/internal/platform/requestctx"
)

// ResolvePrincipal resolves the signed-in user for a request.
type ResolvePrincipal func(*http.Request) (requestctx.Principal, bool)

// Mount describes a module route mount. Prefix mounts a subtree and must end
// with "/"; Paths mounts exact paths. At least one is required.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by browser composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
