package auth

import (
	"net/http"

	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLoginPost)
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
}
