package settings

import (
	"net/http"

	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SettingsStore, h.handleGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.SettingsStore, h.handleStore)
	mux.HandleFunc(http.MethodGet+" "+routepath.SettingsRest, h.WriteNotFound)
}
