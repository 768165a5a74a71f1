package browser

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/pgconsole/pgconsole/internal/services/browser/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers, staticFS fs.FS) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.BrowserIndex+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.BrowserJS, h.handleScript)
	mux.HandleFunc(http.MethodGet+" "+routepath.BrowserCSS, h.handleStylesheet)
	mux.HandleFunc(http.MethodGet+" "+routepath.BrowserNodes+"{$}", h.handleNodes)
	if staticFS != nil {
		mux.Handle(http.MethodGet+" "+routepath.BrowserStaticPrefix,
			http.StripPrefix(strings.TrimSuffix(routepath.BrowserStaticPrefix, "/"), http.FileServerFS(staticFS)))
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.BrowserRest, h.WriteNotFound)
}
