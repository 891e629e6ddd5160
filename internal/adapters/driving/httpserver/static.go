package httpserver

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/custodia-labs/connect-cli/internal/core/services"
)

// envName builds the conventional environment variable name for a
// connector ("acme", "CLIENT_ID" -> "ACME_CLIENT_ID").
func envName(connector, suffix string) string {
	return services.EnvPrefix(connector) + "_" + suffix
}

// staticHandler serves the dashboard bundle: exact file matches first,
// then the SPA's index.html so client-side routing works on deep links.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if s.assets == nil {
			http.NotFound(w, r)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		if _, err := fs.Stat(s.assets, path); err != nil {
			// Unknown paths fall back to the SPA entry point.
			r.URL.Path = "/"
		}
		http.FileServerFS(s.assets).ServeHTTP(w, r)
	})
}
