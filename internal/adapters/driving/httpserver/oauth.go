package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/logger"
)

// handleOAuthStart begins the authorization flow for a connector. This is
// a browser-navigated endpoint: outcomes are HTML pages or a redirect to
// the provider, never JSON.
func (s *Server) handleOAuthStart(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := domain.ValidateConnectorName(name); err != nil {
		s.renderPage(w, http.StatusBadRequest, errorPage("Invalid connector name", name, ""))
		return
	}

	redirectURI := fmt.Sprintf("%s/oauth/%s/callback", s.BaseURL(), name)
	authURL, err := s.oauth.StartFlow(r.Context(), name, redirectURI)
	if err != nil {
		if errors.Is(err, domain.ErrOAuthNotConfigured) {
			// An expected setup gap, not a failure: explain what is
			// missing instead of redirecting anywhere.
			s.renderPage(w, http.StatusOK, explainerPage(name))
			return
		}
		s.renderPage(w, http.StatusInternalServerError, errorPage("Could not start authorization", name, err.Error()))
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// handleOAuthCallback receives the provider redirect. A provider-reported
// error renders directly without invoking the exchange.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := domain.ValidateConnectorName(name); err != nil {
		s.renderPage(w, http.StatusBadRequest, errorPage("Invalid connector name", name, ""))
		return
	}

	query := r.URL.Query()
	if errParam := query.Get("error"); errParam != "" {
		detail := query.Get("error_description")
		if detail == "" {
			detail = errParam
		}
		s.renderPage(w, http.StatusOK, errorPage("Authorization failed", name, detail))
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		s.renderPage(w, http.StatusBadRequest, errorPage("Authorization failed", name, "missing code or state parameter"))
		return
	}

	if _, err := s.oauth.HandleCallback(r.Context(), name, code, state); err != nil {
		logger.Warn("oauth callback for %s: %v", name, err)
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidState) {
			status = http.StatusBadRequest
		}
		s.renderPage(w, status, errorPage("Authorization failed", name, err.Error()))
		return
	}

	s.renderPage(w, http.StatusOK, successPage(name))
}

func (s *Server) renderPage(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
