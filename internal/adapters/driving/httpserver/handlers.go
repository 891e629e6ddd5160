package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
)

func (s *Server) handleListConnectors(w http.ResponseWriter, r *http.Request) {
	connectors, err := s.status.ListConnectors(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, connectors)
}

func (s *Server) handleGetConnector(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	// Validated before any lookup: a read path, but still no reason to let
	// traversal-shaped names deeper into the system.
	if err := domain.ValidateConnectorName(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid connector name")
		return
	}

	connector, err := s.status.GetConnector(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "unknown connector: "+name)
			return
		}
		s.writeError(w, httpStatusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, connector)
}

// saveKeyRequest is the POST /api/connectors/{name}/key body.
type saveKeyRequest struct {
	Key   string `json:"key"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleSaveKey(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := domain.ValidateConnectorName(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid connector name")
		return
	}

	if r.ContentLength > maxBodyBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req saveKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.Key == "" {
		s.writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := s.creds.SaveKey(r.Context(), name, req.Field, req.Key); err != nil {
		s.writeError(w, httpStatusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleClearKey(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := domain.ValidateConnectorName(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid connector name")
		return
	}
	if err := s.creds.Clear(r.Context(), name); err != nil {
		s.writeError(w, httpStatusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := domain.ValidateConnectorName(name); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid connector name")
		return
	}

	result, err := s.oauth.Refresh(r.Context(), name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
		s.writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true, "expiresAt": result.ExpiresAt})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		s.writeJSON(w, http.StatusOK, []domain.AuthEvent{})
		return
	}

	connector := r.URL.Query().Get("connector")
	if connector != "" {
		if err := domain.ValidateConnectorName(connector); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid connector name")
			return
		}
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	events, err := s.events.List(r.Context(), connector, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []domain.AuthEvent{}
	}
	s.writeJSON(w, http.StatusOK, events)
}
