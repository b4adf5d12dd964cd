package http

import (
	"errors"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
)

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s ToolGatewayServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.GetStatus.Query(r.Context()))
}

// handleToolMetrics returns every tool's counters, or one tool's with ?tool=.
func (s ToolGatewayServer) handleToolMetrics(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("tool"); name != "" {
		m, ok := s.Metrics.ToolSnapshot(name)
		if !ok {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "no metrics recorded for tool "+name)
			return
		}
		respondJSON(w, http.StatusOK, m)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tools": s.Metrics.Snapshot()})
}

func (s ToolGatewayServer) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")
	deleted, err := s.InvalidateCache.Execute(r.Context(), pattern)
	if err != nil {
		var validationErr *domain.ValidationErr
		if errors.As(err, &validationErr) {
			respondError(w, http.StatusBadRequest, "BAD_REQUEST", validationErr.Error())
			return
		}
		s.Logger.Printf("ToolGatewayServer: cache invalidation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to invalidate cache")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": deleted, "pattern": pattern})
}
