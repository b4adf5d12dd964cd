package http

import (
	"io"
	"net/http"

	"github.com/cleitonmarx/symbiont-tool-gateway/internal/adapters/inbound/rpc"
)

// handleRPC serves one envelope per request. Each request gets a short-lived session.
func (s ToolGatewayServer) handleRPC(dispatcher rpc.Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if err != nil {
			respondJSON(w, http.StatusOK, rpc.ErrorResponse(nil, rpc.NewError(rpc.CodeInvalidRequest, "failed to read request body")))
			return
		}

		ac, authErr := s.resolveAuth(r)
		session := rpc.NewSession(ac, authErr, s.TimeProvider.Now())
		defer session.Close()

		resp := dispatcher.Handle(r.Context(), session, body)
		respondJSON(w, http.StatusOK, resp)
	}
}
