package mcpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/service"
)

// NewHealthHandler answers the MCP host's /health and /api/health routes.
// Unlike the REST surface, a broken Keep session here is a 503 so container
// orchestrators restart or route around the process.
func NewHealthHandler(noteService service.INoteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected := noteService.Connected(r.Context())

		status := "healthy"
		code := http.StatusOK
		if !connected {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(dto.HealthResponse{
			Status:              status,
			Timestamp:           time.Now().UTC().Format(time.RFC3339),
			Service:             ServiceName,
			GoogleKeepConnected: connected,
			Version:             ServiceVersion,
		})
	}
}

// Mount assembles the MCP transport and health routes onto one mux.
func Mount(path string, noteService service.INoteService) *http.ServeMux {
	mux := http.NewServeMux()
	handler := NewHTTPHandler(noteService)
	mux.Handle(path, handler)
	mux.Handle(path+"/", handler)
	health := NewHealthHandler(noteService)
	mux.HandleFunc("/health", health)
	mux.HandleFunc("/api/health", health)
	return mux
}
