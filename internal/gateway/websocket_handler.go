package gateway

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades viewer requests onto the broadcast channel.
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm}
}

// HandleViewerConnection handles WebSocket connections from GM and player
// pages. New viewers are expected to follow the upgrade with full GETs of
// state/config/grid/combat/clock to establish their baseline.
func (h *WebSocketHandler) HandleViewerConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.connectionManager.UpgradeConnection(w, r); err != nil {
		log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("failed to upgrade viewer connection")
		// Upgrade already wrote the HTTP error response.
		return
	}
}

// HandleConnectionStats returns statistics about active viewer connections.
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{
		"total_connections": h.connectionManager.ConnectionCount(),
	})
}
