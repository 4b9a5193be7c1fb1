package gateway

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/bkmar1192/FoundryLite/internal/orchestrator"
)

// Service bundles the REST surface and the WebSocket broadcast channel
// behind one route registration.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	api               *APIHandler
}

// NewService creates the gateway over the given orchestrator.
func NewService(config ConnectionConfig, orch *orchestrator.Orchestrator) *Service {
	return NewServiceWithHub(NewConnectionManager(config), orch)
}

// NewServiceWithHub builds the gateway around an existing hub. The hub is
// created ahead of the orchestrator at wiring time so broadcasts and the
// REST surface share one connection set.
func NewServiceWithHub(cm *ConnectionManager, orch *orchestrator.Orchestrator) *Service {
	return &Service{
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm),
		api:               NewAPIHandler(orch),
	}
}

// ConnectionManager exposes the hub so the orchestrator can broadcast
// through it.
func (s *Service) ConnectionManager() *ConnectionManager {
	return s.connectionManager
}

// Start runs the broadcast fan-out until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.connectionManager.Start(ctx)
}

// RegisterRoutes mounts the JSON API and the WebSocket endpoint on the
// given router. The caller mounts the router under the public base path
// and adds static serving of the scene directory alongside.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/hash", s.api.HandleGetHash)
	r.Get("/state", s.api.HandleGetState)
	r.Put("/state", s.api.HandlePutState)
	r.Get("/combat", s.api.HandleGetCombat)
	r.Get("/grid", s.api.HandleGetGrid)
	r.Put("/grid", s.api.HandlePutGrid)
	r.Get("/config", s.api.HandleGetConfig)
	r.Put("/config", s.api.HandlePutConfig)
	r.Get("/clock", s.api.HandleGetClock)
	r.Put("/clock", s.api.HandlePutClock)
	r.Get("/clockprefs", s.api.HandleGetClockPrefs)
	r.Put("/clockprefs", s.api.HandlePutClockPrefs)

	r.Get("/ws", s.wsHandler.HandleViewerConnection)
	r.Get("/ws/stats", s.wsHandler.HandleConnectionStats)

	log.Info().Msg("gateway routes registered")
}
