package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bkmar1192/FoundryLite/internal/gameclock"
	"github.com/bkmar1192/FoundryLite/internal/orchestrator"
	"github.com/bkmar1192/FoundryLite/internal/scene"
)

// APIHandler serves the JSON surface shared by the GM controller and the
// viewer pages. All mutations funnel into the orchestrator, which is also
// where the matching broadcasts originate.
type APIHandler struct {
	orch *orchestrator.Orchestrator
}

// NewAPIHandler creates the REST handler.
func NewAPIHandler(orch *orchestrator.Orchestrator) *APIHandler {
	return &APIHandler{orch: orch}
}

// HandleGetHash handles GET /hash.
func (h *APIHandler) HandleGetHash(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"hash": h.orch.Hash()})
}

type stateResponse struct {
	Hash string `json:"hash"`
	scene.SessionState
}

// HandleGetState handles GET /state.
func (h *APIHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	hash, st := h.orch.State()
	respondJSON(w, http.StatusOK, stateResponse{Hash: hash, SessionState: st})
}

type statePutRequest struct {
	Ops []scene.Op `json:"ops"`
}

// HandlePutState handles PUT /state: a batched, in-order fog-of-war
// mutation.
func (h *APIHandler) HandlePutState(w http.ResponseWriter, r *http.Request) {
	var req statePutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.orch.ApplyOps(req.Ops)
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleGetCombat handles GET /combat.
func (h *APIHandler) HandleGetCombat(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orch.Combat())
}

// HandleGetGrid handles GET /grid.
func (h *APIHandler) HandleGetGrid(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orch.Grid())
}

type gridPutRequest struct {
	Show bool `json:"show"`
}

// HandlePutGrid handles PUT /grid.
func (h *APIHandler) HandlePutGrid(w http.ResponseWriter, r *http.Request) {
	var req gridPutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.orch.SetGrid(req.Show)
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleGetConfig handles GET /config.
func (h *APIHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orch.Presentation())
}

type configPutResponse struct {
	OK     bool               `json:"ok"`
	Config scene.Presentation `json:"config"`
}

// HandlePutConfig handles PUT /config: a partial update where only the
// supplied keys change.
func (h *APIHandler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	var patch scene.PresentationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	cfg, err := h.orch.UpdatePresentation(patch)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, configPutResponse{OK: true, Config: cfg})
}

type clockResponse struct {
	ServerTime int64           `json:"serverTime"`
	Clock      gameclock.State `json:"clock"`
}

// HandleGetClock handles GET /clock.
func (h *APIHandler) HandleGetClock(w http.ResponseWriter, r *http.Request) {
	serverTime, state := h.orch.Clock()
	respondJSON(w, http.StatusOK, clockResponse{ServerTime: serverTime, Clock: state})
}

type clockPutRequest struct {
	Action string `json:"action"`
}

type clockPutResponse struct {
	OK         bool            `json:"ok"`
	Type       string          `json:"type"`
	ServerTime int64           `json:"serverTime"`
	Clock      gameclock.State `json:"clock"`
}

// HandlePutClock handles PUT /clock. Unknown actions get a 400 and leave
// the clock untouched.
func (h *APIHandler) HandlePutClock(w http.ResponseWriter, r *http.Request) {
	var req clockPutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	serverTime, state, err := h.orch.ApplyClockAction(req.Action)
	if err != nil {
		if errors.Is(err, gameclock.ErrUnknownAction) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "clock transition failed")
		return
	}
	respondJSON(w, http.StatusOK, clockPutResponse{
		OK:         true,
		Type:       "clock",
		ServerTime: serverTime,
		Clock:      state,
	})
}

// HandleGetClockPrefs handles GET /clockprefs.
func (h *APIHandler) HandleGetClockPrefs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orch.ClockPrefs())
}

type clockPrefsPutResponse struct {
	OK        bool `json:"ok"`
	ResetRuns bool `json:"resetRuns"`
}

// HandlePutClockPrefs handles PUT /clockprefs.
func (h *APIHandler) HandlePutClockPrefs(w http.ResponseWriter, r *http.Request) {
	var prefs gameclock.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p := h.orch.SetClockPrefs(prefs)
	respondJSON(w, http.StatusOK, clockPrefsPutResponse{OK: true, ResetRuns: p.ResetRuns})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
