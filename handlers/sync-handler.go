package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"tlux-project/microservices/dashboard-service/logging"
	"tlux-project/microservices/dashboard-service/repositories"

	"github.com/gorilla/websocket"
)

var syncUpgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// SyncHandler gura obaveštenja o promeni deljenog stanja ka otvorenim
// tabovima preko websocketa, kao zamena za storage event u pregledaču.
type SyncHandler struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewSyncHandler() *SyncHandler {
	return &SyncHandler{conns: make(map[*websocket.Conn]bool)}
}

// Feed drži websocket konekciju otvorenom i isporučuje događaje do prekida.
func (h *SyncHandler) Feed(w http.ResponseWriter, r *http.Request) {
	conn, err := syncUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger.Errorf("Event ID: SYNC_UPGRADE_FAILED, Description: Websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Klijent ništa ne šalje; read petlja samo detektuje zatvaranje.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// BroadcastEvent šalje {key, newValue} svim povezanim klijentima.
func (h *SyncHandler) BroadcastEvent(event repositories.StateEvent) {
	payload, err := json.Marshal(struct {
		Key      string          `json:"key"`
		NewValue json.RawMessage `json:"newValue"`
	}{Key: event.Key, NewValue: event.NewValue})
	if err != nil {
		logging.Logger.Errorf("Event ID: SYNC_ENCODE_FAILED, Description: Failed to encode sync event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}
