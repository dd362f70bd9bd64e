package agent

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// WSHandler is the popup-facing end of the message channel. Requests come
// in over the socket; completions are broadcast to every connected popup,
// since the one that asked may have closed by the time the analysis lands.
type WSHandler struct {
	orch *Orchestrator

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func NewWSHandler() *WSHandler {
	return &WSHandler{conns: make(map[*websocket.Conn]bool)}
}

// Bind attaches the orchestrator after construction; the orchestrator needs
// Broadcast as its notify callback, so the two are wired in two steps.
func (h *WSHandler) Bind(orch *Orchestrator) {
	h.orch = orch
}

func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.conns, conn)
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		switch req.Type {
		case MessageTypeAnalyze:
			h.orch.Analyze(req.URL, req.Password)
		case MessageTypeForceReanalyze:
			h.orch.ForceReanalyze(req.URL, req.Password)
		default:
			log.Printf("agent: ignoring message of unknown type %q", req.Type)
		}
	}
}

// Broadcast delivers a completion to every connected popup.
func (h *WSHandler) Broadcast(c Completion) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(c); err != nil {
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}
