package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"collab-relay-backend/internal/identity"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Config struct {
	RedisAddr     string // empty disables the cross-instance bridge
	RedisPassword string
	TokenSecret   string
}

// Handler is the process-wide relay service: the hub, its event loop and the
// optional redis bridge.
type Handler struct {
	hub    *Hub
	bridge *bridge
	secret string
}

var (
	initMu   sync.Mutex
	instance *Handler
)

// Init constructs the relay exactly once per process and starts its event
// loop. Later calls return the existing instance regardless of cfg; callers
// hold the returned reference instead of re-fetching shared state.
func Init(cfg Config) *Handler {
	initMu.Lock()
	defer initMu.Unlock()

	if instance != nil {
		return instance
	}

	h := &Handler{
		hub:    NewHub(),
		secret: cfg.TokenSecret,
	}
	if cfg.RedisAddr != "" {
		h.bridge = newBridge(h.hub, cfg)
		h.hub.publish = h.bridge.publish
		h.hub.roomOpened = h.bridge.subscribe
		h.hub.roomClosed = h.bridge.unsubscribe
	}

	go h.hub.Run()
	instance = h
	return h
}

func Initialized() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return instance != nil
}

// NewHandler builds an unshared relay around an externally-run hub. Used by
// tests; production code goes through Init.
func NewHandler(hub *Hub, secret string) *Handler {
	return &Handler{hub: hub, secret: secret}
}

// ServeWS upgrades the request and hands the connection to the hub. The
// collaborator token is read from the query string since browsers cannot set
// headers on websocket dials; a missing or invalid token degrades to a guest
// identity rather than rejecting the transport.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	connID := uuid.NewString()

	collaborator, err := identity.ParseToken(r.URL.Query().Get("token"), h.secret)
	if err != nil {
		collaborator = identity.Collaborator{
			ID:   "guest-" + connID[:8],
			Name: "Guest",
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	client := newClient(conn, connID, collaborator)
	h.hub.Register <- client

	go client.keepAlive()
	go client.writePump()
	go client.readPump(h.hub)

	log.Printf("relay: connection %s opened for collaborator %s", connID, collaborator.ID)
}

// GetRooms reports the active rooms and their member counts.
func (h *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(h.hub.Rooms())
}
