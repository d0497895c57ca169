package endpoints

import (
	"fmt"
	"net/http"

	"collab-relay-backend/internal/relay"
)

type RelayEndpoints interface {
	Join(http.ResponseWriter, *http.Request) error
	Rooms(http.ResponseWriter, *http.Request) error
}

type relayEndpoints struct {
	handler *relay.Handler
}

func NewRelayEndpoints(handler *relay.Handler) RelayEndpoints {
	return &relayEndpoints{handler: handler}
}

// Join upgrades to a websocket; everything after the upgrade is the relay's
// business, so errors surface on the socket rather than as HTTP responses.
func (h *relayEndpoints) Join(w http.ResponseWriter, r *http.Request) error {
	if h.handler == nil {
		return &HTTPError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Relay not available",
			ErrorLog:   fmt.Errorf("relay handler not configured"),
		}
	}
	h.handler.ServeWS(w, r)
	return nil
}

func (h *relayEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	if h.handler == nil {
		return &HTTPError{
			StatusCode: http.StatusServiceUnavailable,
			Message:    "Relay not available",
			ErrorLog:   fmt.Errorf("relay handler not configured"),
		}
	}
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) error {
			h.handler.GetRooms(w, r)
			return nil
		},
	})
}
