package relay

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"collab-relay-backend/internal/identity"
)

// Client is one live websocket connection. Room membership lives in the hub,
// not here; the client only knows who it is and how to reach its peer.
type Client struct {
	ID           string
	Collaborator identity.Collaborator
	Conn         *websocket.Conn
	Send         chan *ServerEvent

	done     chan struct{} // signal for coordinating goroutine shutdown
	mu       sync.Mutex    // guards Conn writes and isClosed
	isClosed bool
}

func newClient(conn *websocket.Conn, id string, collaborator identity.Collaborator) *Client {
	return &Client{
		ID:           id,
		Collaborator: collaborator,
		Conn:         conn,
		Send:         make(chan *ServerEvent, 32),
		done:         make(chan struct{}),
	}
}

// keepAlive pings the peer so gorilla surfaces dead transports as read
// errors. The relay has no liveness state of its own; this is purely a
// transport-level reliability aid.
func (cl *Client) keepAlive() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-cl.done:
			return
		case <-ticker.C:
			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteMessage(websocket.PingMessage, nil)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("relay: ping error for connection %s: %v", cl.ID, err)
				return
			}
		}
	}
}

// writePump drains the send channel onto the wire. One goroutine per
// connection, so per-sender ordering survives the hop to each recipient.
func (cl *Client) writePump() {
	defer func() {
		cl.mu.Lock()
		cl.isClosed = true
		cl.Conn.Close()
		cl.mu.Unlock()
	}()

	for {
		select {
		case <-cl.done:
			return
		case ev, ok := <-cl.Send:
			if !ok {
				return
			}

			cl.mu.Lock()
			if cl.isClosed {
				cl.mu.Unlock()
				return
			}
			err := cl.Conn.WriteJSON(ev)
			cl.mu.Unlock()

			if err != nil {
				log.Printf("relay: write error for connection %s: %v", cl.ID, err)
				return
			}
		}
	}
}

// readPump parses inbound envelopes and dispatches them to the hub. It owns
// the disconnect path: any read error, graceful or not, runs the same leave
// sequence via Unregister.
func (cl *Client) readPump(hub *Hub) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("relay: recovered from panic in readPump: %v", r)
		}

		close(cl.done)
		hub.Unregister <- cl
		log.Printf("relay: connection %s disconnected", cl.ID)
	}()

	cl.Conn.SetReadLimit(512 * 1024)

	for {
		_, raw, err := cl.Conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("relay: read error for connection %s: %v", cl.ID, err)
			break
		}

		var ev ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("relay: malformed event from connection %s: %v", cl.ID, err)
			continue
		}

		switch ev.Event {
		case EventCreateRoom:
			hub.Join <- joinRequest{client: cl, roomID: ev.RoomID}

		case EventSendChanges:
			hub.Relay <- &Frame{
				From:    cl,
				Event:   EventReceiveChanges,
				RoomID:  ev.RoomID,
				Payload: ev.Payload,
			}

		case EventSendCursorMove:
			hub.Relay <- &Frame{
				From:     cl,
				Event:    EventReceiveCursorMove,
				RoomID:   ev.RoomID,
				Payload:  ev.Payload,
				CursorID: ev.CursorID,
			}

		default:
			log.Printf("relay: unknown event %q from connection %s", ev.Event, cl.ID)
		}
	}
}
