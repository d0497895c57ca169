package relay

import (
	"encoding/json"
	"time"

	"collab-relay-backend/internal/identity"
)

type EventType string

// Client-emitted events. Names match the browser editor's socket protocol.
const (
	EventCreateRoom     EventType = "create-room"
	EventSendChanges    EventType = "send-changes"
	EventSendCursorMove EventType = "send-cursor-move"
)

// Relay-emitted events.
const (
	EventRoomJoined        EventType = "room-joined"
	EventReceiveChanges    EventType = "receive-changes"
	EventReceiveCursorMove EventType = "receive-cursor-move"
	EventPresenceChanged   EventType = "presence-changed"
)

// ClientEvent is the inbound websocket envelope. Payload carries the editor
// delta or cursor range and is never inspected by the relay.
type ClientEvent struct {
	Event    EventType       `json:"event"`
	RoomID   string          `json:"roomId"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	CursorID string          `json:"cursorId,omitempty"`
}

// ServerEvent is the outbound websocket envelope. Origin identifies the relay
// instance that first accepted the message; it is only set on the redis bridge
// so instances can skip their own publications.
type ServerEvent struct {
	Event         EventType       `json:"event"`
	RoomID        string          `json:"roomId"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	CursorID      string          `json:"cursorId,omitempty"`
	Collaborators []PresenceEntry `json:"collaborators,omitempty"`
	Origin        string          `json:"origin,omitempty"`
}

// PresenceEntry is one collaborator currently present in a room.
type PresenceEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	LastSeen time.Time `json:"lastSeen"`
}

// Frame is a message waiting for fan-out. From is nil when the frame was
// injected by the redis bridge rather than a local connection.
type Frame struct {
	From     *Client
	Event    EventType
	RoomID   string
	Payload  json.RawMessage
	CursorID string
}

type joinRequest struct {
	client *Client
	roomID string
}

type RoomInfo struct {
	ID      string `json:"id"`
	Members int    `json:"members"`
}

type Collaborator = identity.Collaborator
