package relay

import (
	"log"
)

// Hub owns every piece of shared relay state: which connections exist, which
// room each one is in, and who is present where. A single goroutine runs the
// event loop, so none of the maps need locking; everything else talks to the
// hub through its channels.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	Join       chan joinRequest
	Relay      chan *Frame
	Stats      chan chan []RoomInfo

	clients  map[*Client]struct{}
	rooms    map[string]map[*Client]struct{}
	members  map[*Client]string
	presence *presenceTracker

	// Bridge hooks, wired by the handler when redis is configured. Called
	// from the hub goroutine; they must not block.
	publish    func(roomID string, ev *ServerEvent)
	roomOpened func(roomID string)
	roomClosed func(roomID string)
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Join:       make(chan joinRequest),
		Relay:      make(chan *Frame),
		Stats:      make(chan chan []RoomInfo),
		clients:    make(map[*Client]struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		members:    make(map[*Client]string),
		presence:   newPresenceTracker(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.handleRegister(client)

		case client := <-h.Unregister:
			h.handleUnregister(client)

		case req := <-h.Join:
			h.handleJoin(req.client, req.roomID)

		case frame := <-h.Relay:
			h.handleRelay(frame)

		case replyTo := <-h.Stats:
			replyTo <- h.roomInfos()
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	if _, ok := h.clients[client]; ok {
		return
	}
	h.clients[client] = struct{}{}
	incConnections()
}

func (h *Hub) handleUnregister(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	h.leaveRoom(client)
	delete(h.clients, client)
	close(client.Send)
	decConnections()
}

// handleJoin moves the client into roomID, leaving any previous room first.
// The joiner gets a room-joined snapshot; everyone else a presence update.
func (h *Hub) handleJoin(client *Client, roomID string) {
	if _, ok := h.clients[client]; !ok || roomID == "" {
		return
	}

	if current, ok := h.members[client]; ok {
		if current == roomID {
			h.presence.refresh(roomID, client.Collaborator.ID)
			h.deliver(client, h.joinedEvent(roomID))
			return
		}
		h.leaveRoom(client)
	}

	room, ok := h.rooms[roomID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[roomID] = room
		setRooms(len(h.rooms))
		if h.roomOpened != nil {
			h.roomOpened(roomID)
		}
	}
	room[client] = struct{}{}
	h.members[client] = roomID

	h.presence.track(roomID, client.Collaborator)
	h.deliver(client, h.joinedEvent(roomID))
	h.broadcastPresence(roomID, client)

	log.Printf("relay: %s joined room %s (%d members)", client.ID, roomID, len(room))
}

// leaveRoom removes the client from its current room, updates presence and
// garbage-collects the room when it empties. No-op for unjoined clients.
func (h *Hub) leaveRoom(client *Client) {
	roomID, ok := h.members[client]
	if !ok {
		return
	}

	delete(h.members, client)
	room := h.rooms[roomID]
	delete(room, client)

	removed := h.presence.untrack(roomID, client.Collaborator.ID)

	if len(room) == 0 {
		delete(h.rooms, roomID)
		setRooms(len(h.rooms))
		if h.roomClosed != nil {
			h.roomClosed(roomID)
		}
		log.Printf("relay: room %s removed", roomID)
		return
	}

	if removed {
		h.broadcastPresence(roomID, nil)
	}
}

// handleRelay fans the frame out to every room member except the sender.
// Frames for rooms the sender never joined are dropped without a reply.
func (h *Hub) handleRelay(frame *Frame) {
	room, ok := h.rooms[frame.RoomID]
	if !ok {
		addDropped(1)
		return
	}
	if frame.From != nil && h.members[frame.From] != frame.RoomID {
		addDropped(1)
		return
	}

	ev := &ServerEvent{
		Event:    frame.Event,
		RoomID:   frame.RoomID,
		Payload:  frame.Payload,
		CursorID: frame.CursorID,
	}

	delivered := 0
	for client := range room {
		if client == frame.From {
			continue
		}
		if h.deliver(client, ev) {
			delivered++
		}
	}
	if delivered > 0 {
		addDelivered(delivered)
	}
	switch frame.Event {
	case EventReceiveChanges:
		incEditsRelayed()
	case EventReceiveCursorMove:
		incCursorsRelayed()
	}

	// Locally originated frames also go out on the redis bridge so sibling
	// relay instances can reach their own members of the room.
	if frame.From != nil && h.publish != nil {
		h.publish(frame.RoomID, ev)
	}
}

// deliver enqueues without blocking. A full send buffer costs that recipient
// this one message; a dead peer is culled by its own transport close, not
// here, since cursor and presence traffic is lossy-tolerant anyway.
func (h *Hub) deliver(client *Client, ev *ServerEvent) bool {
	select {
	case client.Send <- ev:
		return true
	default:
		addDropped(1)
		return false
	}
}

func (h *Hub) broadcastPresence(roomID string, exclude *Client) {
	ev := &ServerEvent{
		Event:         EventPresenceChanged,
		RoomID:        roomID,
		Collaborators: h.presence.snapshot(roomID),
	}
	for client := range h.rooms[roomID] {
		if client == exclude {
			continue
		}
		h.deliver(client, ev)
	}
}

func (h *Hub) joinedEvent(roomID string) *ServerEvent {
	return &ServerEvent{
		Event:         EventRoomJoined,
		RoomID:        roomID,
		Collaborators: h.presence.snapshot(roomID),
	}
}

func (h *Hub) roomInfos() []RoomInfo {
	infos := make([]RoomInfo, 0, len(h.rooms))
	for id, room := range h.rooms {
		infos = append(infos, RoomInfo{ID: id, Members: len(room)})
	}
	return infos
}

// Rooms asks the hub goroutine for a membership snapshot. Safe to call from
// any goroutine while Run is active.
func (h *Hub) Rooms() []RoomInfo {
	replyTo := make(chan []RoomInfo, 1)
	h.Stats <- replyTo
	return <-replyTo
}
