package relay

import (
	"hash/fnv"
	"sort"
	"time"
)

// Remote-cursor colors. The original app rolled a random hex color on every
// client, so two browsers could paint the same collaborator differently;
// deriving the color from the collaborator id keeps it stable everywhere.
var cursorPalette = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
	"#008080", "#e6beff", "#9a6324", "#800000", "#aaffc3",
}

func collaboratorColor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return cursorPalette[h.Sum32()%uint32(len(cursorPalette))]
}

type presenceRecord struct {
	entry PresenceEntry
	conns int
}

// presenceTracker keeps the live collaborator list per room. It is owned by
// the hub goroutine and must never be touched from anywhere else.
type presenceTracker struct {
	rooms map[string]map[string]*presenceRecord
}

func newPresenceTracker() *presenceTracker {
	return &presenceTracker{
		rooms: make(map[string]map[string]*presenceRecord),
	}
}

// track records one more connection for the collaborator in the room and
// refreshes the last-seen timestamp. Returns true when the collaborator was
// not present before.
func (p *presenceTracker) track(roomID string, c Collaborator) bool {
	room, ok := p.rooms[roomID]
	if !ok {
		room = make(map[string]*presenceRecord)
		p.rooms[roomID] = room
	}

	rec, ok := room[c.ID]
	if ok {
		rec.conns++
		rec.entry.LastSeen = time.Now()
		return false
	}

	room[c.ID] = &presenceRecord{
		entry: PresenceEntry{
			ID:       c.ID,
			Name:     c.DisplayLabel(),
			Color:    collaboratorColor(c.ID),
			LastSeen: time.Now(),
		},
		conns: 1,
	}
	return true
}

// refresh bumps the last-seen timestamp without counting a new connection,
// for idempotent re-joins of a room the connection is already in.
func (p *presenceTracker) refresh(roomID, collaboratorID string) {
	if rec, ok := p.rooms[roomID][collaboratorID]; ok {
		rec.entry.LastSeen = time.Now()
	}
}

// untrack drops one connection's contribution. The entry goes away with the
// collaborator's last connection. Returns true when the entry was removed.
func (p *presenceTracker) untrack(roomID, collaboratorID string) bool {
	room, ok := p.rooms[roomID]
	if !ok {
		return false
	}

	rec, ok := room[collaboratorID]
	if !ok {
		return false
	}

	rec.conns--
	if rec.conns > 0 {
		return false
	}

	delete(room, collaboratorID)
	if len(room) == 0 {
		delete(p.rooms, roomID)
	}
	return true
}

// snapshot returns the room's presence list sorted by collaborator id, so
// late joiners and presence-changed broadcasts see a stable order.
func (p *presenceTracker) snapshot(roomID string) []PresenceEntry {
	room := p.rooms[roomID]
	entries := make([]PresenceEntry, 0, len(room))
	for _, rec := range room {
		entries = append(entries, rec.entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}
