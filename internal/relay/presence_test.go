package relay

import (
	"testing"

	"collab-relay-backend/internal/identity"
)

func TestPresenceTrackAndSnapshot(t *testing.T) {
	p := newPresenceTracker()

	if isNew := p.track("doc-1", identity.Collaborator{ID: "u2", Name: "Beth"}); !isNew {
		t.Fatal("first track should report a new entry")
	}
	p.track("doc-1", identity.Collaborator{ID: "u1", Email: "ada@example.com"})

	snap := p.snapshot("doc-1")
	if len(snap) != 2 {
		t.Fatalf("snapshot has %d entries, want 2", len(snap))
	}
	if snap[0].ID != "u1" || snap[1].ID != "u2" {
		t.Fatalf("snapshot not sorted by id: %s, %s", snap[0].ID, snap[1].ID)
	}
	if snap[0].Name != "ada" {
		t.Fatalf("display label %q, want email local part", snap[0].Name)
	}
	if snap[0].LastSeen.IsZero() {
		t.Fatal("last-seen timestamp not set")
	}
}

func TestPresenceSecondConnectionSameCollaborator(t *testing.T) {
	p := newPresenceTracker()
	ada := identity.Collaborator{ID: "u1", Name: "Ada"}

	p.track("doc-1", ada)
	if isNew := p.track("doc-1", ada); isNew {
		t.Fatal("second connection must not create a second entry")
	}
	if len(p.snapshot("doc-1")) != 1 {
		t.Fatal("collaborator listed more than once")
	}

	if removed := p.untrack("doc-1", "u1"); removed {
		t.Fatal("entry removed while a connection remains")
	}
	if removed := p.untrack("doc-1", "u1"); !removed {
		t.Fatal("entry should go away with the last connection")
	}
	if len(p.snapshot("doc-1")) != 0 {
		t.Fatal("snapshot still lists a departed collaborator")
	}
}

func TestPresenceUntrackUnknownIsNoop(t *testing.T) {
	p := newPresenceTracker()
	if removed := p.untrack("doc-1", "ghost"); removed {
		t.Fatal("untracking an unknown collaborator should be a no-op")
	}
}

func TestPresenceRoomsAreIndependent(t *testing.T) {
	p := newPresenceTracker()
	p.track("doc-1", identity.Collaborator{ID: "u1"})
	p.track("doc-2", identity.Collaborator{ID: "u2"})

	p.untrack("doc-1", "u1")

	if len(p.snapshot("doc-1")) != 0 {
		t.Fatal("doc-1 should be empty")
	}
	if len(p.snapshot("doc-2")) != 1 {
		t.Fatal("doc-2 lost an entry it should have kept")
	}
}

func TestCollaboratorColorDeterministic(t *testing.T) {
	first := collaboratorColor("u1")
	if first != collaboratorColor("u1") {
		t.Fatal("color must be stable for the same collaborator id")
	}
	found := false
	for _, c := range cursorPalette {
		if c == first {
			found = true
		}
	}
	if !found {
		t.Fatalf("color %q not from the palette", first)
	}
}
