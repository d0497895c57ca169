package relay

import (
	"testing"
	"time"
)

// The hub calls roomOpened and roomClosed from its event loop, so the bridge
// must return from both without touching the network. 203.0.113.1 is a
// TEST-NET address that blackholes the dial, which is exactly the partition
// that used to stall every room behind a single subscription attempt.
func TestBridgeHooksReturnWithoutNetworkWait(t *testing.T) {
	hub := NewHub()
	b := newBridge(hub, Config{RedisAddr: "203.0.113.1:6379"})

	done := make(chan struct{})
	go func() {
		b.subscribe("doc-1")
		b.subscribe("doc-1") // duplicate is a no-op
		b.unsubscribe("doc-1")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("bridge hooks blocked on an unreachable redis endpoint")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) != 0 {
		t.Fatalf("expected no tracked subscriptions after unsubscribe, got %d", len(b.subs))
	}
}

func TestBridgeTracksOneSubscriptionPerRoom(t *testing.T) {
	hub := NewHub()
	b := newBridge(hub, Config{RedisAddr: "203.0.113.1:6379"})
	defer b.unsubscribe("doc-7")

	b.subscribe("doc-7")
	b.subscribe("doc-7")

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) != 1 {
		t.Fatalf("expected a single tracked subscription, got %d", len(b.subs))
	}
}
