package relay

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// bridge mirrors room traffic over redis pub/sub so several relay instances
// can serve the same document. Every locally accepted broadcast is published
// tagged with this instance's id; the subscriber drops its own publications
// and injects the rest into the hub as originless frames.
type bridge struct {
	hub        *Hub
	rdb        *redis.Client
	instanceID string
	jobs       chan publishJob

	mu   sync.Mutex
	subs map[string]context.CancelFunc
}

type publishJob struct {
	roomID string
	event  *ServerEvent
}

func newBridge(hub *Hub, cfg Config) *bridge {
	b := &bridge{
		hub: hub,
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}),
		instanceID: uuid.NewString(),
		jobs:       make(chan publishJob, 256),
		subs:       make(map[string]context.CancelFunc),
	}
	go b.publisherLoop()
	return b
}

// publish is called from the hub goroutine and must not block: the job is
// queued for the publisher loop, or dropped when redis cannot keep up.
func (b *bridge) publish(roomID string, ev *ServerEvent) {
	tagged := *ev
	tagged.Origin = b.instanceID

	select {
	case b.jobs <- publishJob{roomID: roomID, event: &tagged}:
	default:
		addDropped(1)
	}
}

// publisherLoop drains jobs in order, preserving per-sender ordering on the
// wire between instances.
func (b *bridge) publisherLoop() {
	for job := range b.jobs {
		data, err := json.Marshal(job.event)
		if err != nil {
			log.Printf("relay: bridge marshal: %v", err)
			continue
		}
		if err := b.rdb.Publish(context.Background(), roomChannel(job.roomID), data).Err(); err != nil {
			log.Printf("relay: bridge publish to %s: %v", job.roomID, err)
		}
	}
}

// subscribe starts mirroring a room the moment it opens locally. Called from
// the hub goroutine, which must never wait on the network: only the subs map
// is touched here, and the redis dial happens on a fresh goroutine. A stall
// in one room's subscription therefore cannot hold up traffic in any room.
func (b *bridge) subscribe(roomID string) {
	b.mu.Lock()
	if _, ok := b.subs[roomID]; ok {
		b.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.subs[roomID] = cancel
	b.mu.Unlock()

	go func() {
		ps := b.rdb.Subscribe(ctx, roomChannel(roomID))
		go func() {
			// Close aborts an in-flight dial as well as an established
			// subscription, so unsubscribe never waits on redis either.
			<-ctx.Done()
			ps.Close()
		}()

		for msg := range ps.Channel() {
			var ev ServerEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("relay: bridge unmarshal from %s: %v", roomID, err)
				continue
			}
			if ev.Origin == b.instanceID {
				continue
			}
			b.hub.Relay <- &Frame{
				Event:    ev.Event,
				RoomID:   ev.RoomID,
				Payload:  ev.Payload,
				CursorID: ev.CursorID,
			}
		}
		log.Printf("relay: bridge unsubscribed from room %s", roomID)
	}()
}

// unsubscribe stops mirroring once the last local member left the room.
func (b *bridge) unsubscribe(roomID string) {
	b.mu.Lock()
	cancel, ok := b.subs[roomID]
	if ok {
		delete(b.subs, roomID)
	}
	b.mu.Unlock()

	if ok {
		cancel()
	}
}

func roomChannel(roomID string) string {
	return "collab:room:" + roomID
}
