package publish

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/gorilla/websocket"

	"github.com/mappin-app/mappin/pkg/domain"
)

const (
	liveBuffer     = 16
	liveWriteWait  = 10 * time.Second
	livePingPeriod = 30 * time.Second
)

// LiveHub pushes stored conflicts to websocket subscribers of the map.
// Slow subscribers that fill their buffer miss messages, they never block ingestion.
type LiveHub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[chan ConflictMessage]struct{}
	now     func() time.Time
}

// NewLiveHub makes a hub. Empty origins allow same-host requests only, "*" allows any.
func NewLiveHub(origins []string) *LiveHub {
	h := &LiveHub{clients: make(map[chan ConflictMessage]struct{}), now: time.Now}
	h.upgrader = websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	if len(origins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
		}
	}
	return h
}

// Notify sends the conflict to every connected subscriber
func (h *LiveHub) Notify(_ context.Context, c domain.Conflict) error {
	msg := ConflictMessage{Action: ActionCreate, Conflict: c, Timestamp: h.now().UTC()}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
			log.Printf("[DEBUG] live subscriber is slow, conflict %d dropped", c.ID)
		}
	}
	return nil
}

// Clients returns number of connected subscribers
func (h *LiveHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams messages until the client goes away
func (h *LiveHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WARN] can't upgrade live connection from %s: %v", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// reader detects close frames and dead peers
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(livePingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case msg := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("[DEBUG] live write to %s failed: %v", r.RemoteAddr, err)
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *LiveHub) subscribe() chan ConflictMessage {
	ch := make(chan ConflictMessage, liveBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *LiveHub) unsubscribe(ch chan ConflictMessage) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}
