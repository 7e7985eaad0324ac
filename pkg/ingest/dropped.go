package ingest

import (
	"container/list"
	"sync"
	"time"
)

// droppedCache is a TTL-bound LRU of links rejected by extraction in recent
// batches. It only saves extraction calls, a miss never changes results.
type droppedCache struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	ll    *list.List               // most-recent at front
	items map[string]*list.Element // key -> element
	now   func() time.Time
}

type droppedEntry struct {
	key string
	exp time.Time
}

func newDroppedCache(maxKeys int, ttl time.Duration) *droppedCache {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &droppedCache{cap: maxKeys, ttl: ttl, ll: list.New(), items: make(map[string]*list.Element), now: time.Now}
}

// Seen reports whether key was marked and has not expired
func (d *droppedCache) Seen(key string) bool {
	if d == nil || d.ttl <= 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.items[key]
	if !ok {
		return false
	}
	if d.now().Before(el.Value.(droppedEntry).exp) {
		d.ll.MoveToFront(el)
		return true
	}
	d.ll.Remove(el)
	delete(d.items, key)
	return false
}

// Mark remembers key for the cache TTL
func (d *droppedCache) Mark(key string) {
	if d == nil || d.ttl <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	exp := d.now().Add(d.ttl)
	if el, ok := d.items[key]; ok {
		el.Value = droppedEntry{key: key, exp: exp}
		d.ll.MoveToFront(el)
		return
	}
	d.items[key] = d.ll.PushFront(droppedEntry{key: key, exp: exp})

	// evict over capacity, then expired entries at the tail
	for d.ll.Len() > d.cap {
		d.removeTail()
	}
	for t := d.ll.Back(); t != nil && !d.now().Before(t.Value.(droppedEntry).exp); t = d.ll.Back() {
		d.removeTail()
	}
}

// Len returns number of entries, expired ones included
func (d *droppedCache) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ll.Len()
}

func (d *droppedCache) removeTail() {
	t := d.ll.Back()
	if t == nil {
		return
	}
	d.ll.Remove(t)
	delete(d.items, t.Value.(droppedEntry).key)
}
