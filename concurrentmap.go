package interact3d

import "sync"

// concurrentTouchMap is a sync.RWMutex-guarded map[int32]*IntersectionPoint.
// Element.hovering/hitting/touching are each one of these: the hit-test
// phase writes one entry per touch concurrently across goroutines, while
// the element phase reads and prunes them from a different goroutine per
// element. No library in the reference pack vendors a concurrent-map type,
// so a fine-grained per-map lock is the idiomatic minimal answer (§9).
type concurrentTouchMap struct {
	mu sync.RWMutex
	m  map[int32]*IntersectionPoint
}

func newConcurrentTouchMap() *concurrentTouchMap {
	return &concurrentTouchMap{m: make(map[int32]*IntersectionPoint)}
}

func (c *concurrentTouchMap) Get(id int32) (*IntersectionPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ip, ok := c.m[id]
	return ip, ok
}

func (c *concurrentTouchMap) Set(id int32, ip *IntersectionPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = ip
}

func (c *concurrentTouchMap) Delete(id int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, id)
}

func (c *concurrentTouchMap) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Clear empties the map in place, reusing the backing map.
func (c *concurrentTouchMap) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		delete(c.m, k)
	}
}

// Snapshot returns a shallow copy safe for the caller to range over without
// holding the lock; used by exposed observables (§6) and by behaviors that
// need a stable view of hitting/touching for the duration of one Behave call.
func (c *concurrentTouchMap) Snapshot() map[int32]*IntersectionPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int32]*IntersectionPoint, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// Keys returns the current touch ids in unspecified order.
func (c *concurrentTouchMap) Keys() []int32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]int32, 0, len(c.m))
	for k := range c.m {
		out = append(out, k)
	}
	return out
}

// concurrentTouchTable is the Context-owned table of live Touch objects,
// keyed by id, guarded the same way as concurrentTouchMap.
type concurrentTouchTable struct {
	mu sync.RWMutex
	m  map[int32]*Touch
}

func newConcurrentTouchTable() *concurrentTouchTable {
	return &concurrentTouchTable{m: make(map[int32]*Touch)}
}

func (t *concurrentTouchTable) Get(id int32) (*Touch, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.m[id]
	return v, ok
}

func (t *concurrentTouchTable) Set(id int32, touch *Touch) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m[id] = touch
}

func (t *concurrentTouchTable) Delete(id int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, id)
}

func (t *concurrentTouchTable) Snapshot() []*Touch {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Touch, 0, len(t.m))
	for _, v := range t.m {
		out = append(out, v)
	}
	return out
}
