package interact3d

import "sync"

// EventType enumerates every event an Element can emit (§6).
type EventType int

const (
	OnInteractionBegin EventType = iota
	OnInteractionEnd
	OnTouchBegin
	OnTouchEnd
	OnHitBegin
	OnHitEnd
	OnInteracting
	OnChildrenUpdated
	OnDeletionStarted // fires once, when start_deletion begins the fade-out
	OnDeleting        // fires once, when the fade-out completes and the element is flagged for removal
	OnFadedIn
	OnMainLoopBegin
	OnMainLoopEnd
	OnVerticalMouseWheelChange
	OnHorizontalMouseWheelChange
	OnMouseButtonPressed
	OnMouseButtonReleased
)

// InteractionEvent carries the triggering touch and current intersection
// where applicable, plus mouse-derived extras (§6: "all carry at least the
// triggering touch and the current intersection point where applicable").
type InteractionEvent struct {
	Type         EventType
	Element      *Element
	Touch        *Touch
	Intersection *IntersectionPoint

	WheelDelta float32
	Button     int
}

// CallbackHandle identifies one registered listener so it can later be
// removed with Element.Off.
type CallbackHandle struct {
	eventType EventType
	id        int
}

// elementCallbacks is the per-element handler registry. Listeners may be
// invoked from worker threads during the parallel element phase (§5 iv),
// so registration and dispatch are both guarded; handlers themselves are
// the host's responsibility to make thread-safe per the spec's contract.
type elementCallbacks struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventType]map[int]func(InteractionEvent)
}

func newElementCallbacks() *elementCallbacks {
	return &elementCallbacks{listeners: make(map[EventType]map[int]func(InteractionEvent))}
}

// On registers fn for eventType and returns a handle to later remove it.
func (e *Element) On(eventType EventType, fn func(InteractionEvent)) CallbackHandle {
	c := e.callbacks
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	if c.listeners[eventType] == nil {
		c.listeners[eventType] = make(map[int]func(InteractionEvent))
	}
	c.listeners[eventType][id] = fn
	return CallbackHandle{eventType: eventType, id: id}
}

// Off removes a previously registered listener.
func (e *Element) Off(h CallbackHandle) {
	c := e.callbacks
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners[h.eventType], h.id)
}

func (e *Element) fire(eventType EventType, touch *Touch, ip *IntersectionPoint) {
	e.fireEvent(InteractionEvent{Type: eventType, Element: e, Touch: touch, Intersection: ip})
}

func (e *Element) fireEvent(ev InteractionEvent) {
	c := e.callbacks
	c.mu.Lock()
	fns := make([]func(InteractionEvent), 0, len(c.listeners[ev.Type]))
	for _, fn := range c.listeners[ev.Type] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}
