package dom

// Event is a dispatched view event. Target is the node the event was fired
// on; CurrentTarget is the node whose listener is running.
type Event struct {
	Type          string
	Target        *Node
	CurrentTarget *Node

	stopped bool
}

// NewEvent builds an event of the given type aimed at target.
func NewEvent(eventType string, target *Node) *Event {
	return &Event{Type: eventType, Target: target}
}

// StopPropagation prevents listeners on further ancestors from running.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener handles a dispatched event.
type Listener func(*Event)

// AddEventListener registers fn for eventType on n. Listeners run in
// registration order; registering the same function twice runs it twice.
func (n *Node) AddEventListener(eventType string, fn Listener) {
	if n == nil || fn == nil || eventType == "" {
		return
	}
	byType, ok := n.doc.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		n.doc.listeners[n] = byType
	}
	byType[eventType] = append(byType[eventType], fn)
}

// ListenerCount reports how many listeners n holds for eventType.
func (d *Document) ListenerCount(n *Node, eventType string) int {
	return len(d.listeners[n][eventType])
}

// Dispatch delivers evt to listeners on the target and then on each
// ancestor up to the document node, stopping early if a listener calls
// StopPropagation.
func (d *Document) Dispatch(evt *Event) {
	if evt == nil || evt.Target == nil {
		return
	}
	for cur := evt.Target; cur != nil; cur = cur.Parent() {
		listeners := d.listeners[cur][evt.Type]
		if len(listeners) == 0 {
			continue
		}
		evt.CurrentTarget = cur
		for _, fn := range append([]Listener(nil), listeners...) {
			fn(evt)
		}
		if evt.stopped {
			break
		}
	}
	evt.CurrentTarget = nil
}

// Fire is shorthand for dispatching a new event of eventType at target.
func (d *Document) Fire(eventType string, target *Node) *Event {
	evt := NewEvent(eventType, target)
	d.Dispatch(evt)
	return evt
}
