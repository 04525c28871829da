package kvstore

import "sync"

// Event announces that a collection changed. Subscribers re-read the
// collection themselves; the event carries no payload.
type Event struct {
	Collection string
}

// Notifier fans out change events per collection so consumers can subscribe
// instead of re-reading on a timer.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[int]chan Event
	next int
}

// NewNotifier constructs a notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[int]chan Event)}
}

// Subscribe registers interest in one collection key. The returned cancel
// function must be called to release the subscription.
func (n *Notifier) Subscribe(collection string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	n.mu.Lock()
	id := n.next
	n.next++
	if n.subs[collection] == nil {
		n.subs[collection] = make(map[int]chan Event)
	}
	n.subs[collection][id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if subs, ok := n.subs[collection]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(n.subs, collection)
			}
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

// Publish notifies subscribers of a change. Slow subscribers miss events
// rather than block the writer.
func (n *Notifier) Publish(collection string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, ch := range n.subs[collection] {
		select {
		case ch <- Event{Collection: collection}:
		default:
		}
	}
}
