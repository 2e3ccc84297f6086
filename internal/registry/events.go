package registry

import "time"

// Event represents a change in the path registry
type Event struct {
	Type      EventType
	ID        ID
	Template  string
	Timestamp time.Time
}

// EventType represents the type of registry event
type EventType int

const (
	EventTypeRegistered EventType = iota
	EventTypeOverridden
	EventTypeOverrideCleared
)

// String returns the string representation of the event type
func (t EventType) String() string {
	switch t {
	case EventTypeRegistered:
		return "registered"
	case EventTypeOverridden:
		return "overridden"
	case EventTypeOverrideCleared:
		return "override_cleared"
	default:
		return "unknown"
	}
}

const watchBuffer = 100

// Watch returns a channel that receives registry events
func (r *Registry) Watch() <-chan Event {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan Event, watchBuffer)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *Registry) UnWatch(ch <-chan Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// notify fans an event out to every watcher. Callers hold the write lock.
func (r *Registry) notify(eventType EventType, id ID, source string) {
	event := Event{
		Type:      eventType,
		ID:        id,
		Template:  source,
		Timestamp: time.Now(),
	}

	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
