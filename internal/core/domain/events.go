package domain

import "sync"

// Event is a typed notification of a query-model field change. One
// variant exists per observable field; observers switch on the concrete
// type instead of matching stringly-typed property names.
type Event interface {
	event()
}

type DatabaseIDChanged struct{ Old, New string }

type DateModeChanged struct{ Old, New DateMode }

type EditionsChanged struct{ Old, New []Edition }

type FirstRecordChanged struct{ Old, New int }

type MaxResultCountChanged struct{ Old, New int }

type ProxyHostChanged struct{ Old, New string }

type ProxyPortChanged struct{ Old, New int }

type SortFieldsChanged struct{ Old, New []SortField }

type SymbolicTimeSpanChanged struct{ Old, New SymbolicTimeSpan }

type TimeSpanChanged struct{ Old, New *TimeSpan }

type UserQueryChanged struct{ Old, New string }

type LogChanged struct{ Old, New string }

type ResultOutputChanged struct{ Old, New string }

func (DatabaseIDChanged) event()       {}
func (DateModeChanged) event()         {}
func (EditionsChanged) event()         {}
func (FirstRecordChanged) event()      {}
func (MaxResultCountChanged) event()   {}
func (ProxyHostChanged) event()        {}
func (ProxyPortChanged) event()        {}
func (SortFieldsChanged) event()       {}
func (SymbolicTimeSpanChanged) event() {}
func (TimeSpanChanged) event()         {}
func (UserQueryChanged) event()        {}
func (LogChanged) event()              {}
func (ResultOutputChanged) event()     {}

// Observer receives query-model change events
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

func (f ObserverFunc) Notify(e Event) { f(e) }

// Broadcaster is the model-to-view fan-out registry. Notification fires
// on every setter call regardless of whether the value changed; the
// change log is the part that is conditional on a real change.
type Broadcaster struct {
	mu        sync.RWMutex
	next      int
	observers map[int]Observer
}

// NewBroadcaster creates an empty observer registry
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{observers: make(map[int]Observer)}
}

// Subscribe registers an observer and returns its cancel function
func (b *Broadcaster) Subscribe(o Observer) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.observers[id] = o
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.observers, id)
		b.mu.Unlock()
	}
}

// Publish delivers an event to every registered observer, in no
// particular order
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	observers := make([]Observer, 0, len(b.observers))
	for _, o := range b.observers {
		observers = append(observers, o)
	}
	b.mu.RUnlock()

	for _, o := range observers {
		o.Notify(e)
	}
}

// Len returns the number of registered observers
func (b *Broadcaster) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}
