// Package events provides the process-wide publish/subscribe hub that
// decouples webhook ingestion from notification delivery.
package events

import "sync"

// Handler consumes one emitted payload.
type Handler func(payload any)

type listener struct {
	fn   Handler
	once bool
}

// Dispatcher is a synchronous pub/sub hub. One instance is constructed
// at startup and injected wherever events flow; it lives for the
// process lifetime. Emit runs handlers in registration order and does
// not recover their panics, subscribers own their failures.
type Dispatcher struct {
	mu        sync.Mutex
	listeners map[string][]listener
}

// NewDispatcher constructs an empty hub.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]listener)}
}

// On registers a handler for the event name.
func (d *Dispatcher) On(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], listener{fn: h})
}

// Once registers a handler that is dropped after its first invocation.
func (d *Dispatcher) Once(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[name] = append(d.listeners[name], listener{fn: h, once: true})
}

// Emit synchronously invokes all handlers registered for the name, in
// registration order.
func (d *Dispatcher) Emit(name string, payload any) {
	d.mu.Lock()
	current := d.listeners[name]
	if len(current) == 0 {
		d.mu.Unlock()
		return
	}
	remaining := current[:0:0]
	for _, l := range current {
		if !l.once {
			remaining = append(remaining, l)
		}
	}
	d.listeners[name] = remaining
	d.mu.Unlock()

	for _, l := range current {
		l.fn(payload)
	}
}

// RemoveAllListeners drops every handler for the given names, or every
// handler on the hub when no name is given.
func (d *Dispatcher) RemoveAllListeners(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		d.listeners = make(map[string][]listener)
		return
	}
	for _, name := range names {
		delete(d.listeners, name)
	}
}
