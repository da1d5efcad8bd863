package event

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Token identifies a registered listener. Listeners are addressed by token
// rather than by pointer so the bus can resolve each one at delivery time
// and skip entries unregistered mid-broadcast.
type Token string

// PanicHandler is invoked when a listener panics during delivery. The
// message keeps flowing to the remaining listeners.
type PanicHandler func(msg *Message, recovered any)

// Bus delivers messages to registered components in registration order.
//
// Broadcast snapshots the listener set before iterating, so a listener may
// register or unregister listeners (including itself) during its own
// notification without affecting the in-flight delivery. Every listener in
// the snapshot that is still registered is notified; the Handled flag never
// short-circuits delivery.
//
// Bus is owned by the editor and must only be used from the editor thread.
type Bus struct {
	order     []Token
	listeners map[Token]Component
	tokens    map[Component]Token

	onPanic PanicHandler

	broadcasts atomic.Uint64
	delivered  atomic.Uint64
	panics     atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler installs a handler for listener panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.onPanic = h
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		listeners: make(map[Token]Component),
		tokens:    make(map[Component]Token),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds a component to the listener set and returns its token.
// Registering an already-registered component is idempotent and returns the
// existing token.
func (b *Bus) Register(c Component) Token {
	if c == nil {
		return ""
	}
	if tok, ok := b.tokens[c]; ok {
		return tok
	}
	tok := Token(uuid.NewString())
	b.order = append(b.order, tok)
	b.listeners[tok] = c
	b.tokens[c] = tok
	return tok
}

// Unregister removes a listener by token. Unknown tokens are ignored.
func (b *Bus) Unregister(tok Token) {
	c, ok := b.listeners[tok]
	if !ok {
		return
	}
	delete(b.listeners, tok)
	delete(b.tokens, c)
	for i, t := range b.order {
		if t == tok {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// UnregisterComponent removes a listener by identity. Unknown components are
// ignored.
func (b *Bus) UnregisterComponent(c Component) {
	if tok, ok := b.tokens[c]; ok {
		b.Unregister(tok)
	}
}

// IsRegistered reports whether the component is currently registered.
func (b *Bus) IsRegistered(c Component) bool {
	_, ok := b.tokens[c]
	return ok
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Broadcast delivers msg to every registered listener in registration order
// and reports whether any listener marked it handled.
func (b *Bus) Broadcast(msg *Message) bool {
	if msg == nil {
		return false
	}
	b.broadcasts.Add(1)

	snapshot := make([]Token, len(b.order))
	copy(snapshot, b.order)

	for _, tok := range snapshot {
		c, ok := b.listeners[tok]
		if !ok {
			// Unregistered mid-broadcast.
			continue
		}
		b.deliver(c, msg)
	}
	return msg.Handled
}

// DispatchMouse routes a pointer message through the mouse path: listeners
// implementing MouseRouter receive it in registration order until one marks
// it handled. Unlike Broadcast, the mouse path honors the Handled flag so
// overlapping components do not all react to one click.
func (b *Bus) DispatchMouse(msg *Message) bool {
	if msg == nil {
		return false
	}

	snapshot := make([]Token, len(b.order))
	copy(snapshot, b.order)

	for _, tok := range snapshot {
		c, ok := b.listeners[tok]
		if !ok {
			continue
		}
		router, ok := c.(MouseRouter)
		if !ok {
			continue
		}
		b.dispatchMouseTo(router, msg)
		if msg.Handled {
			return true
		}
	}
	return msg.Handled
}

// deliver notifies a single listener, containing any panic.
func (b *Bus) deliver(c Component, msg *Message) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			if b.onPanic != nil {
				b.onPanic(msg, r)
			}
		}
	}()
	c.Notify(msg)
	b.delivered.Add(1)
}

func (b *Bus) dispatchMouseTo(r MouseRouter, msg *Message) {
	defer func() {
		if rec := recover(); rec != nil {
			b.panics.Add(1)
			if b.onPanic != nil {
				b.onPanic(msg, rec)
			}
		}
	}()
	r.DispatchMouseEvent(msg)
}

// Stats reports counters accumulated since the bus was created.
type Stats struct {
	Broadcasts uint64
	Delivered  uint64
	Panics     uint64
	Listeners  int
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		Broadcasts: b.broadcasts.Load(),
		Delivered:  b.delivered.Load(),
		Panics:     b.panics.Load(),
		Listeners:  len(b.listeners),
	}
}
