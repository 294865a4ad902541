package signal

import "sync"

// Handler consumes one signal. Handlers run synchronously on the publishing
// goroutine and must not publish from inside a handler.
type Handler func(Signal)

type subscription struct {
	id int
	fn Handler
}

// Bus is the per-trip synchronization channel between surfaces that hold no
// references to one another. Dispatch is synchronous and serialized: every
// handler subscribed at publish time runs to completion, in subscribe order,
// before Publish returns, and no two publishes interleave. Signals are not
// replayed; a surface that subscribes late must re-derive its state instead
// of assuming it caught every missed signal.
type Bus struct {
	mu     sync.Mutex
	subs   []subscription
	nextID int
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns its unsubscribe func. Calling
// the unsubscribe func more than once is harmless.
func (b *Bus) Subscribe(fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *Bus) Publish(sig Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		sub.fn(sig)
	}
}

// SubscriberCount is used by lifecycle checks in tests and the session close.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
