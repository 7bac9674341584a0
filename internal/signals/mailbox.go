package signals

import (
	"context"
	"sync"
)

// Mailbox is a single-slot, overwrite-on-write container with a wake notification.
// The zero value is not usable; create one with NewMailbox.
type Mailbox[T any] struct {
	mu      sync.Mutex
	value   T
	written bool
	pending bool
	version uint64
	wake    chan struct{}
}

func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{wake: make(chan struct{}, 1)}
}

// Put replaces the slot content and wakes a waiting reader. It returns the
// version of this write.
func (m *Mailbox[T]) Put(v T) uint64 {
	m.mu.Lock()
	m.value = v
	m.written = true
	m.pending = true
	m.version++
	version := m.version
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return version
}

// Load returns the latest completed write, whether or not it was taken.
func (m *Mailbox[T]) Load() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.written
}

// Version counts completed writes.
func (m *Mailbox[T]) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

// Pending reports whether a write has not been taken yet.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// TryTake consumes the pending value if there is one. It never blocks.
func (m *Mailbox[T]) TryTake() (T, bool) {
	v, _, ok := m.TryTakeVersion()
	return v, ok
}

// TryTakeVersion is TryTake that also reports the version of the consumed write.
func (m *Mailbox[T]) TryTakeVersion() (T, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending {
		var zero T
		return zero, 0, false
	}
	m.pending = false
	return m.value, m.version, true
}

// Take waits until a value is pending and consumes it.
func (m *Mailbox[T]) Take(ctx context.Context) (T, error) {
	for {
		if v, ok := m.TryTake(); ok {
			return v, nil
		}
		select {
		case <-m.wake:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// Notify returns the wake channel, for callers that need to select on several
// sources. A receive only means a write may be pending; follow it with TryTake.
func (m *Mailbox[T]) Notify() <-chan struct{} {
	return m.wake
}
