// Package mailbox models the firmware's inter-core shared state (§4.7,
// §9): a small critical section holding a (dirty flag, value) pair. On
// real hardware each slot is guarded by a spinlock between the two RP2040
// cores; hosted in Go there is no spinlock primitive worth reaching for, so
// a sync.Mutex stands in for it — the shape (single writer, peek-or-consume
// readers, no unbounded queue) is what the spec actually cares about.
package mailbox

import "sync"

// Mailbox holds one value of type T plus a dirty flag. Producers call Set;
// consumers call either Peek (read without clearing the flag) or Consume
// (read and clear it), matching the two reader styles used by the LED and
// screen tasks in §4.7.
type Mailbox[T any] struct {
	mu    sync.Mutex
	value T
	dirty bool
}

// New builds a Mailbox pre-loaded with an initial value, not marked dirty.
func New[T any](initial T) *Mailbox[T] {
	return &Mailbox[T]{value: initial}
}

// Set stores a new value and raises the dirty flag.
func (m *Mailbox[T]) Set(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.dirty = true
}

// Peek returns the current value and whether it is dirty, without clearing
// the flag.
func (m *Mailbox[T]) Peek() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.dirty
}

// Consume returns the current value and clears the dirty flag.
func (m *Mailbox[T]) Consume() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirty = false
	return m.value
}

// Reset stores v and raises the dirty flag, regardless of the previous
// value — used when every mailbox is forced back to its built-in default
// on a Disconnected transition (§4.4, §4.7).
func (m *Mailbox[T]) Reset(v T) {
	m.Set(v)
}
