// Package store holds the authoritative local copy of one resource
// kind's collection for the lifetime of a screen. Mutators take the API
// call as a closure, issue it, and reconcile the confirmed server
// response into the collection — local state is never flipped
// speculatively.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrClosed indicates the owning screen has gone away; a late
	// response must not be written into the collection.
	ErrClosed = errors.New("store closed")

	// ErrNoSuchEntity indicates an update targeted an identity that is
	// not in the local collection. This is a logic error in the caller,
	// not a servable condition.
	ErrNoSuchEntity = errors.New("no local entity with that identity")
)

// Store is an in-memory collection of entities with unique identities,
// ordered newest-first for entities added through Add and in arrival
// order for loaded ones.
type Store[T any] struct {
	identity func(T) string

	mu     sync.Mutex
	items  []T
	closed bool

	// Load sequencing: a later-issued Load wins over an earlier one
	// regardless of which response arrives first.
	issuedSeq  uint64
	appliedSeq uint64
}

// New creates an empty store keyed by the given identity function.
func New[T any](identity func(T) string) *Store[T] {
	return &Store[T]{identity: identity}
}

// Load fetches the full collection and replaces the local copy. Safe to
// call again before a previous Load resolves: the collection is only ever
// replaced wholesale, and the most recently issued Load wins.
func (s *Store[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err != nil {
		return err
	}
	if seq < s.appliedSeq {
		// A newer load already landed; discard this one.
		return nil
	}
	s.appliedSeq = seq
	s.items = dedupe(items, s.identity)
	return nil
}

// Add issues the create call and prepends the server-returned entity, so
// the newest entry shows first.
func (s *Store[T]) Add(ctx context.Context, create func(context.Context) (T, error)) (T, error) {
	created, err := create(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return created, ErrClosed
	}

	id := s.identity(created)
	if i, ok := s.indexOf(id); ok {
		// Double submit echoed an identity we already hold; the server
		// copy is authoritative.
		s.items[i] = created
		return created, nil
	}
	s.items = append([]T{created}, s.items...)
	return created, nil
}

// ApplyUpdate issues the update call and replaces the matching local
// entity in place. Targeting an identity that is not present is reported
// as ErrNoSuchEntity before any request is made.
func (s *Store[T]) ApplyUpdate(ctx context.Context, id string, update func(context.Context) (T, error)) (T, error) {
	var zero T
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return zero, ErrClosed
	}
	if _, ok := s.indexOf(id); !ok {
		s.mu.Unlock()
		return zero, fmt.Errorf("%w: %s", ErrNoSuchEntity, id)
	}
	s.mu.Unlock()

	updated, err := update(ctx)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return updated, ErrClosed
	}
	if i, ok := s.indexOf(s.identity(updated)); ok {
		s.items[i] = updated
	}
	return updated, nil
}

// Toggle issues a flag toggle and replaces the local entity with the
// server response. The server owns the resulting flag value; the local
// copy is never flipped independently.
func (s *Store[T]) Toggle(ctx context.Context, id string, toggle func(context.Context) (T, error)) (T, error) {
	return s.ApplyUpdate(ctx, id, toggle)
}

// Remove issues the delete call and drops the matching local entity.
// Removing an identity that is not present is a no-op success.
func (s *Store[T]) Remove(ctx context.Context, id string, remove func(context.Context) error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if _, ok := s.indexOf(id); !ok {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := remove(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if i, ok := s.indexOf(id); ok {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return nil
}

// Items returns a copy of the collection in its current order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the entity with the given identity.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.indexOf(id); ok {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Len returns the collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close marks the store as no longer displayed. Late responses from
// in-flight requests are discarded instead of mutating the collection.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// indexOf must be called with s.mu held.
func (s *Store[T]) indexOf(id string) (int, bool) {
	for i := range s.items {
		if s.identity(s.items[i]) == id {
			return i, true
		}
	}
	return 0, false
}

func dedupe[T any](items []T, identity func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, it := range items {
		id := identity(it)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, it)
	}
	return out
}
