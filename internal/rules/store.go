package rules

import "slices"

// Keyed is implemented by every element kept in a Store.
type Keyed interface {
	Key() string
}

// Store is an insertion-ordered sequence with no two elements sharing a key.
// The zero value is an empty store ready for use. Every operation that
// returns an error leaves the store untouched.
type Store[T Keyed] struct {
	items []T
}

// Len returns the number of stored elements.
func (s *Store[T]) Len() int { return len(s.items) }

// At returns the element at position i.
func (s *Store[T]) At(i int) T { return s.items[i] }

// Index returns the position of the element with the given key, or -1.
func (s *Store[T]) Index(key string) int {
	return slices.IndexFunc(s.items, func(item T) bool { return item.Key() == key })
}

// Get returns the element with the given key.
func (s *Store[T]) Get(key string) (T, bool) {
	if i := s.Index(key); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Items returns a copy of the stored elements in order.
func (s *Store[T]) Items() []T { return slices.Clone(s.items) }

// Append adds item at the end unless its key is already present.
func (s *Store[T]) Append(item T) error {
	if s.Index(item.Key()) >= 0 {
		return ErrExists
	}
	s.items = append(s.items, item)
	return nil
}

// UpdateFunc calls fn with a pointer to every element, in order, and returns
// how many calls reported a change. fn must not alter an element's key.
func (s *Store[T]) UpdateFunc(fn func(*T) bool) int {
	n := 0
	for i := range s.items {
		if fn(&s.items[i]) {
			n++
		}
	}
	return n
}

// MoveToFront swaps the element at position i with the first element.
func (s *Store[T]) MoveToFront(i int) {
	if i <= 0 || i >= len(s.items) {
		return
	}
	s.items[0], s.items[i] = s.items[i], s.items[0]
}

// Drain hands every element to fn in order and leaves the store empty.
func (s *Store[T]) Drain(fn func(T)) {
	items := s.items
	s.items = nil
	for _, item := range items {
		if fn != nil {
			fn(item)
		}
	}
}
