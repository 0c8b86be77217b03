// Package inventory holds the labels the player has collected.
package inventory

import (
	"github.com/zyedidia/generic/mapset"
)

// Store is an insertion-ordered set of item labels. Labels are compared by
// exact string equality and can never be removed.
type Store struct {
	items     []string
	seen      mapset.Set[string]
	listeners []func(*Store)
}

// New returns an empty store.
func New() *Store {
	return &Store{
		seen: mapset.New[string](),
	}
}

// Add appends label unless it is already held. Listeners are notified only
// when the store actually changes. It reports whether label was added.
func (s *Store) Add(label string) bool {
	if s.seen.Has(label) {
		return false
	}
	s.seen.Put(label)
	s.items = append(s.items, label)
	for _, fn := range s.listeners {
		fn(s)
	}
	return true
}

// Contains reports whether label is held.
func (s *Store) Contains(label string) bool {
	return s.seen.Has(label)
}

// Items returns a copy of the labels in the order they were collected.
func (s *Store) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of held labels.
func (s *Store) Len() int {
	return len(s.items)
}

// OnChange registers fn to be called after every mutation. Listeners re-read
// the store themselves.
func (s *Store) OnChange(fn func(*Store)) {
	s.listeners = append(s.listeners, fn)
}
