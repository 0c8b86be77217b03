package models

import (
	"errors"
	"fmt"
)

// ErrUnknownHandle is returned when a handle is not registered.
var ErrUnknownHandle = errors.New("unknown handle")

// Registry holds the interactables of one room, keyed by handle and kept in
// declaration order.
type Registry struct {
	byHandle map[Handle]*Interactable
	order    []*Interactable
}

// NewRegistry validates every object and indexes it. Duplicate handles and
// malformed states are configuration errors.
func NewRegistry(objects []*Interactable) (*Registry, error) {
	r := &Registry{
		byHandle: make(map[Handle]*Interactable, len(objects)),
	}
	for _, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("%w: nil interactable", ErrMalformedState)
		}
		if obj.Handle == "" {
			return nil, fmt.Errorf("%w: interactable %q has no handle", ErrMalformedState, obj.Name)
		}
		if err := obj.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byHandle[obj.Handle]; ok {
			return nil, fmt.Errorf("duplicate handle %q", obj.Handle)
		}
		r.byHandle[obj.Handle] = obj
		r.order = append(r.order, obj)
	}
	return r, nil
}

// Lookup returns the interactable for h.
func (r *Registry) Lookup(h Handle) (*Interactable, bool) {
	obj, ok := r.byHandle[h]
	return obj, ok
}

// All returns the registered objects in declaration order.
func (r *Registry) All() []*Interactable {
	out := make([]*Interactable, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	return len(r.order)
}
