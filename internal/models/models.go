package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for an interactable whose kind is outside the fixed set.
	ErrUnknownKind = errors.New("unknown interactable kind")
	// ErrMalformedState is returned when an interactable's state does not match its kind.
	ErrMalformedState = errors.New("malformed interactable state")
)

// Kind is the semantic type of an interactable.
type Kind string

const (
	KindDoor     Kind = "door"
	KindDrawer   Kind = "drawer"
	KindBook     Kind = "book"
	KindSafe     Kind = "safe"
	KindPainting Kind = "painting"
	KindPlant    Kind = "plant"
)

// Known reports whether k is one of the supported kinds.
func (k Kind) Known() bool {
	switch k {
	case KindDoor, KindDrawer, KindBook, KindSafe, KindPainting, KindPlant:
		return true
	}
	return false
}

// Handle is the opaque identity of an interactable. The scene layer maps
// whatever it renders to a handle; the resolver never sees anything else.
type Handle string

// Vec2 is a point on the room floor. Z grows towards the back wall, the door
// sits at negative Z.
type Vec2 struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Z: v.Z + o.Z} }

// Scale returns v*f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Z: v.Z * f} }

// Footprint is the axis-aligned floor rectangle an object occupies.
type Footprint struct {
	Center Vec2    `yaml:"center"`
	Width  float64 `yaml:"width"` // along X
	Depth  float64 `yaml:"depth"` // along Z
}

// Min returns the lower corner of the footprint grown by pad on every side.
func (f Footprint) Min(pad float64) Vec2 {
	return Vec2{X: f.Center.X - f.Width/2 - pad, Z: f.Center.Z - f.Depth/2 - pad}
}

// Max returns the upper corner of the footprint grown by pad on every side.
func (f Footprint) Max(pad float64) Vec2 {
	return Vec2{X: f.Center.X + f.Width/2 + pad, Z: f.Center.Z + f.Depth/2 + pad}
}

// State is the mutable payload of an interactable. There is exactly one
// implementation per Kind.
type State interface {
	Kind() Kind
}

type DoorState struct {
	Locked bool
}

type DrawerState struct {
	Opened bool
}

// BookState carries the code revealed by the hint book.
type BookState struct {
	Code string
}

type SafeState struct {
	Locked       bool
	RequiredHint string
}

type PaintingState struct {
	HintText string
}

type PlantState struct {
	HintText string
}

func (*DoorState) Kind() Kind     { return KindDoor }
func (*DrawerState) Kind() Kind   { return KindDrawer }
func (*BookState) Kind() Kind     { return KindBook }
func (*SafeState) Kind() Kind     { return KindSafe }
func (*PaintingState) Kind() Kind { return KindPainting }
func (*PlantState) Kind() Kind    { return KindPlant }

// Interactable is a world object the player can target.
type Interactable struct {
	Handle    Handle
	Name      string
	Aliases   []string
	Kind      Kind
	State     State
	Footprint Footprint
}

// Validate checks the kind is known and the state variant matches it.
func (i *Interactable) Validate() error {
	if !i.Kind.Known() {
		return fmt.Errorf("%s: %w: %q", i.Handle, ErrUnknownKind, i.Kind)
	}
	if i.State == nil || isNilState(i.State) {
		return fmt.Errorf("%s: %w: no state for %s", i.Handle, ErrMalformedState, i.Kind)
	}
	if i.State.Kind() != i.Kind {
		return fmt.Errorf("%s: %w: %s state on %s", i.Handle, ErrMalformedState, i.State.Kind(), i.Kind)
	}
	return nil
}

func isNilState(s State) bool {
	switch v := s.(type) {
	case *DoorState:
		return v == nil
	case *DrawerState:
		return v == nil
	case *BookState:
		return v == nil
	case *SafeState:
		return v == nil
	case *PaintingState:
		return v == nil
	case *PlantState:
		return v == nil
	}
	return false
}

// Resolved reports whether the object has reached its terminal state.
// Stateless kinds are never resolved.
func (i *Interactable) Resolved() bool {
	switch s := i.State.(type) {
	case *DoorState:
		return !s.Locked
	case *DrawerState:
		return s.Opened
	case *SafeState:
		return !s.Locked
	}
	return false
}
