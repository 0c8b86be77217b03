package models

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rooms/study.yaml
var defaultRoom []byte

// Room is the static definition of the escape room as read from YAML.
type Room struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Bounds      float64      `yaml:"bounds"` // half-width of the walkable square
	Spawn       Vec2         `yaml:"spawn"`
	Heading     float64      `yaml:"heading"` // degrees, 0 faces the door wall
	Scenery     []string     `yaml:"scenery"` // decoration only, never targetable
	Objects     []ObjectSpec `yaml:"objects"`
}

// ObjectSpec is the YAML form of an interactable. Only the fields relevant
// to Kind are read.
type ObjectSpec struct {
	Handle       Handle    `yaml:"handle"`
	Name         string    `yaml:"name"`
	Aliases      []string  `yaml:"aliases"`
	Kind         Kind      `yaml:"kind"`
	Locked       *bool     `yaml:"locked"`
	Opened       bool      `yaml:"opened"`
	Code         string    `yaml:"code"`
	RequiredHint string    `yaml:"required_hint"`
	Hint         string    `yaml:"hint"`
	Footprint    Footprint `yaml:"footprint"`
}

// DefaultRoom returns the built-in study.
func DefaultRoom() (*Room, error) {
	return ParseRoom(defaultRoom)
}

// LoadRoom reads a room definition from path. An empty path selects the
// built-in room.
func LoadRoom(path string) (*Room, error) {
	if path == "" {
		return DefaultRoom()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	room, err := ParseRoom(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return room, nil
}

// ParseRoom decodes and checks a room definition.
func ParseRoom(data []byte) (*Room, error) {
	var room Room
	if err := yaml.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to parse room YAML: %w", err)
	}
	if room.Bounds <= 0 {
		return nil, fmt.Errorf("room %q: bounds must be positive", room.Title)
	}
	if _, err := room.Build(); err != nil {
		return nil, err
	}
	return &room, nil
}

// Build creates a fresh set of interactables in their initial state. Every
// call returns new state, so each session owns its own objects.
func (r *Room) Build() ([]*Interactable, error) {
	objects := make([]*Interactable, 0, len(r.Objects))
	for _, spec := range r.Objects {
		obj, err := spec.build()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

func (s ObjectSpec) build() (*Interactable, error) {
	obj := &Interactable{
		Handle:    s.Handle,
		Name:      s.Name,
		Aliases:   s.Aliases,
		Kind:      s.Kind,
		Footprint: s.Footprint,
	}
	if obj.Name == "" {
		obj.Name = string(s.Handle)
	}

	locked := true
	if s.Locked != nil {
		locked = *s.Locked
	}

	switch s.Kind {
	case KindDoor:
		obj.State = &DoorState{Locked: locked}
	case KindDrawer:
		obj.State = &DrawerState{Opened: s.Opened}
	case KindBook:
		if s.Code == "" {
			return nil, fmt.Errorf("%s: %w: book without code", s.Handle, ErrMalformedState)
		}
		obj.State = &BookState{Code: s.Code}
	case KindSafe:
		if s.RequiredHint == "" {
			return nil, fmt.Errorf("%s: %w: safe without required_hint", s.Handle, ErrMalformedState)
		}
		obj.State = &SafeState{Locked: locked, RequiredHint: s.RequiredHint}
	case KindPainting:
		obj.State = &PaintingState{HintText: s.Hint}
	case KindPlant:
		obj.State = &PlantState{HintText: s.Hint}
	default:
		return nil, fmt.Errorf("%s: %w: %q", s.Handle, ErrUnknownKind, s.Kind)
	}

	if err := obj.Validate(); err != nil {
		return nil, err
	}
	return obj, nil
}
