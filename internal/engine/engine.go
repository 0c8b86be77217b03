package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tatianab/escape-room/internal/i18n"
	"github.com/tatianab/escape-room/internal/inventory"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/scene"
	"github.com/tatianab/escape-room/internal/session"
)

// Targeter picks at most one interactable for the player's current view.
type Targeter interface {
	Target(p scene.Pose, objects []*models.Interactable) (models.Handle, bool)
}

// Options configures NewEngine. Zero values pick defaults.
type Options struct {
	TimeLimit int
	Catalog   *i18n.Catalog
	Narrator  Narrator
	Targeter  Targeter
	Logger    *slog.Logger
}

// Factory builds a fresh engine for a new playthrough.
type Factory func() (*Engine, error)

// Engine owns one playthrough: the room's interactables, the inventory, the
// session clock and the player's pose. It is driven from a single goroutine.
type Engine struct {
	id        string
	room      *models.Room
	registry  *models.Registry
	inventory *inventory.Store
	session   *session.Session
	pose      scene.Pose
	targeter  Targeter
	names     scene.NameMatcher
	catalog   *i18n.Catalog
	narrator  Narrator
	log       *slog.Logger
}

func NewEngine(room *models.Room, opts Options) (*Engine, error) {
	objects, err := room.Build()
	if err != nil {
		return nil, err
	}
	registry, err := models.NewRegistry(objects)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("playthrough", id)
	catalog := opts.Catalog
	if catalog == nil {
		catalog, err = i18n.Load(i18n.DefaultLocale)
		if err != nil {
			return nil, err
		}
	}
	narrator := opts.Narrator
	if narrator == nil {
		narrator = StaticNarrator{}
	}
	targeter := opts.Targeter
	if targeter == nil {
		targeter = scene.NewRaycaster()
	}

	return &Engine{
		id:        id,
		room:      room,
		registry:  registry,
		inventory: inventory.New(),
		session:   session.New(opts.TimeLimit, log),
		pose:      scene.NewPose(room),
		targeter:  targeter,
		catalog:   catalog,
		narrator:  narrator,
		log:       log,
	}, nil
}

// Start begins the countdown and returns the welcome message. Starting an
// already started engine returns an empty message.
func (e *Engine) Start() string {
	if !e.session.Start() {
		return ""
	}
	return e.catalog.Get(i18n.MsgWelcome)
}

// Tick advances the countdown by one second. It returns the game-over
// message on the tick that runs the clock out.
func (e *Engine) Tick() (string, bool) {
	if !e.session.Tick() {
		return "", false
	}
	return e.catalog.Get(i18n.MsgTimeUp), true
}

// Move steps the player. Movement is ignored unless the session is playing.
func (e *Engine) Move(dir scene.Direction, run bool) bool {
	if !e.session.Playing() {
		return false
	}
	e.pose = e.pose.Move(dir, run)
	return true
}

// Turn rotates the player; positive degrees turn left.
func (e *Engine) Turn(degrees float64) bool {
	if !e.session.Playing() {
		return false
	}
	e.pose = e.pose.Turn(degrees)
	return true
}

// Face turns the player towards the object h.
func (e *Engine) Face(h models.Handle) bool {
	obj, ok := e.registry.Lookup(h)
	if !ok || !e.session.Playing() {
		return false
	}
	e.pose = e.pose.Face(obj.Footprint.Center)
	return true
}

// Target returns the interactable under the crosshair.
func (e *Engine) Target() (models.Handle, bool) {
	return e.targeter.Target(e.pose, e.registry.All())
}

// Click resolves whatever is under the crosshair. With nothing there it is a
// no-op with no message.
func (e *Engine) Click() (Outcome, error) {
	if !e.session.Playing() {
		return Outcome{}, nil
	}
	h, ok := e.Target()
	if !ok {
		return Outcome{}, nil
	}
	return e.Interact(h)
}

// Use resolves the object best matching a typed name.
func (e *Engine) Use(name string) (Outcome, error) {
	if !e.session.Playing() {
		return Outcome{}, nil
	}
	h, ok := e.names.Match(name, e.registry.All())
	if !ok {
		return Outcome{Message: e.catalog.Get(i18n.MsgUnknownObject, name)}, nil
	}
	return e.Interact(h)
}

// Look describes the room through the narrator, falling back to the static
// description if the narrator fails.
func (e *Engine) Look(ctx context.Context) string {
	return e.Narrate(ctx, e.Snapshot())
}

// Narrate describes v. It touches no game state, so it may run off the
// goroutine that drives the engine.
func (e *Engine) Narrate(ctx context.Context, v RoomView) string {
	text, err := e.narrator.Describe(ctx, v)
	if err != nil {
		e.log.Warn("narrator failed, using static description", "err", err)
		text, _ = StaticNarrator{}.Describe(ctx, v)
	}
	return text
}

// Snapshot captures what the player can currently see.
func (e *Engine) Snapshot() RoomView {
	v := RoomView{
		Title:       e.room.Title,
		Description: e.room.Description,
		Scenery:     e.room.Scenery,
		Inventory:   e.inventory.Items(),
		TimeLeft:    e.session.Clock(),
		Heading:     e.pose.Compass(),
	}
	if h, ok := e.Target(); ok {
		v.Facing = e.Name(h)
	}
	for _, obj := range e.registry.All() {
		v.Objects = append(v.Objects, ObjectView{
			Name:     obj.Name,
			Kind:     obj.Kind,
			Resolved: obj.Resolved(),
		})
	}
	return v
}

// Name returns the display name of h, or the handle itself if unknown.
func (e *Engine) Name(h models.Handle) string {
	if obj, ok := e.registry.Lookup(h); ok {
		return obj.Name
	}
	return string(h)
}

// Object returns the interactable for h.
func (e *Engine) Object(h models.Handle) (*models.Interactable, error) {
	obj, ok := e.registry.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownHandle, h)
	}
	return obj, nil
}

// ID identifies the playthrough in logs.
func (e *Engine) ID() string { return e.id }

func (e *Engine) Objects() []*models.Interactable { return e.registry.All() }
func (e *Engine) Room() *models.Room              { return e.room }
func (e *Engine) Session() *session.Session       { return e.session }
func (e *Engine) Inventory() *inventory.Store     { return e.inventory }
func (e *Engine) Pose() scene.Pose                { return e.pose }
func (e *Engine) Catalog() *i18n.Catalog          { return e.catalog }
