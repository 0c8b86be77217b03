package engine

import (
	"fmt"

	"github.com/tatianab/escape-room/internal/i18n"
	"github.com/tatianab/escape-room/internal/models"
)

// Inventory labels. They are compared by exact equality, so they double as
// the currency the safe and the door check for.
const (
	LabelSmallKey  = "small key"
	LabelRoomKey   = "room key"
	CodeHintPrefix = "code hint: "
)

// CodeHintLabel is the inventory label a book with code leaves behind.
func CodeHintLabel(code string) string {
	return CodeHintPrefix + code
}

// Result classifies what an interaction did.
type Result int

const (
	// ResultNone means nothing was resolved: no target, or not playing.
	ResultNone Result = iota
	// ResultSolved means an object advanced to its resolved state.
	ResultSolved
	// ResultRejected means a precondition was missing; nothing changed.
	ResultRejected
	// ResultAlreadyDone means the object was resolved earlier.
	ResultAlreadyDone
	// ResultHint means the object only reveals information.
	ResultHint
	// ResultWon means the door opened and the session is won.
	ResultWon
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultSolved:
		return "solved"
	case ResultRejected:
		return "rejected"
	case ResultAlreadyDone:
		return "already_done"
	case ResultHint:
		return "hint"
	case ResultWon:
		return "won"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Outcome is what the player sees after an interaction.
type Outcome struct {
	Handle  models.Handle
	Kind    models.Kind
	Result  Result
	Message string
}

// Interact applies the puzzle rule of the object h. Rejected actions are
// reported in the Outcome; an error means the room itself is broken.
func (e *Engine) Interact(h models.Handle) (Outcome, error) {
	if !e.session.Playing() {
		return Outcome{}, nil
	}
	obj, err := e.Object(h)
	if err != nil {
		return Outcome{}, err
	}

	out, err := e.resolve(obj)
	if err != nil {
		e.log.Error("invalid interactable", "handle", h, "kind", obj.Kind, "err", err)
		return Outcome{}, err
	}
	out.Handle, out.Kind = obj.Handle, obj.Kind
	e.log.Debug("interaction", "handle", h, "kind", obj.Kind, "result", out.Result,
		"puzzles_solved", e.session.PuzzlesSolved())
	return out, nil
}

func (e *Engine) resolve(obj *models.Interactable) (Outcome, error) {
	switch obj.Kind {
	case models.KindDrawer:
		s, err := stateOf[*models.DrawerState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.openDrawer(s), nil
	case models.KindBook:
		s, err := stateOf[*models.BookState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.readBook(s), nil
	case models.KindSafe:
		s, err := stateOf[*models.SafeState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.openSafe(s), nil
	case models.KindPainting:
		s, err := stateOf[*models.PaintingState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.hint(i18n.MsgPaintingHint, s.HintText), nil
	case models.KindPlant:
		s, err := stateOf[*models.PlantState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.hint(i18n.MsgPlantHint, s.HintText), nil
	case models.KindDoor:
		s, err := stateOf[*models.DoorState](obj)
		if err != nil {
			return Outcome{}, err
		}
		return e.openDoor(s), nil
	}
	return Outcome{}, fmt.Errorf("%s: %w: %q", obj.Handle, models.ErrUnknownKind, obj.Kind)
}

func stateOf[T models.State](obj *models.Interactable) (T, error) {
	s, ok := obj.State.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w: %T on %s", obj.Handle, models.ErrMalformedState, obj.State, obj.Kind)
	}
	return s, nil
}

func (e *Engine) openDrawer(s *models.DrawerState) Outcome {
	if s.Opened {
		return Outcome{Result: ResultAlreadyDone, Message: e.catalog.Get(i18n.MsgDrawerEmpty)}
	}
	s.Opened = true
	e.inventory.Add(LabelSmallKey)
	e.session.SolvePuzzle()
	return Outcome{Result: ResultSolved, Message: e.catalog.Get(i18n.MsgDrawerOpened)}
}

// readBook always reveals the code and counts as a solve every time.
func (e *Engine) readBook(s *models.BookState) Outcome {
	e.inventory.Add(CodeHintLabel(s.Code))
	e.session.SolvePuzzle()
	return Outcome{Result: ResultHint, Message: e.catalog.Get(i18n.MsgBookCode, s.Code)}
}

func (e *Engine) openSafe(s *models.SafeState) Outcome {
	if !s.Locked {
		return Outcome{Result: ResultAlreadyDone, Message: e.catalog.Get(i18n.MsgSafeAlreadyOpen)}
	}
	if !e.inventory.Contains(CodeHintLabel(s.RequiredHint)) {
		return Outcome{Result: ResultRejected, Message: e.catalog.Get(i18n.MsgSafeNeedsCode)}
	}
	s.Locked = false
	e.inventory.Add(LabelRoomKey)
	e.session.SolvePuzzle()
	e.log.Info("safe unlocked")
	return Outcome{Result: ResultSolved, Message: e.catalog.Get(i18n.MsgSafeOpened)}
}

func (e *Engine) openDoor(s *models.DoorState) Outcome {
	// An open door has nothing left to do; in practice the win ends play first.
	if !s.Locked {
		return Outcome{Result: ResultAlreadyDone}
	}
	if !e.inventory.Contains(LabelRoomKey) {
		return Outcome{Result: ResultRejected, Message: e.catalog.Get(i18n.MsgDoorLocked)}
	}
	s.Locked = false
	e.session.MarkWon()
	return Outcome{Result: ResultWon, Message: e.catalog.Get(i18n.MsgDoorOpened)}
}

func (e *Engine) hint(id, text string) Outcome {
	if text != "" {
		text = e.catalog.Get(text)
	}
	return Outcome{Result: ResultHint, Message: e.catalog.Get(id, text)}
}
