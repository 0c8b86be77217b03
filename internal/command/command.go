// Package command parses the player's typed input.
package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tatianab/escape-room/internal/scene"
)

// TurnStep is the default rotation of one turn command, in degrees.
const TurnStep = 15

// ErrUnknownCommand is returned for input that matches no verb.
var ErrUnknownCommand = errors.New("unknown command")

type Verb int

const (
	Click Verb = iota
	Use
	Move
	Turn
	Look
	Inventory
	Status
	Wait
	Help
	Restart
	Quit
)

// Command is one parsed player action.
type Command struct {
	Verb      Verb
	Object    string
	Direction scene.Direction
	Run       bool
	Degrees   float64 // positive turns left
	Count     int
}

var moveKeys = map[string]scene.Direction{
	"w": scene.Forward,
	"s": scene.Back,
	"a": scene.Left,
	"d": scene.Right,
}

var moveWords = map[string]scene.Direction{
	"forward":  scene.Forward,
	"ahead":    scene.Forward,
	"back":     scene.Back,
	"backward": scene.Back,
	"left":     scene.Left,
	"right":    scene.Right,
}

// Parse reads one line. An empty line clicks whatever is under the crosshair.
// An upper-case movement key runs.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Verb: Click}, nil
	}

	if len(line) == 1 {
		if dir, ok := moveKeys[strings.ToLower(line)]; ok {
			return Command{Verb: Move, Direction: dir, Run: line != strings.ToLower(line)}, nil
		}
	}

	fields := strings.Fields(strings.ToLower(line))
	verb, args := fields[0], fields[1:]

	switch verb {
	case "click", "interact", "e":
		return Command{Verb: Click}, nil
	case "use", "open", "examine", "read", "search", "x":
		if len(args) == 0 {
			return Command{Verb: Click}, nil
		}
		return Command{Verb: Use, Object: strings.Join(args, " ")}, nil
	case "go", "walk", "run", "step", "strafe":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%s where?", verb)
		}
		dir, ok := moveWords[args[0]]
		if !ok {
			if dir, ok = moveKeys[args[0]]; !ok {
				return Command{}, fmt.Errorf("%w: %s %s", ErrUnknownCommand, verb, args[0])
			}
		}
		return Command{Verb: Move, Direction: dir, Run: verb == "run"}, nil
	case "turn", "left", "right", "q":
		return parseTurn(verb, args)
	case "look", "l":
		return Command{Verb: Look}, nil
	case "inventory", "inv", "i":
		return Command{Verb: Inventory}, nil
	case "status", "time":
		return Command{Verb: Status}, nil
	case "wait":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return Command{}, fmt.Errorf("wait needs a positive number of seconds, got %q", args[0])
			}
			n = v
		}
		return Command{Verb: Wait, Count: n}, nil
	case "help", "?", "/help":
		return Command{Verb: Help}, nil
	case "restart", "/restart":
		return Command{Verb: Restart}, nil
	case "quit", "/quit":
		return Command{Verb: Quit}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

func parseTurn(verb string, args []string) (Command, error) {
	side := verb
	if verb == "turn" {
		if len(args) == 0 {
			return Command{}, errors.New("turn left or right?")
		}
		side, args = args[0], args[1:]
	}

	deg := float64(TurnStep)
	if len(args) > 0 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Command{}, fmt.Errorf("bad angle %q", args[0])
		}
		deg = v
	}

	switch side {
	case "left", "q":
		return Command{Verb: Turn, Degrees: deg}, nil
	case "right":
		return Command{Verb: Turn, Degrees: -deg}, nil
	case "around":
		return Command{Verb: Turn, Degrees: 180}, nil
	}
	return Command{}, fmt.Errorf("%w: turn %s", ErrUnknownCommand, side)
}

// HelpText lists the commands.
const HelpText = `Commands:
  <enter> / click        use whatever is under the crosshair
  use <object>           use an object by name
  w a s d  (W A S D)     walk (run) forward, left, back, right
  turn left|right [deg]  turn on the spot (default 15)
  look                   describe the room
  inventory              list what you carry
  status                 time left and puzzles solved
  wait <n>               let n seconds pass
  restart, quit`
