package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/escape-room/internal/command"
	"github.com/tatianab/escape-room/internal/config"
	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/session"
)

const (
	maxTurns = 30
	// secondsPerTurn is how much of the clock each simulated action costs.
	secondsPerTurn = 5
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	room, err := models.LoadRoom(cfg.RoomFile)
	if err != nil {
		log.Fatalf("Failed to load room: %v", err)
	}
	eng, err := engine.NewEngine(room, engine.Options{TimeLimit: cfg.TimeLimit, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	fmt.Printf("Room: %s\n%s\n\n", room.Title, eng.Start())

	var next func(turn int, last string) string
	if cfg.NarratorEnabled() {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		player := client.GenerativeModel(cfg.GeminiModel)
		fmt.Println("--- Player: Gemini ---")
		next = func(_ int, last string) string {
			return getPlayerAction(ctx, player, eng, last)
		}
	} else {
		fmt.Println("--- Player: scripted solver ---")
		next = scriptedAction(eng)
	}

	last := ""
	for turn := 1; turn <= maxTurns; turn++ {
		action := next(turn, last)
		fmt.Printf("--- Turn %d ---\nPlayer Action: %s\n", turn, action)

		last = play(eng, action)
		fmt.Printf("Outcome: %s\n", last)

		s := eng.Session()
		fmt.Printf("Status: %s, Time=%s, Puzzles=%d, Inventory=%v\n\n", s.Status(), s.Clock(), s.PuzzlesSolved(), eng.Inventory().Items())

		if s.Status().Terminal() {
			break
		}
		for range secondsPerTurn {
			if msg, expired := eng.Tick(); expired {
				fmt.Println(msg)
				break
			}
		}
		if eng.Session().Status().Terminal() {
			break
		}
	}

	switch eng.Session().Status() {
	case session.Won:
		fmt.Println("Game Ended: Player Won!")
	case session.Lost:
		fmt.Println("Game Ended: Player Lost!")
	default:
		fmt.Println("Game Ended: out of turns")
	}
}

// scriptedAction walks the puzzle chain in order, facing each object before
// using it, so targeting goes through the raycast.
func scriptedAction(eng *engine.Engine) func(int, string) string {
	plan := []models.Handle{"drawer", "yellow-book", "painting", "plant", "safe", "door"}
	step := 0
	return func(int, string) string {
		for step < len(plan) {
			h := plan[step]
			obj, err := eng.Object(h)
			if err != nil || (obj.Resolved() && obj.Kind != models.KindBook) {
				step++
				continue
			}
			if target, ok := eng.Target(); ok && target == h {
				step++
				return "click"
			}
			eng.Face(h)
			return "look"
		}
		return "use door"
	}
}

// play applies one player action to the engine and returns what happened.
func play(eng *engine.Engine, action string) string {
	cmd, err := command.Parse(action)
	if err != nil {
		return err.Error()
	}

	switch cmd.Verb {
	case command.Click, command.Use:
		var out engine.Outcome
		if cmd.Verb == command.Click {
			out, err = eng.Click()
		} else {
			out, err = eng.Use(cmd.Object)
		}
		if err != nil {
			log.Fatalf("Interaction failed: %v", err)
		}
		if out.Result == engine.ResultNone {
			return "nothing happens"
		}
		return fmt.Sprintf("[%s] %s", out.Result, out.Message)
	case command.Move:
		eng.Move(cmd.Direction, cmd.Run)
	case command.Turn:
		eng.Turn(cmd.Degrees)
	case command.Look:
		return eng.Look(context.Background())
	}

	facing := "a bare wall"
	if h, ok := eng.Target(); ok {
		facing = eng.Name(h)
	}
	return "You are now facing " + facing + "."
}

func getPlayerAction(ctx context.Context, model *genai.GenerativeModel, eng *engine.Engine, last string) string {
	var objects []string
	for _, obj := range eng.Objects() {
		objects = append(objects, obj.Name)
	}

	prompt := fmt.Sprintf(`You are playing an escape room game. Get out through the locked door before the clock runs out.
Room: %s
Things you can see: %s
Inventory: %v
Time left: %s

Last outcome: %s

Commands:
%s

What is your next command? Return ONLY the command, no extra commentary.`,
		eng.Room().Description,
		strings.Join(objects, ", "),
		eng.Inventory().Items(),
		eng.Session().Clock(),
		last,
		command.HelpText,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "look"
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "look"
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
