// Package runner plays the game without a full-screen terminal: commands come
// in line by line and a transcript goes out.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tatianab/escape-room/internal/command"
	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/i18n"
	"github.com/tatianab/escape-room/internal/inventory"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/session"
)

type Options struct {
	// TickInterval is the countdown cadence; one second by default.
	TickInterval time.Duration
	// FrameInterval is how often the crosshair is re-evaluated.
	FrameInterval time.Duration
	Logger        *slog.Logger
}

// Runner owns the single event loop of a headless game.
type Runner struct {
	newEngine engine.Factory
	w         io.Writer
	opts      Options
	log       *slog.Logger

	eng        *engine.Engine
	out        *Transcript
	clock      *Task
	frames     *Task
	waiting    int
	lastTarget models.Handle
}

func New(newEngine engine.Factory, w io.Writer, opts Options) *Runner {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 100 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Runner{newEngine: newEngine, w: w, opts: opts, log: log}
}

// Engine returns the engine of the current playthrough.
func (r *Runner) Engine() *engine.Engine {
	return r.eng
}

// Run plays until the session ends, the input closes, the player quits or
// ctx is cancelled. Both periodic tasks are stopped before it returns.
func (r *Runner) Run(ctx context.Context, input <-chan string) error {
	if err := r.begin(ctx); err != nil {
		return err
	}
	defer r.stopTasks()

	for {
		in := input
		if r.waiting > 0 {
			in = nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-r.clock.C:
			if msg, expired := r.eng.Tick(); expired {
				r.out.Message(msg)
			}
			if r.waiting > 0 {
				r.waiting--
			}

		case <-r.frames.C:
			r.frame()

		case line, ok := <-in:
			if !ok {
				return nil
			}
			quit, err := r.handle(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}

		if s := r.eng.Session(); s.Status().Terminal() {
			r.stopTasks()
			r.summary(s)
			return nil
		}
	}
}

func (r *Runner) begin(ctx context.Context) error {
	eng, err := r.newEngine()
	if err != nil {
		return err
	}
	r.eng = eng
	r.out = NewTranscript(r.w, eng.Catalog())
	r.waiting = 0
	r.lastTarget = ""

	out := r.out
	eng.Inventory().OnChange(func(s *inventory.Store) {
		out.Inventory(s.Items())
	})

	r.log.Info("playthrough started", "id", eng.ID(), "room", eng.Room().Title)
	r.out.Info("== %s ==", eng.Room().Title)
	r.out.Message(eng.Start())
	r.clock = Every(ctx, r.opts.TickInterval)
	r.frames = Every(ctx, r.opts.FrameInterval)
	r.frame()
	return nil
}

func (r *Runner) stopTasks() {
	if r.clock != nil {
		r.clock.Stop()
	}
	if r.frames != nil {
		r.frames.Stop()
	}
}

// Stopped reports whether both periodic tasks have been torn down.
func (r *Runner) Stopped() bool {
	return r.clock != nil && r.clock.Stopped() && r.frames.Stopped()
}

// frame re-evaluates the crosshair and reports when it lands on something new.
func (r *Runner) frame() {
	if !r.eng.Session().Playing() {
		return
	}
	h, _ := r.eng.Target()
	if h == r.lastTarget {
		return
	}
	r.lastTarget = h
	if h != "" {
		r.out.Info("[%s: %s]", r.eng.Catalog().Get(i18n.MsgFacing), r.eng.Name(h))
	}
}

func (r *Runner) handle(ctx context.Context, line string) (bool, error) {
	cmd, err := command.Parse(line)
	if err != nil {
		r.out.Error(err)
		return false, nil
	}
	r.log.Debug("command", "line", line, "verb", cmd.Verb)

	switch cmd.Verb {
	case command.Click:
		out, err := r.eng.Click()
		if err != nil {
			return false, err
		}
		if out.Result == engine.ResultNone {
			r.out.Info("%s", r.eng.Catalog().Get(i18n.MsgNothingThere))
		}
		r.out.Outcome(out)
	case command.Use:
		out, err := r.eng.Use(cmd.Object)
		if err != nil {
			return false, err
		}
		r.out.Outcome(out)
	case command.Move:
		r.eng.Move(cmd.Direction, cmd.Run)
		r.frame()
	case command.Turn:
		r.eng.Turn(cmd.Degrees)
		r.frame()
	case command.Look:
		r.out.Message(r.eng.Look(ctx))
	case command.Inventory:
		r.out.Inventory(r.eng.Inventory().Items())
	case command.Status:
		r.status()
	case command.Wait:
		r.waiting = cmd.Count
	case command.Help:
		fmt.Fprintln(r.w, command.HelpText)
	case command.Restart:
		r.stopTasks()
		if err := r.begin(ctx); err != nil {
			return false, err
		}
	case command.Quit:
		return true, nil
	}
	return false, nil
}

func (r *Runner) status() {
	s := r.eng.Session()
	p := r.eng.Pose()
	cat := r.eng.Catalog()
	r.out.Info("%s %s | %s %d | (%.1f, %.1f) %s",
		cat.Get(i18n.MsgTimeLeft), s.Clock(),
		cat.Get(i18n.MsgPuzzlesSolved), s.PuzzlesSolved(),
		p.Position.X, p.Position.Z, p.Compass())
}

func (r *Runner) summary(s *session.Session) {
	r.out.Info("-- %s | %s %d | %s %s / %s --",
		s.Status(), r.eng.Catalog().Get(i18n.MsgPuzzlesSolved), s.PuzzlesSolved(),
		r.eng.Catalog().Get(i18n.MsgTimeLeft), s.Clock(), session.FormatClock(s.TimeLimit()))
}

// Lines feeds r line by line into a channel that is closed at EOF.
func Lines(ctx context.Context, rd io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(rd)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
