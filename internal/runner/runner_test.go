package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tatianab/escape-room/internal/engine"
	"github.com/tatianab/escape-room/internal/models"
	"github.com/tatianab/escape-room/internal/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func factory(t *testing.T, limit int) engine.Factory {
	t.Helper()
	room, err := models.DefaultRoom()
	if err != nil {
		t.Fatalf("DefaultRoom: %v", err)
	}
	return func() (*engine.Engine, error) {
		return engine.NewEngine(room, engine.Options{TimeLimit: limit, Logger: discard})
	}
}

func feed(lines ...string) chan string {
	c := make(chan string, len(lines))
	for _, l := range lines {
		c <- l
	}
	return c
}

// slow keeps periodic events out of the way of scripted input.
var slow = Options{TickInterval: time.Hour, FrameInterval: time.Hour, Logger: discard}

func TestRunnerSolvesRoom(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	err := r.Run(context.Background(), feed("use drawer", "use book", "use safe", "use door"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !r.Engine().Session().Won() {
		t.Fatalf("session not won:\n%s", buf.String())
	}
	out := buf.String()
	for _, want := range []string{"The Study", "small key", "code hint: 1234", "room key", "Congratulations! You escaped the room!", "WON"} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript missing %q:\n%s", want, out)
		}
	}
	if !r.Stopped() {
		t.Error("periodic tasks still running after win")
	}
}

func TestRunnerTimesOut(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{TickInterval: time.Millisecond, FrameInterval: time.Hour, Logger: discard}
	r := New(factory(t, 3), &buf, opts)

	// The input never produces anything; only the clock can end the game.
	if err := r.Run(context.Background(), make(chan string)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	s := r.Engine().Session()
	if s.Status() != session.Lost || s.TimeLeft() != 0 {
		t.Errorf("status = %s, time left = %d", s.Status(), s.TimeLeft())
	}
	if !strings.Contains(buf.String(), "0:00 / 0:03") {
		t.Errorf("summary missing time used out of the limit:\n%s", buf.String())
	}
	if strings.Count(buf.String(), "Time is up! Game over!") != 1 {
		t.Errorf("expected exactly one game-over message:\n%s", buf.String())
	}
	if !r.Stopped() {
		t.Error("periodic tasks still running after loss")
	}
}

func TestRunnerWaitHoldsInput(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{TickInterval: time.Millisecond, FrameInterval: time.Hour, Logger: discard}
	r := New(factory(t, 2), &buf, opts)

	if err := r.Run(context.Background(), feed("wait 5", "use drawer")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Engine().Session().Status() != session.Lost {
		t.Fatalf("status = %s, want LOST", r.Engine().Session().Status())
	}
	if r.Engine().Inventory().Len() != 0 {
		t.Error("input was processed while waiting")
	}
}

func TestRunnerClickAtWall(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	if err := r.Run(context.Background(), feed("turn around", "", "quit")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "There is nothing there to use.") {
		t.Errorf("transcript:\n%s", buf.String())
	}
	if !r.Stopped() {
		t.Error("periodic tasks still running after quit")
	}
}

func TestRunnerMovementReportsCrosshair(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	if err := r.Run(context.Background(), feed("turn left 135", "", "quit")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[Facing: door]") || !strings.Contains(out, "[Facing: drawer]") {
		t.Errorf("transcript:\n%s", out)
	}
	if !r.Engine().Inventory().Contains(engine.LabelSmallKey) {
		t.Error("click after turning did not open the drawer")
	}
}

func TestRunnerReportsBadCommands(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	if err := r.Run(context.Background(), feed("dance", "quit")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "unknown command: dance") {
		t.Errorf("transcript:\n%s", buf.String())
	}
}

func TestRunnerRestart(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	if err := r.Run(context.Background(), feed("use drawer", "restart", "quit")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Engine().Inventory().Len() != 0 {
		t.Errorf("inventory survived restart: %v", r.Engine().Inventory().Items())
	}
	if r.Engine().Session().Status() != session.Playing {
		t.Errorf("status after restart = %s", r.Engine().Session().Status())
	}
}

func TestRunnerEndsAtEOF(t *testing.T) {
	var buf bytes.Buffer
	r := New(factory(t, 0), &buf, slow)

	input := feed("status")
	close(input)
	if err := r.Run(context.Background(), input); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "10:00") {
		t.Errorf("transcript:\n%s", buf.String())
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(factory(t, 0), io.Discard, slow)

	if err := r.Run(ctx, make(chan string)); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if !r.Stopped() {
		t.Error("periodic tasks still running after cancel")
	}
}

func TestTaskStop(t *testing.T) {
	task := Every(context.Background(), time.Millisecond)
	<-task.C
	task.Stop()
	task.Stop()
	if !task.Stopped() {
		t.Fatal("task not stopped")
	}
}

func TestLines(t *testing.T) {
	var got []string
	for line := range Lines(context.Background(), strings.NewReader("w\nuse safe\n")) {
		got = append(got, line)
	}
	if len(got) != 2 || got[1] != "use safe" {
		t.Errorf("Lines() = %v", got)
	}
}

func TestTranscriptWrapsMessages(t *testing.T) {
	var buf bytes.Buffer
	room, _ := models.DefaultRoom()
	eng, err := engine.NewEngine(room, engine.Options{Logger: discard})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	NewTranscript(&buf, eng.Catalog()).Message(strings.Repeat("word ", 40))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if len(line) > Width+16 {
			t.Errorf("line not wrapped: %d bytes", len(line))
		}
	}
}
