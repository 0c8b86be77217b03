package session

import (
	"io"
	"log/slog"
	"testing"
)

func newTestSession(limit int) *Session {
	return New(limit, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStart(t *testing.T) {
	s := newTestSession(0)
	if s.Status() != NotStarted || s.Playing() {
		t.Fatalf("new session status = %s", s.Status())
	}
	if !s.Start() {
		t.Fatal("Start() = false")
	}
	if s.Status() != Playing || !s.Started() {
		t.Errorf("after Start status = %s, started = %v", s.Status(), s.Started())
	}
	if s.TimeLeft() != DefaultTimeLimit {
		t.Errorf("TimeLeft() = %d, want %d", s.TimeLeft(), DefaultTimeLimit)
	}
	if s.PuzzlesSolved() != 0 {
		t.Errorf("PuzzlesSolved() = %d, want 0", s.PuzzlesSolved())
	}
	if s.Start() {
		t.Error("second Start() = true")
	}
}

func TestTickBeforeStartIsIgnored(t *testing.T) {
	s := newTestSession(10)
	if s.Tick() {
		t.Fatal("Tick() before start expired the session")
	}
	if s.TimeLeft() != 10 {
		t.Errorf("TimeLeft() = %d, want 10", s.TimeLeft())
	}
}

func TestCountdownLosesExactlyOnce(t *testing.T) {
	s := newTestSession(DefaultTimeLimit)
	s.Start()

	expirations := 0
	for i := 0; i < DefaultTimeLimit; i++ {
		if s.Status() != Playing {
			t.Fatalf("left Playing after %d ticks", i)
		}
		if s.Tick() {
			expirations++
		}
	}

	if s.TimeLeft() != 0 {
		t.Errorf("TimeLeft() = %d, want 0", s.TimeLeft())
	}
	if s.Status() != Lost {
		t.Errorf("Status() = %s, want LOST", s.Status())
	}
	if expirations != 1 {
		t.Errorf("expired %d times, want 1", expirations)
	}
	if s.Started() {
		t.Error("Started() = true after loss")
	}

	for i := 0; i < 5; i++ {
		if s.Tick() {
			t.Error("Tick() after loss reported expiry")
		}
	}
	if s.TimeLeft() != 0 || s.Status() != Lost {
		t.Errorf("ticks after loss mutated session: left=%d status=%s", s.TimeLeft(), s.Status())
	}
}

func TestMarkWonStopsCountdown(t *testing.T) {
	s := newTestSession(30)
	s.Start()
	s.Tick()
	if !s.MarkWon() {
		t.Fatal("MarkWon() = false while playing")
	}
	left := s.TimeLeft()

	s.Tick()
	if s.TimeLeft() != left {
		t.Errorf("TimeLeft() changed after win: %d -> %d", left, s.TimeLeft())
	}
	if !s.Won() || s.Status() != Won || s.Playing() {
		t.Errorf("won=%v status=%s playing=%v", s.Won(), s.Status(), s.Playing())
	}
	if s.MarkWon() {
		t.Error("MarkWon() twice returned true")
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.Tick()
	if s.MarkWon() {
		t.Error("MarkWon() succeeded after loss")
	}
	if s.Start() {
		t.Error("Start() succeeded after loss")
	}
	s.SolvePuzzle()
	if s.PuzzlesSolved() != 0 {
		t.Errorf("PuzzlesSolved() = %d after loss", s.PuzzlesSolved())
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{600, "10:00"},
		{599, "9:59"},
		{61, "1:01"},
		{5, "0:05"},
		{0, "0:00"},
		{-3, "0:00"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.in); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
