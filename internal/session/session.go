// Package session tracks the lifecycle of one playthrough: start, countdown,
// and the terminal won/lost states.
package session

import (
	"fmt"
	"log/slog"
)

// DefaultTimeLimit is the countdown length in seconds.
const DefaultTimeLimit = 600

// Status is the state of the session machine.
type Status int

const (
	NotStarted Status = iota
	Playing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Playing:
		return "PLAYING"
	case Won:
		return "WON"
	case Lost:
		return "LOST"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether s is Won or Lost.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Session is the explicitly owned game state. It is not safe for concurrent
// use; callers drive it from a single goroutine.
type Session struct {
	status        Status
	started       bool
	won           bool
	timeLimit     int
	timeLeft      int
	puzzlesSolved int
	log           *slog.Logger
}

// New returns a session that has not started. A non-positive limit selects
// DefaultTimeLimit.
func New(timeLimit int, log *slog.Logger) *Session {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		timeLimit: timeLimit,
		timeLeft:  timeLimit,
		log:       log,
	}
}

// Start moves a fresh session to Playing. It reports false if the session
// was already started.
func (s *Session) Start() bool {
	if s.status != NotStarted {
		return false
	}
	s.status = Playing
	s.started = true
	s.timeLeft = s.timeLimit
	s.puzzlesSolved = 0
	s.log.Info("session started", "time_limit", s.timeLimit)
	return true
}

// Tick consumes one second of the countdown. It reports true on the tick
// that runs the clock out. Ticks outside Playing are ignored.
func (s *Session) Tick() bool {
	if s.status != Playing {
		return false
	}
	s.timeLeft--
	if s.timeLeft > 0 {
		return false
	}
	s.timeLeft = 0
	s.status = Lost
	s.started = false
	s.log.Info("session lost", "puzzles_solved", s.puzzlesSolved)
	return true
}

// MarkWon latches the win. Only valid while Playing.
func (s *Session) MarkWon() bool {
	if s.status != Playing {
		return false
	}
	s.status = Won
	s.won = true
	s.started = false
	s.log.Info("session won", "time_left", s.timeLeft, "puzzles_solved", s.puzzlesSolved)
	return true
}

// SolvePuzzle bumps the solved counter.
func (s *Session) SolvePuzzle() {
	if s.status != Playing {
		return
	}
	s.puzzlesSolved++
}

func (s *Session) Status() Status     { return s.status }
func (s *Session) Started() bool      { return s.started }
func (s *Session) Won() bool          { return s.won }
func (s *Session) TimeLeft() int      { return s.timeLeft }
func (s *Session) TimeLimit() int     { return s.timeLimit }
func (s *Session) PuzzlesSolved() int { return s.puzzlesSolved }

// Playing reports whether interaction, movement and ticking are allowed.
func (s *Session) Playing() bool {
	return s.status == Playing && s.started && !s.won
}

// Clock formats the remaining time as M:SS.
func (s *Session) Clock() string {
	return FormatClock(s.timeLeft)
}

// FormatClock formats seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
