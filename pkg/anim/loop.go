// Package anim drives per-frame callbacks through the Bubble Tea message loop.
//
// A Loop owns a generation counter. Every Start bumps it, and frames carry
// the generation they were scheduled under, so a frame that arrives after
// Stop (or after a restart) is recognized as stale and dropped. This is how
// a torn-down view cancels a frame that was already in flight.
package anim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the frame rate used when a Loop is built with fps <= 0.
const DefaultFPS = 60

var lastID int64

// FrameMsg is delivered once per frame.
type FrameMsg struct {
	ID   int
	Gen  int
	Time time.Time
}

// Loop schedules FrameMsg ticks at a fixed rate.
type Loop struct {
	id       int
	gen      int
	interval time.Duration
	running  bool
}

// NewLoop builds a stopped loop ticking fps times per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		id:       int(atomic.AddInt64(&lastID, 1)),
		interval: time.Second / time.Duration(fps),
	}
}

// ID distinguishes loops that share a program.
func (l *Loop) ID() int {
	return l.id
}

// Interval is the time between frames.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool {
	return l.running
}

// Start begins a new generation and returns the command for its first frame.
// Starting a running loop restarts it; frames from the old generation go stale.
func (l *Loop) Start() tea.Cmd {
	l.gen++
	l.running = true
	return l.tick()
}

// Stop invalidates every frame already scheduled.
func (l *Loop) Stop() {
	l.gen++
	l.running = false
}

// Accept reports whether msg belongs to this loop's current generation.
func (l *Loop) Accept(msg FrameMsg) bool {
	return l.running && msg.ID == l.id && msg.Gen == l.gen
}

// Next schedules the following frame. Call it after handling an accepted
// frame; it returns nil once the loop is stopped.
func (l *Loop) Next() tea.Cmd {
	if !l.running {
		return nil
	}
	return l.tick()
}

func (l *Loop) tick() tea.Cmd {
	id, gen := l.id, l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Gen: gen, Time: t}
	})
}
