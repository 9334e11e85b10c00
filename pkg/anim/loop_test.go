package anim

import (
	"testing"
	"time"
)

func TestNewLoop_DefaultsFPS(t *testing.T) {
	l := NewLoop(0)
	if l.Interval() != time.Second/60 {
		t.Errorf("Interval = %v, want %v", l.Interval(), time.Second/60)
	}
	if l.Running() {
		t.Error("new loop should be stopped")
	}
	if cmd := l.Next(); cmd != nil {
		t.Error("Next on a stopped loop should return nil")
	}
}

func TestLoop_AcceptsCurrentGeneration(t *testing.T) {
	l := NewLoop(30)
	if cmd := l.Start(); cmd == nil {
		t.Fatal("Start returned nil cmd")
	}
	msg := FrameMsg{ID: l.ID(), Gen: l.gen}
	if !l.Accept(msg) {
		t.Error("current frame rejected")
	}
	if l.Next() == nil {
		t.Error("Next returned nil while running")
	}
}

func TestLoop_StopMakesPendingFramesStale(t *testing.T) {
	l := NewLoop(60)
	l.Start()
	pending := FrameMsg{ID: l.ID(), Gen: l.gen}

	l.Stop()
	if l.Accept(pending) {
		t.Error("frame scheduled before Stop was accepted")
	}

	l.Start()
	if l.Accept(pending) {
		t.Error("frame from a previous generation was accepted after restart")
	}
}

func TestLoop_RejectsOtherLoops(t *testing.T) {
	a, b := NewLoop(60), NewLoop(60)
	a.Start()
	b.Start()
	if a.ID() == b.ID() {
		t.Fatal("loops share an id")
	}
	if a.Accept(FrameMsg{ID: b.ID(), Gen: b.gen}) {
		t.Error("a accepted b's frame")
	}
}
