package scripts

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("cancelled sleep must return immediately")
	}
}

func TestPauseToggle(t *testing.T) {
	var p Pause
	if !p.Toggle() || !p.Paused() {
		t.Fatal("first toggle pauses")
	}
	if p.Toggle() || p.Paused() {
		t.Fatal("second toggle resumes")
	}
	p.Toggle()
	p.Clear()
	if p.Paused() {
		t.Fatal("clear")
	}
}
