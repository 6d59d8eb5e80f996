package discard

import (
	"context"
	"image"
	"testing"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
)

func TestDiscardEverySlotInSnakeOrder(t *testing.T) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec)
	d := NewDiscarder(image.Rect(0, 0, 200, 100), 2, 2, "ctrl", 0, ctrl, scripts.NopPublisher{}, logger.NewNopLogger())

	n, err := d.Run(context.Background())
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	var moves []string
	for _, e := range rec.Snapshot() {
		if len(e) > 5 && e[:5] == "move:" {
			moves = append(moves, e)
		}
	}
	want := []string{"move:50,25", "move:150,25", "move:150,75", "move:50,75"}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("moves %v", moves)
		}
	}
	if rec.Count("key_down:ctrl") != 4 || rec.Count("mouse_up:left") != 4 {
		t.Fatalf("events %v", rec.Snapshot())
	}
}

func TestDiscardStopsOnCancel(t *testing.T) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec)
	d := NewDiscarder(image.Rect(0, 0, 300, 300), 3, 3, "ctrl", time.Hour, ctrl, scripts.NopPublisher{}, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	d.sleep = func(context.Context, time.Duration) error {
		cancel()
		return ctx.Err()
	}
	n, _ := d.Run(ctx)
	if n != 1 {
		t.Fatalf("discarded %d, want 1", n)
	}
}
