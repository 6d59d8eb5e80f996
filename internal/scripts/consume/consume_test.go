package consume

import (
	"context"
	"testing"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
)

func TestConsumeRepeatsAndPauses(t *testing.T) {
	rec := input.NewRecorder(0, 0)
	c := NewConsumer(input.Mouse(input.X2), time.Millisecond, input.NewController(rec), scripts.NopPublisher{}, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	c.sleep = func(ctx context.Context, d time.Duration) error {
		steps++
		switch steps {
		case 2:
			c.Pause().Toggle()
		case 5:
			c.Pause().Toggle()
		case 6:
			cancel()
		}
		return ctx.Err()
	}

	n, err := c.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// шаги 1,2 - нажатия; 3,4,5 - пауза; 6 - нажатие и отмена
	if n != 3 || rec.Count("mouse_down:mouse5") != 3 {
		t.Fatalf("n=%d events %v", n, rec.Snapshot())
	}
}
