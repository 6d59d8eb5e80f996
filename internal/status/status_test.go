package status

import (
	"errors"
	"strings"
	"testing"
	"time"

	"wonryeol/internal/logger"
)

func TestPublishFansOut(t *testing.T) {
	b := NewBus()
	a, c := b.Subscribe(4), b.Subscribe(4)
	if err := b.Publish("belial", "running", Info); err != nil {
		t.Fatal(err)
	}
	for _, ch := range []<-chan Update{a, c} {
		u := <-ch
		if u.Feature != "belial" || u.Text != "running" {
			t.Fatalf("got %+v", u)
		}
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	b := NewBus()
	b.Subscribe(1)
	for i := 0; i < 10; i++ {
		if err := b.Publish("x", "y", Info); err != nil {
			t.Fatal(err)
		}
	}
	if b.Dropped() != 9 {
		t.Fatalf("dropped %d", b.Dropped())
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := NewBus()
	ch := b.Subscribe(1)
	b.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel must be closed")
	}
	if err := b.Publish("x", "y", Alert); !errors.Is(err, ErrClosed) {
		t.Fatalf("got %v", err)
	}
	b.Close()
}

func TestNotifierOnlyForDoneAndAlert(t *testing.T) {
	var bodies []string
	n := &Notifier{Title: "t", notify: func(_, body string) error {
		bodies = append(bodies, body)
		return nil
	}}
	ch := make(chan Update, 3)
	ch <- Update{Feature: "a", Text: "tick", Level: Info}
	ch <- Update{Feature: "inventory", Text: "done", Level: Done}
	ch <- Update{Feature: "app", Text: "stop", Level: Alert}
	close(ch)
	n.Run(ch, logger.NewNopLogger())

	if headless() {
		if len(bodies) != 0 {
			t.Fatal("headless must not notify")
		}
		return
	}
	if len(bodies) != 2 || bodies[0] != "inventory: done" {
		t.Fatalf("bodies %v", bodies)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatCount(12345); got != "12,345" {
		t.Fatalf("count %q", got)
	}
	if got := FormatDuration(0); got != "0s" {
		t.Fatalf("zero %q", got)
	}
	if got := FormatDuration(90 * time.Second); !strings.Contains(got, "30") || !strings.HasPrefix(got, "1") {
		t.Fatalf("duration %q", got)
	}
}
