package skill_auto

import (
	"context"
	"testing"
	"time"

	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/scripts"
)

type heldKeys map[string]bool

func (h heldKeys) IsHeld(key string) bool { return h[key] }

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newScheduler(slots []Slot, honryeongsa bool, held HeldChecker) (*Scheduler, *input.Recorder) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec).WithSleep(func(time.Duration) {})
	return NewScheduler("preset1", slots, honryeongsa, ctrl, held, scripts.NopPublisher{}, logger.NewNopLogger()), rec
}

func TestCooldownRespected(t *testing.T) {
	s, rec := newScheduler([]Slot{{Enabled: true, Action: input.Key("1"), Cooldown: 2 * time.Second}}, false, nil)

	if fired := s.Tick(t0, false); len(fired) != 1 {
		t.Fatal("must fire immediately")
	}
	for dt := 10 * time.Millisecond; dt < 2*time.Second; dt += 10 * time.Millisecond {
		if fired := s.Tick(t0.Add(dt), false); len(fired) != 0 {
			t.Fatalf("fired again at +%v", dt)
		}
	}
	if fired := s.Tick(t0.Add(2*time.Second), false); len(fired) != 1 {
		t.Fatal("must fire at +2s")
	}
	if rec.Count("key_down:1") != 2 || rec.Count("key_up:1") != 2 {
		t.Fatalf("events %v", rec.Snapshot())
	}
}

func TestZeroCooldownAndDisabledSkipped(t *testing.T) {
	s, rec := newScheduler([]Slot{
		{Enabled: true, Action: input.Key("1")},
		{Enabled: false, Action: input.Key("2"), Cooldown: time.Second},
	}, false, nil)
	s.Tick(t0, false)
	if len(rec.Snapshot()) != 0 {
		t.Fatalf("events %v", rec.Snapshot())
	}
}

func TestHoldReleasedExactlyOnceOnDisable(t *testing.T) {
	s, rec := newScheduler([]Slot{{Enabled: true, Action: input.Key("q"), Cooldown: time.Second, Hold: true}}, false, nil)

	for i := 0; i < 500; i++ {
		s.Tick(t0.Add(time.Duration(i)*10*time.Millisecond), false)
	}
	if rec.Count("key_down:q") != 1 || rec.Count("key_up:q") != 0 {
		t.Fatalf("hold must stay pressed: %v", rec.Snapshot())
	}
	if !s.Holding(0) {
		t.Fatal("holding")
	}

	if err := s.SetEnabled(0, false); err != nil {
		t.Fatal(err)
	}
	s.Tick(t0.Add(6*time.Second), false)
	s.ReleaseAll()
	if rec.Count("key_up:q") != 1 {
		t.Fatalf("want exactly one release, got %v", rec.Snapshot())
	}
}

func TestPauseReleasesHold(t *testing.T) {
	s, rec := newScheduler([]Slot{
		{Enabled: true, Action: input.Mouse(input.Right), Cooldown: time.Second, Hold: true},
		{Enabled: true, Action: input.Key("2"), Cooldown: time.Second},
	}, false, nil)
	s.Tick(t0, false)
	s.Tick(t0.Add(10*time.Millisecond), true)
	s.Tick(t0.Add(3*time.Second), true)
	if rec.Count("mouse_up:right") != 1 {
		t.Fatalf("pause must release once: %v", rec.Snapshot())
	}
	if rec.Count("key_down:2") != 1 {
		t.Fatal("nothing fires while paused")
	}

	s.Tick(t0.Add(4*time.Second), false)
	if rec.Count("mouse_down:right") != 2 || rec.Count("key_down:2") != 2 {
		t.Fatalf("resume fires again: %v", rec.Snapshot())
	}
}

func TestHonryeongsaGuard(t *testing.T) {
	held := heldKeys{"space": true}
	s, rec := newScheduler([]Slot{
		{Enabled: true, Action: input.Key("space"), Cooldown: time.Second},
		{Enabled: true, Action: input.Key("e"), Cooldown: time.Second},
	}, true, held)

	s.Tick(t0, false)
	if rec.Count("key_down:space") != 0 || rec.Count("key_down:e") != 1 {
		t.Fatalf("events %v", rec.Snapshot())
	}
	held["space"] = false
	s.Tick(t0.Add(10*time.Millisecond), false)
	if rec.Count("key_down:space") != 1 {
		t.Fatal("space fires once the player lets go")
	}
}

func TestRunReleasesOnStop(t *testing.T) {
	s, rec := newScheduler([]Slot{{Enabled: true, Action: input.Key("w"), Cooldown: time.Second, Hold: true}}, false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Holding(0) && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done
	if rec.Count("key_down:w") != 1 || rec.Count("key_up:w") != 1 {
		t.Fatalf("events %v", rec.Snapshot())
	}
}
