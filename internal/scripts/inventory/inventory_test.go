package inventory

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	imgpkg "wonryeol/internal/image"
	"wonryeol/internal/input"
	"wonryeol/internal/logger"
	"wonryeol/internal/screenshot"
	"wonryeol/internal/scripts"
)

var keepColor = imgpkg.RGB{R: 0xDF, G: 0xA8, B: 0xF0}

func TestGetInventoryPositionsSnakeOrder(t *testing.T) {
	slots := GetInventoryPositions(image.Rect(0, 0, 300, 200), 3, 2)
	if len(slots) != 6 {
		t.Fatalf("got %d slots", len(slots))
	}
	wantCols := []int{0, 1, 2, 2, 1, 0}
	seen := make(map[image.Point]bool)
	for i, s := range slots {
		if s.Col != wantCols[i] {
			t.Fatalf("slot %d col %d, want %d", i, s.Col, wantCols[i])
		}
		if seen[s.Point()] {
			t.Fatalf("duplicate %v", s.Point())
		}
		seen[s.Point()] = true
	}
	if slots[0].Point() != image.Pt(50, 50) || slots[3].Point() != image.Pt(250, 150) {
		t.Fatalf("centres %v %v", slots[0].Point(), slots[3].Point())
	}
}

func TestGetInventoryPositionsDegenerate(t *testing.T) {
	if GetInventoryPositions(image.Rect(0, 0, 10, 10), 0, 3) != nil {
		t.Fatal("zero cols must yield nothing")
	}
}

// seqCapturer отдает кадр с цветом избранного на заданных вызовах
type seqCapturer struct {
	calls     int
	favorites map[int]bool
	fail      map[int]bool
	onCall    func(n int)
	rects     []image.Rectangle
}

func (c *seqCapturer) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	n := c.calls
	c.calls++
	c.rects = append(c.rects, r)
	if c.onCall != nil {
		c.onCall(n)
	}
	if c.fail[n] {
		return nil, errors.New("capture failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if c.favorites[n] {
		img.SetRGBA(3, 3, color.RGBA{R: keepColor.R, G: keepColor.G, B: keepColor.B, A: 255})
	}
	return img, nil
}

func newCleaner(capt *seqCapturer) (*Cleaner, *input.Recorder) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec).WithSleep(func(time.Duration) {})
	opts := Options{
		KeepColor:       keepColor,
		Tolerance:       15,
		Area:            image.Rect(0, 0, 300, 200),
		DescArea:        image.Rect(1000, 10, 1100, 110),
		Cols:            3,
		Rows:            2,
		FavoriteKey:     input.Key("space"),
		DiscardModifier: "ctrl",
	}
	c := NewCleaner(opts, ctrl, capt, scripts.NopPublisher{}, logger.NewNopLogger())
	c.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return c, rec
}

func TestRunOneFavoriteOfSix(t *testing.T) {
	capt := &seqCapturer{favorites: map[int]bool{4: true}}
	c, rec := newCleaner(capt)

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Discarded != 5 || len(res.Favorites) != 1 || res.Favorites[0] != 4 {
		t.Fatalf("result %+v", res)
	}
	if rec.Count("key_down:space") != 2 {
		t.Fatalf("favorite key pressed %d times", rec.Count("key_down:space"))
	}
	if rec.Count("key_down:ctrl") != 5 || rec.Count("mouse_down:left") != 5 {
		t.Fatalf("events %v", rec.Without("move:"))
	}
	// слот 4 (строка 1, столбец 1) в центре (150,150) не выбрасывается
	events := rec.Snapshot()
	for i, e := range events {
		if e == "key_down:ctrl" && events[i-1] == "move:150,150" {
			t.Fatal("favorite slot was discarded")
		}
	}
	if c.State() != Idle {
		t.Fatalf("state %v", c.State())
	}
}

func TestDescriptionFollowsColumn(t *testing.T) {
	capt := &seqCapturer{}
	c, _ := newCleaner(capt)
	if _, err := c.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	wantX := []int{1000, 1100, 1200, 1200, 1100, 1000}
	for i, r := range capt.rects {
		if r.Min.X != wantX[i] || r.Dx() != 100 || r.Min.Y != 10 {
			t.Fatalf("capture %d at %v", i, r)
		}
	}
}

func TestCancelDuringScanDiscardsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	capt := &seqCapturer{onCall: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	c, rec := newCleaner(capt)

	res, err := c.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled || res.Discarded != 0 {
		t.Fatalf("result %+v", res)
	}
	if rec.Count("mouse_down:left") != 0 {
		t.Fatal("no discard clicks after cancellation")
	}
	if c.State() != Idle {
		t.Fatal("cancel returns to idle")
	}
}

func TestCaptureFailureKeepsSlot(t *testing.T) {
	capt := &seqCapturer{fail: map[int]bool{0: true}}
	c, rec := newCleaner(capt)
	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Discarded != 5 || len(res.Unscanned) != 1 || res.Unscanned[0] != 0 {
		t.Fatalf("result %+v", res)
	}
	if rec.Count("mouse_down:left") != 5 {
		t.Fatal("unscanned slot must be preserved")
	}
}

func TestEmptyDescAreaDiscardsNothing(t *testing.T) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec).WithSleep(func(time.Duration) {})
	opts := Options{
		KeepColor:       keepColor,
		Tolerance:       15,
		Area:            image.Rect(0, 0, 300, 200),
		DescArea:        image.Rect(1000, 10, 1000, 110),
		Cols:            3,
		Rows:            2,
		FavoriteKey:     input.Key("space"),
		DiscardModifier: "ctrl",
	}
	frame := image.NewRGBA(image.Rect(0, 0, 1400, 200))
	c := NewCleaner(opts, ctrl, &screenshot.Static{Frame: frame}, scripts.NopPublisher{}, logger.NewNopLogger())
	c.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Scanned != 0 || len(res.Unscanned) != 6 || res.Discarded != 0 {
		t.Fatalf("result %+v", res)
	}
	if rec.Count("key_down:ctrl") != 0 || rec.Count("mouse_down:left") != 0 {
		t.Fatalf("events %v", rec.Without("move:"))
	}
}

// blankCapturer снимает без ошибки, но отдает пустой кадр
type blankCapturer struct{}

func (blankCapturer) CaptureRect(image.Rectangle) (*image.RGBA, error) {
	return image.NewRGBA(image.Rectangle{}), nil
}

func TestBlankCaptureKeepsSlot(t *testing.T) {
	rec := input.NewRecorder(0, 0)
	ctrl := input.NewController(rec).WithSleep(func(time.Duration) {})
	opts := Options{
		KeepColor: keepColor, Area: image.Rect(0, 0, 200, 100), DescArea: image.Rect(500, 0, 600, 100),
		Cols: 2, Rows: 1, FavoriteKey: input.Key("space"), DiscardModifier: "ctrl",
	}
	c := NewCleaner(opts, ctrl, blankCapturer{}, scripts.NopPublisher{}, logger.NewNopLogger())
	c.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }

	res, err := c.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Unscanned) != 2 || res.Discarded != 0 {
		t.Fatalf("result %+v", res)
	}
}

func TestCancelDuringFavoriteSendsBothPresses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	capt := &seqCapturer{favorites: map[int]bool{1: true}}
	c, rec := newCleaner(capt)
	presses := 0
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		if rec.Count("key_down:space") == 1 && presses == 0 {
			presses++
			cancel()
		}
		return ctx.Err()
	}

	res, err := c.Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Count("key_down:space") != 2 || rec.Count("key_up:space") != 2 {
		t.Fatalf("favorite pair broken: %v", rec.Without("move:"))
	}
	if !res.Cancelled || res.Discarded != 0 {
		t.Fatalf("result %+v", res)
	}
}
