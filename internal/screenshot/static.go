package screenshot

import (
	"image"
	"sync"
)

// Static отдает заранее заданный кадр, обрезанный по запрошенной области.
// Используется в тестах сканеров.
type Static struct {
	mu    sync.Mutex
	Frame *image.RGBA
	Err   error
	Calls int
}

func (s *Static) CaptureRect(r image.Rectangle) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if r.Empty() {
		return nil, ErrEmptyArea
	}
	r = r.Intersect(s.Frame.Rect)
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.SetRGBA(x, y, s.Frame.RGBAAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out, nil
}
